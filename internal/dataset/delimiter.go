package dataset

// candidateDelimiters in preference order when counts tie
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// IsValidDelimiter checks if a rune is a supported field delimiter
func IsValidDelimiter(delim rune) bool {
	for _, d := range candidateDelimiters {
		if d == delim {
			return true
		}
	}
	return false
}

// DetectDelimiter guesses the field delimiter from the first lines of data.
// Characters inside quoted fields are ignored so quoted header names with
// commas do not skew the count. Falls back to a comma.
func DetectDelimiter(data []byte, sampleSize int) rune {
	if sampleSize <= 0 || sampleSize > len(data) {
		sampleSize = len(data)
	}
	sample := data[:sampleSize]

	counts := make(map[rune]int, len(candidateDelimiters))
	inQuotes := false
	lines := 0
	for i := 0; i < len(sample) && lines < 5; i++ {
		c := sample[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case inQuotes:
			// literal
		case c == '\n':
			lines++
		default:
			for _, delim := range candidateDelimiters {
				if c == byte(delim) {
					counts[delim]++
				}
			}
		}
	}

	best := ','
	maxCount := 0
	for _, delim := range candidateDelimiters {
		if counts[delim] > maxCount {
			maxCount = counts[delim]
			best = delim
		}
	}
	return best
}
