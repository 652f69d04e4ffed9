package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/peekknuf/wineqa/internal/connectors"
)

// ErrEmptyDataset is returned for files with a header but no records
var ErrEmptyDataset = errors.New("dataset has no records")

// LoadOptions controls how a delimited file is read
type LoadOptions struct {
	Delimiter  rune // Zero means detect from the first lines
	SampleSize int  // Bytes inspected for delimiter detection
}

// DefaultLoadOptions returns options that auto-detect the delimiter
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		SampleSize: 4 * 1024,
	}
}

// Load reads a delimited file with a header row into a numeric frame
func Load(path string, opts LoadOptions) (*Frame, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	frame, err := Parse(bytes.NewReader(raw), path, opts, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	frame.Path = path
	frame.Size = int64(len(raw))
	return frame, nil
}

// Parse reads records from r. head, when non-nil, is used for delimiter
// detection instead of peeking at r.
func Parse(r io.Reader, name string, opts LoadOptions, head []byte) (*Frame, error) {
	delim := opts.Delimiter
	if delim == 0 {
		if head == nil {
			buf, err := io.ReadAll(r)
			if err != nil {
				return nil, fmt.Errorf("failed to read data: %w", err)
			}
			head = buf
			r = bytes.NewReader(buf)
		}
		delim = DetectDelimiter(head, opts.SampleSize)
	}
	if !IsValidDelimiter(delim) {
		return nil, fmt.Errorf("unsupported delimiter %q", delim)
	}

	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read headers: %w", err)
	}
	for i := range headers {
		headers[i] = strings.Trim(strings.TrimSpace(headers[i]), `"`)
	}

	columns := make(map[string][]float64, len(headers))
	for _, header := range headers {
		if _, dup := columns[header]; dup {
			return nil, fmt.Errorf("duplicate column %q", header)
		}
		columns[header] = nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				return nil, fmt.Errorf("line %d, column %q: empty value", line, headers[i])
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %q: %w", line, headers[i], err)
			}
			columns[headers[i]] = append(columns[headers[i]], value)
		}
	}

	if len(columns[headers[0]]) == 0 {
		return nil, ErrEmptyDataset
	}
	return NewFrame(name, headers, columns)
}

// LoadAll loads every dataset concurrently. loaded, when set, is called once per
// dataset after it has been read.
func LoadAll(ctx context.Context, files map[connectors.Variant]connectors.FileMeta, opts LoadOptions,
	loaded func(connectors.Variant, *Frame)) (map[connectors.Variant]*Frame, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	frames := make(map[connectors.Variant]*Frame, len(files))
	for variant, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frame, err := Load(file.Path, opts)
			if err != nil {
				return fmt.Errorf("loading %s dataset: %w", variant, err)
			}
			frame.Name = string(variant)

			mu.Lock()
			frames[variant] = frame
			if loaded != nil {
				loaded(variant, frame)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}
