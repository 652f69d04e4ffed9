package connectors

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Variant identifies one of the wine datasets
type Variant string

const (
	Red   Variant = "red"
	White Variant = "white"
)

// Variants lists every dataset variant in report order
var Variants = []Variant{Red, White}

// Title returns the variant name as it appears in printed labels ("Red", "White")
func (v Variant) Title() string {
	if v == "" {
		return ""
	}
	return strings.ToUpper(string(v[:1])) + string(v[1:])
}

type FileMeta struct {
	Path     string
	Size     int64
	Modified time.Time
}

type DiscoveryOptions struct {
	Recursive      bool
	MinSize        int64
	MaxSize        int64
	ModifiedAfter  time.Time
	ModifiedBefore time.Time
}

// DiscoverFiles walks root and returns every file with the given extension
// that passes the size and modification filters, sorted by path.
func DiscoverFiles(root string, ext string, options DiscoveryOptions) ([]FileMeta, error) {
	if root == "" {
		return nil, fmt.Errorf("root directory cannot be empty")
	}

	stat, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", root)
	}
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", root, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return nil, fmt.Errorf("file extension cannot be empty")
	}

	var files []FileMeta
	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		// Skip directories if not recursive
		if d.IsDir() && path != root && !options.Recursive {
			return filepath.SkipDir
		}

		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), "."+ext) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("error getting file info for %s: %w", path, err)
		}

		// Apply filters
		if options.MinSize > 0 && info.Size() < options.MinSize {
			return nil
		}
		if options.MaxSize > 0 && info.Size() > options.MaxSize {
			return nil
		}
		if !options.ModifiedAfter.IsZero() && info.ModTime().Before(options.ModifiedAfter) {
			return nil
		}
		if !options.ModifiedBefore.IsZero() && info.ModTime().After(options.ModifiedBefore) {
			return nil
		}

		files = append(files, FileMeta{
			Path:     path,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
		return nil
	}

	if err := filepath.WalkDir(root, walkFunc); err != nil {
		return nil, fmt.Errorf("directory walk error: %w", err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no matching files found in %s", root)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// DiscoverDatasets finds the red and white datasets in dir. A file belongs to a
// variant when its stem ends in "-<variant>" or "_<variant>", so the usual
// winequality-red.csv / winequality-white.csv pair is picked up.
func DiscoverDatasets(dir string) (map[Variant]FileMeta, error) {
	files, err := DiscoverFiles(dir, "csv", DiscoveryOptions{})
	if err != nil {
		return nil, err
	}

	found := make(map[Variant]FileMeta, len(Variants))
	for _, file := range files {
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(file.Path), filepath.Ext(file.Path)))
		for _, variant := range Variants {
			if !strings.HasSuffix(stem, "-"+string(variant)) && !strings.HasSuffix(stem, "_"+string(variant)) {
				continue
			}
			if prev, ok := found[variant]; ok {
				return nil, fmt.Errorf("multiple %s datasets in %s: %s and %s",
					variant, dir, filepath.Base(prev.Path), filepath.Base(file.Path))
			}
			found[variant] = file
		}
	}

	for _, variant := range Variants {
		if _, ok := found[variant]; !ok {
			return nil, fmt.Errorf("no %s wine dataset found in %s", variant, dir)
		}
	}
	return found, nil
}
