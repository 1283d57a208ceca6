package source

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// Extension is the file suffix a record file must carry.
const Extension = ".json"

// DirSource reads *.json files directly inside a directory. Files are
// yielded in lexical name order, the order os.ReadDir returns.
type DirSource struct {
	dir string
}

// Dir returns a source over dir.
func Dir(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Paths lists candidate files without reading them.
func (d *DirSource) Paths() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", d.dir, err)
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !isCandidate(entry) {
			continue
		}
		paths = append(paths, filepath.Join(d.dir, entry.Name()))
	}
	return paths, nil
}

func isCandidate(entry os.DirEntry) bool {
	if !strings.HasSuffix(entry.Name(), Extension) {
		return false
	}
	if entry.IsDir() {
		return false
	}
	// Symlinks to regular files count, matching a plain glob.
	if entry.Type()&os.ModeSymlink != 0 {
		return true
	}
	return entry.Type().IsRegular()
}

// Documents yields one document per candidate file. When the directory
// itself cannot be listed the sequence is empty; Count reports that error.
func (d *DirSource) Documents() iter.Seq[Document] {
	return func(yield func(Document) bool) {
		paths, err := d.Paths()
		if err != nil {
			return
		}
		for _, path := range paths {
			doc := Document{Name: filepath.Base(path), Path: path}
			doc.Data, doc.Err = os.ReadFile(path)
			if !yield(doc) {
				return
			}
		}
	}
}

// Count returns the number of candidate files.
func (d *DirSource) Count() (int, error) {
	paths, err := d.Paths()
	if err != nil {
		return 0, err
	}
	return len(paths), nil
}

func (d *DirSource) String() string { return d.dir }
