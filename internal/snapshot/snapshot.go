// Package snapshot saves result pages as HTML and replays them through the
// same types.Page interface the live browser implements.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const pattern = "page-*.html"

// Dumper writes one file per results page into dir.
type Dumper struct {
	dir string
}

func NewDumper(dir string) (*Dumper, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Dumper{dir: dir}, nil
}

func (d *Dumper) Dump(page int, html string) error {
	return os.WriteFile(filepath.Join(d.dir, fileName(page)), []byte(html), 0o644)
}

func fileName(page int) string {
	return fmt.Sprintf("page-%03d.html", page)
}

// List returns the snapshot files in dir in page order.
func List(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files in %s", pattern, dir)
	}
	return files, nil
}

// Open loads every snapshot in dir.
func Open(dir string) (*Page, error) {
	files, err := List(dir)
	if err != nil {
		return nil, err
	}
	pages := make([]string, 0, len(files))
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		pages = append(pages, string(b))
	}
	return FromHTML(pages...)
}

// FromHTML builds a replay page over in-memory documents.
func FromHTML(pages ...string) (*Page, error) {
	if len(pages) == 0 {
		return nil, errors.New("snapshot: no pages")
	}
	p := &Page{pages: pages}
	if err := p.load(0); err != nil {
		return nil, err
	}
	return p, nil
}
