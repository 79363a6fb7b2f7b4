package navigation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"pixview/internal/domain"
)

// Order selects how sibling files are sorted
type Order string

const (
	// OrderName is byte-wise file-name order, as returned by os.ReadDir
	OrderName Order = "name"
	// OrderNatural sorts embedded numbers by value, so frame2 < frame10
	OrderNatural Order = "natural"
)

// DirLister lists image files of one directory
type DirLister struct {
	Extensions []string // lowercase, with leading dot
	Order      Order
}

// NewDirLister creates a lister for the given extensions and order
func NewDirLister(extensions []string, order Order) *DirLister {
	exts := make([]string, 0, len(extensions))
	for _, e := range extensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return &DirLister{Extensions: exts, Order: order}
}

// List returns the paths of regular files in dir whose extension is in the
// configured set. Extension matching ignores case.
func (l *DirLister) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("list %s: %w", dir, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !l.matches(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}

	if l.Order == OrderNatural {
		sort.Sort(natural.StringSlice(names))
	}

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

func (l *DirLister) matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, e := range l.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
