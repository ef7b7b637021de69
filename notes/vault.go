// Package notes resolves a calendar day to that day's note.
package notes

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/writewithwrabit/wordstreak/models"
	"github.com/writewithwrabit/wordstreak/streak"
)

const (
	DefaultLayout    = "2006-01-02"
	DefaultExtension = ".md"
)

// Vault finds date-named notes under a storage root.
type Vault struct {
	root      string
	layout    string
	extension string
}

// NewVault returns a Vault rooted at root. Empty layout and extension fall
// back to YYYY-MM-DD and .md.
func NewVault(root, layout, extension string) *Vault {
	if layout == "" {
		layout = DefaultLayout
	}
	if extension == "" {
		extension = DefaultExtension
	}
	return &Vault{root: root, layout: layout, extension: extension}
}

var _ streak.NoteLookup = (*Vault)(nil)

// Path returns where the note for day lives.
func (v *Vault) Path(day time.Time) string {
	return filepath.Join(v.root, day.Format(v.layout)+v.extension)
}

// Lookup reads the note for day. A missing file, or a directory in its
// place, is not an error.
func (v *Vault) Lookup(ctx context.Context, day time.Time) (models.Note, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.Note{}, false, err
	}

	path := v.Path(day)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Note{}, false, nil
	}
	if err != nil {
		return models.Note{}, false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return models.Note{}, false, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return models.Note{}, false, fmt.Errorf("read %s: %w", path, err)
	}

	return models.Note{Date: streak.DateKey(day), Path: path, Content: string(content)}, true, nil
}
