package store

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/fabricware/fusiongen/pkg/errors"
)

// Workdir manages the on-disk artifact directory where rendered
// configurations are written, one .cfg file per generated router.
type Workdir struct {
	root string
}

// NewWorkdir creates a manager rooted at root. Call EnsureStructure before
// first use.
func NewWorkdir(root string) *Workdir {
	return &Workdir{root: root}
}

// Root returns the workdir root path.
func (w *Workdir) Root() string {
	return w.root
}

// ArtifactsDir returns the artifact directory path.
func (w *Workdir) ArtifactsDir() string {
	return filepath.Join(w.root, "artifacts")
}

// EnsureStructure creates the workdir tree.
func (w *Workdir) EnsureStructure() error {
	if w.root == "" {
		return errors.StoreError("ensure workdir", fmt.Errorf("workdir root not set"))
	}
	if err := os.MkdirAll(w.ArtifactsDir(), 0o755); err != nil {
		return errors.StoreError("ensure workdir", err)
	}
	return nil
}

// WriteArtifact writes one rendered configuration under artifacts/ and
// returns the file path. File names are ULID-prefixed so a directory listing
// sorts chronologically.
func (w *Workdir) WriteArtifact(hostname, configText string) (string, error) {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader)
	name := fmt.Sprintf("%s_%s.cfg", id.String(), sanitizeHostname(hostname))
	path := filepath.Join(w.ArtifactsDir(), name)

	if err := os.WriteFile(path, []byte(configText), 0o644); err != nil {
		return "", errors.StoreError("write artifact", err)
	}
	return path, nil
}

// ListArtifacts returns the artifact file names, oldest first.
func (w *Workdir) ListArtifacts() ([]string, error) {
	entries, err := os.ReadDir(w.ArtifactsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.StoreError("list artifacts", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".cfg") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// sanitizeHostname keeps artifact file names filesystem-safe.
func sanitizeHostname(hostname string) string {
	if hostname == "" {
		return "router"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '-'
		}
	}, hostname)
}
