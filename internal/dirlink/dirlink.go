// Package dirlink ties a directory tree to a roster file through a small
// marker file, so commands run anywhere below it share one roster.
package dirlink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const FileName = ".roster-file"

// Link is a marker found on disk.
type Link struct {
	Dir    string // directory holding the marker
	Target string // roster path as written in the marker
}

// Path is the roster file the link points at. Relative targets are taken
// from the marker's directory, not the working directory.
func (l Link) Path() string {
	if filepath.IsAbs(l.Target) {
		return l.Target
	}
	return filepath.Join(l.Dir, l.Target)
}

// Find returns the nearest link at or above startDir. ok is false when
// no directory up to the filesystem root has one.
func Find(startDir string) (link Link, ok bool, err error) {
	for dir := startDir; ; {
		target, err := Read(dir)
		if err != nil {
			return Link{}, false, err
		}
		if target != "" {
			return Link{Dir: dir, Target: target}, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Link{}, false, nil
		}
		dir = parent
	}
}

func Write(dir, target string) error {
	if strings.TrimSpace(target) == "" {
		return errors.New("roster file path cannot be empty")
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(target+"\n"), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Read returns the target in dir's marker, or "" without error when dir
// has none.
func Read(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", nil
	case err != nil:
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Remove deletes dir's marker and reports whether there was one.
func Remove(dir string) (bool, error) {
	err := os.Remove(filepath.Join(dir, FileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}
