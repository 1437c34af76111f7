// Package savefile moves save images between the filesystem and gamedata.
package savefile

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/openciv1/civsave/internal/gamedata"
)

// Pattern matches the save slots written by the game, CIVIL0.SVE to CIVIL9.SVE.
const Pattern = "CIVIL?.SVE"

// Read loads the save at path as a read-only view.
func Read(path string, opts ...gamedata.Option) (*gamedata.Save, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading save: %w", err)
	}
	save, err := gamedata.Load(b, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return save, nil
}

// Write stores the image of save at path. The image is written next to path
// first and renamed over it so an existing file is never left half written.
func Write(path string, save *gamedata.Save) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".civsave-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(save.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Checksum identifies a save image. Two files with the same checksum are
// treated as the same game position.
func Checksum(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}

// Glob returns the save files in dir, sorted by name. Names are matched without
// regard to case since DOS file names often end up lower-cased on copy.
func Glob(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(Pattern, strings.ToUpper(entry.Name())); ok {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
