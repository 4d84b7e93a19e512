package util

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const partSuffix = ".part"

// WriteTextFile writes text to path through a sibling ".part" file that is
// renamed into place once fully synced.
func WriteTextFile(path, text string) error {
	tmp := path + partSuffix

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	if _, err := f.WriteString(text); err != nil {
		closeQuiet(f, tmp)
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	if err := f.Sync(); err != nil {
		closeQuiet(f, tmp)
		_ = os.Remove(tmp)
		return fmt.Errorf("sync %s: %w", tmp, err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	return nil
}

// UniquePath returns path if nothing exists there, otherwise the first free
// "<name>_N<ext>" next to it.
func UniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

func closeQuiet(f *os.File, name string) {
	if cerr := f.Close(); cerr != nil {
		log.Printf("error closing %s: %v", name, cerr)
	}
}
