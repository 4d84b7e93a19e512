package util

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
)

// SetupInterruptHandler removes unfinished ".part" files from outputDir
// (and outputDir itself when that leaves it empty) on SIGINT or SIGTERM,
// then exits with status 1.
func SetupInterruptHandler(outputDir string) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		fmt.Println("\nInterrupt received. Cleaning up...")

		for _, p := range CleanupPartialFiles(outputDir) {
			fmt.Printf("Removed %s\n", p)
		}
		if RemoveIfEmpty(outputDir) {
			fmt.Printf("Removed empty output folder: %s\n", outputDir)
		}

		os.Exit(1)
	}()
}

// CleanupPartialFiles removes ".part" files left behind by WriteTextFile
// and returns the paths it removed.
func CleanupPartialFiles(outputDir string) []string {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil
	}

	var removed []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), partSuffix) {
			continue
		}

		m := filepath.Join(outputDir, e.Name())
		if err := os.Remove(m); err != nil {
			fmt.Fprintf(os.Stderr, "Error cleaning up %s: %v\n", m, err)
			continue
		}
		removed = append(removed, m)
	}

	return removed
}

// RemoveIfEmpty deletes dir when it has no entries and reports whether it
// did. The current directory is never removed.
func RemoveIfEmpty(dir string) bool {
	if clean := filepath.Clean(dir); clean == "." || strings.TrimSpace(dir) == "" {
		return false
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return false
	}

	return os.Remove(dir) == nil
}
