// Package fsops provides destructive filesystem helpers outside the
// vault container proper, namely secure deletion of the backing vault
// file when the user wants to destroy it rather than merely unmount.
package fsops

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

// SecureDelete overwrites path with passes rounds of random bytes
// before removing it, adapted from the teacher's file_manager.go to
// operate with a visible progress bar since a vault file is typically
// many megabytes (NumHeaderSlots * HeaderSlotSize + volumes), unlike
// the arbitrary small documents the teacher's tool deletes.
func SecureDelete(path string, passes int) error {
	file, err := os.OpenFile(filepath.Clean(path), os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("fsops: open for secure deletion: %w", err)
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("fsops: stat: %w", err)
	}

	bar := progressbar.NewOptions64(
		int64(passes)*info.Size(),
		progressbar.OptionSetDescription(fmt.Sprintf("securely deleting %s", filepath.Base(path))),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
	)

	for pass := 0; pass < passes; pass++ {
		if err := randomOverwrite(file, info.Size(), bar); err != nil {
			return fmt.Errorf("fsops: overwrite pass %d failed: %w", pass+1, err)
		}
	}

	return os.Remove(path)
}

func randomOverwrite(file *os.File, size int64, bar *progressbar.ProgressBar) error {
	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("fsops: seek to start: %w", err)
	}

	buffer := make([]byte, 4096)
	remaining := size

	for remaining > 0 {
		writeSize := remaining
		if int64(len(buffer)) < writeSize {
			writeSize = int64(len(buffer))
		}

		if _, err := rand.Read(buffer[:writeSize]); err != nil {
			return fmt.Errorf("fsops: generate random data: %w", err)
		}
		if _, err := file.Write(buffer[:writeSize]); err != nil {
			return fmt.Errorf("fsops: write random data: %w", err)
		}
		if bar != nil {
			_ = bar.Add64(writeSize)
		}

		remaining -= writeSize
	}
	return nil
}
