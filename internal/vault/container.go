// Package vault owns the single backing file that holds all header
// slots and volume regions, per spec.md §4.3. It never interprets the
// bytes it moves; callers own framing and cryptography.
package vault

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/schollz/progressbar/v3"

	"github.com/hambosto/vaultfs/internal/constants"
	"github.com/hambosto/vaultfs/internal/crypto"
)

// Container is the backing vault file.
type Container struct {
	path   string
	file   *os.File
	locked bool
}

// Open opens (creating if necessary) the vault file at path and takes
// an advisory exclusive lock on it, per SPEC_FULL.md §4.3: the vault is
// the one shared resource in this design (spec.md §5) and concurrent
// mounts are undefined behavior everywhere the OS can't enforce it for us.
func Open(path string) (*Container, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("vault: failed to open %s: %w", path, err)
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		file.Close()
		if err == syscall.EWOULDBLOCK {
			return nil, constants.ErrVaultBusy
		}
		return nil, fmt.Errorf("vault: failed to lock %s: %w", path, err)
	}

	return &Container{path: path, file: file, locked: true}, nil
}

// Close releases the advisory lock and closes the backing file.
func (c *Container) Close() error {
	if c.locked {
		_ = syscall.Flock(int(c.file.Fd()), syscall.LOCK_UN)
		c.locked = false
	}
	return c.file.Close()
}

// Exists reports whether the vault file at path already exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadSlot reads the header_slot_size bytes of slot i.
func (c *Container) ReadSlot(i int) ([]byte, error) {
	if i < 0 || i >= constants.NumHeaderSlots {
		return nil, constants.ErrSlotOutOfRange
	}
	return c.readAt(int64(i)*constants.HeaderSlotSize, constants.HeaderSlotSize)
}

// WriteSlot writes exactly header_slot_size bytes at slot i's offset.
func (c *Container) WriteSlot(i int, blob []byte) error {
	if i < 0 || i >= constants.NumHeaderSlots {
		return constants.ErrSlotOutOfRange
	}
	if len(blob) != constants.HeaderSlotSize {
		return fmt.Errorf("vault: slot blob must be %d bytes, got %d", constants.HeaderSlotSize, len(blob))
	}
	return c.writeAt(int64(i)*constants.HeaderSlotSize, blob)
}

// ReadRegion reads up to size bytes at offset. Short reads (near EOF)
// return fewer bytes than requested without error; callers treat that
// as "uninitialized region" per spec.md §4.5's loading path.
func (c *Container) ReadRegion(offset int64, size int) ([]byte, error) {
	buf := make([]byte, size)
	n, err := c.file.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("vault: read region at %d failed: %w", offset, err)
	}
	return buf[:n], nil
}

// WriteRegion writes payload at offset, then extends or truncates the
// file so that it is at least offset+reservedSize bytes long.
// len(payload) must not exceed reservedSize.
func (c *Container) WriteRegion(offset int64, payload []byte, reservedSize int64) error {
	if int64(len(payload)) > reservedSize {
		return constants.ErrPayloadTooLarge
	}

	if err := c.writeAt(offset, payload); err != nil {
		return err
	}

	info, err := c.file.Stat()
	if err != nil {
		return fmt.Errorf("vault: stat failed: %w", err)
	}
	if minLen := offset + reservedSize; info.Size() < minLen {
		if err := c.file.Truncate(minLen); err != nil {
			return fmt.Errorf("vault: extend to %d failed: %w", minLen, err)
		}
	}
	return nil
}

func (c *Container) readAt(offset int64, size int) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := c.file.ReadAt(buf, offset); err != nil {
		return nil, fmt.Errorf("vault: read at %d failed: %w", offset, err)
	}
	return buf, nil
}

func (c *Container) writeAt(offset int64, data []byte) error {
	if _, err := c.file.WriteAt(data, offset); err != nil {
		return fmt.Errorf("vault: write at %d failed: %w", offset, err)
	}
	return nil
}

// StampRandomSlotsWithProgress is StampRandomSlots with a progress bar
// on stdout, for the interactive vault-creation path.
func (c *Container) StampRandomSlotsWithProgress() error {
	bar := progressbar.NewOptions64(
		constants.NumHeaderSlots*constants.HeaderSlotSize,
		progressbar.OptionSetDescription("initializing header slots"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
	)

	return c.StampRandomSlots(func(written int64) {
		_ = bar.Add64(written)
	})
}

// StampRandomSlots overwrites every header slot with fresh random
// noise. Called once, at vault creation, before any real header is
// written — see SPEC_FULL.md §4.3's Open Question 2 decision: zeroed
// or sparse-file slots are distinguishable from an occupied slot, so
// every slot starts out looking equally like ciphertext.
func (c *Container) StampRandomSlots(onProgress func(written int64)) error {
	for i := 0; i < constants.NumHeaderSlots; i++ {
		noise, err := crypto.RandomBytes(constants.HeaderSlotSize)
		if err != nil {
			return err
		}
		if err := c.WriteSlot(i, noise); err != nil {
			return err
		}
		if onProgress != nil {
			onProgress(constants.HeaderSlotSize)
		}
	}
	return nil
}
