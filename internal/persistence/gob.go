package persistence

import (
	"bufio"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gcbaptista/go-ir-engine/internal/logger"
)

// magic prefixes every file written by SaveGob, followed by one CompressionType byte.
var magic = [4]byte{'I', 'R', 'E', 'G'}

// ErrBadHeader is returned by LoadGob for files that were not written by SaveGob.
var ErrBadHeader = errors.New("unrecognised file header")

// SaveGob encodes the given objects in order using gob, compressed with c, and
// saves them to filePath. The file is written to a temporary sibling first and
// renamed into place, so readers never observe a partial file.
// It creates necessary directories if they don't exist.
func SaveGob(filePath string, c CompressionType, objects ...interface{}) error {
	// Ensure the directory exists
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpPath := filePath + ".tmp"
	file, err := os.Create(tmpPath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", tmpPath, err)
	}

	if err := writeGob(file, c, objects); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to gob encode to file %s: %w", filePath, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to move %s into place: %w", filePath, err)
	}
	return nil
}

func writeGob(w io.Writer, c CompressionType, objects []interface{}) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(magic[:]); err != nil {
		return err
	}
	if err := bw.WriteByte(byte(c)); err != nil {
		return err
	}

	cw, err := newCompressor(bw, c)
	if err != nil {
		return err
	}
	encoder := gob.NewEncoder(cw)
	for _, object := range objects {
		if err := encoder.Encode(object); err != nil {
			_ = cw.Close()
			return err
		}
	}
	if err := cw.Close(); err != nil {
		return err
	}
	return bw.Flush()
}

// GobDecoder decodes successive values of a file opened by OpenGob.
type GobDecoder struct {
	file    *os.File
	release func()
	decoder *gob.Decoder
}

// Decode reads the next value into objectPointer.
func (d *GobDecoder) Decode(objectPointer interface{}) error {
	return d.decoder.Decode(objectPointer)
}

// Close releases the decompressor and the file.
func (d *GobDecoder) Close() error {
	d.release()
	return d.file.Close()
}

// OpenGob opens a file written by SaveGob for decoding.
// If the file does not exist, it returns os.ErrNotExist, allowing callers to handle
// fresh starts gracefully. A file with a foreign header yields ErrBadHeader.
func OpenGob(filePath string) (*GobDecoder, error) {
	file, err := os.Open(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist // Return specific error for non-existent file
		}
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}

	br := bufio.NewReader(file)
	var header [5]byte
	if _, err := io.ReadFull(br, header[:]); err != nil || [4]byte(header[:4]) != magic {
		closeQuietly(file, filePath)
		return nil, fmt.Errorf("%w in %s", ErrBadHeader, filePath)
	}

	r, release, err := newDecompressor(br, CompressionType(header[4]))
	if err != nil {
		closeQuietly(file, filePath)
		return nil, fmt.Errorf("%w in %s: %v", ErrBadHeader, filePath, err)
	}
	return &GobDecoder{file: file, release: release, decoder: gob.NewDecoder(r)}, nil
}

// LoadGob decodes the values of a file written by SaveGob into the provided
// object pointers, in order.
func LoadGob(filePath string, objectPointers ...interface{}) error {
	dec, err := OpenGob(filePath)
	if err != nil {
		return err
	}
	defer closeQuietly(dec, filePath)

	for _, objectPointer := range objectPointers {
		if err := dec.Decode(objectPointer); err != nil {
			return fmt.Errorf("failed to gob decode from file %s: %w", filePath, err)
		}
	}
	return nil
}

func closeQuietly(c io.Closer, filePath string) {
	if closeErr := c.Close(); closeErr != nil {
		// Log the error but don't override the main error
		logger.WithComponent("persistence").Warn("failed to close file", "path", filePath, "error", closeErr)
	}
}
