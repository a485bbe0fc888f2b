package util

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// MappedSource is a read-only view of a source file.
//
// Files are memory-mapped when possible so the linter does not copy large
// bundles onto the heap; empty files and platforms where mmap fails fall
// back to os.ReadFile. Bytes must not be used after Close.
type MappedSource struct {
	data   []byte
	mapped mmap.MMap
	file   *os.File
}

// MapSource opens filePath for reading.
func MapSource(filePath string) (*MappedSource, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("source %s is a directory", filePath)
	}

	if info.Size() > 0 {
		m, err := mmap.Map(f, mmap.RDONLY, 0)
		if err == nil {
			return &MappedSource{data: m, mapped: m, file: f}, nil
		}
	}
	f.Close()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return &MappedSource{data: data}, nil
}

// Bytes returns the file contents.
func (s *MappedSource) Bytes() []byte {
	return s.data
}

// Mapped reports whether the contents are memory-mapped.
func (s *MappedSource) Mapped() bool {
	return s.mapped != nil
}

// Close unmaps the file. It is safe to call more than once.
func (s *MappedSource) Close() error {
	var err error
	if s.mapped != nil {
		err = s.mapped.Unmap()
		s.mapped = nil
	}
	if s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
		s.file = nil
	}
	s.data = nil
	return err
}
