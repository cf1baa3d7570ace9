package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies the compression of a data file
type Codec int

const (
	Plain Codec = iota
	Gzip
	Zstd
	LZ4
)

// CodecFor picks the codec from the file extension.
func CodecFor(fileName string) Codec {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".gz":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	}
	return Plain
}

type multiCloser struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

// Close closes in order, returning the first error.
func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenFile opens fileName for reading, decompressing it when its extension
// names a known codec.
func OpenFile(fileName string) (io.ReadCloser, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	reader, err := NewReader(file, CodecFor(fileName))
	if err != nil {
		file.Close()
		return nil, err
	}
	return &multiCloser{Reader: reader, closers: []io.Closer{reader, file}}, nil
}

// CreateFile creates fileName for writing, compressing it when its extension
// names a known codec. Data is only complete once the writer is closed.
func CreateFile(fileName string) (io.WriteCloser, error) {
	file, err := os.Create(fileName)
	if err != nil {
		return nil, fmt.Errorf("error creating file: %w", err)
	}
	writer, err := NewWriter(file, CodecFor(fileName))
	if err != nil {
		file.Close()
		return nil, err
	}
	return &multiCloser{Writer: writer, closers: []io.Closer{writer, file}}, nil
}

func NewReader(r io.Reader, codec Codec) (io.ReadCloser, error) {
	switch codec {
	case Gzip:
		reader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("error opening gzip stream: %w", err)
		}
		return reader, nil
	case Zstd:
		decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("error opening zstd stream: %w", err)
		}
		return decoder.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return io.NopCloser(r), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func NewWriter(w io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("error creating zstd stream: %w", err)
		}
		return encoder, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	}
	return nopWriteCloser{w}, nil
}
