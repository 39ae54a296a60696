/*
 * compress.go, part of molfit.
 *
 * Copyright 2026 The molfit authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package pdb

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	chem "github.com/molfit/molfit"
)

//Compression identifies the compression applied to a file, chosen from
//its extension.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
)

//CompressionFor returns the compression used for path: Gzip for .gz,
//Zstd for .zst and .zstd, None otherwise.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	default:
		return None
	}
}

//closers closes a stack of streams, innermost (compressor) first,
//and reports the first error.
type closers []func() error

func (c closers) Close() error {
	var first error
	for _, f := range c {
		if err := f(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type readCloser struct {
	io.Reader
	closers
}

type writeCloser struct {
	io.Writer
	closers
}

//openRead opens path for reading, decompressing it if needed.
//The returned ReadCloser also closes the file.
func openRead(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chem.NewIOError(path, "open", err)
	}
	switch CompressionFor(path) {
	case Gzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, chem.NewIOError(path, "read", err)
		}
		return readCloser{gz, closers{gz.Close, f.Close}}, nil
	case Zstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, chem.NewIOError(path, "read", err)
		}
		//*zstd.Decoder.Close returns nothing.
		return readCloser{zr, closers{func() error { zr.Close(); return nil }, f.Close}}, nil
	default:
		return f, nil
	}
}

//openWrite creates path, compressing what is written if the extension
//asks for it. Nothing is guaranteed to be on disk until Close returns nil.
func openWrite(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, chem.NewIOError(path, "create", err)
	}
	switch CompressionFor(path) {
	case Gzip:
		gz := gzip.NewWriter(f)
		return writeCloser{gz, closers{gz.Close, f.Close}}, nil
	case Zstd:
		zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			f.Close()
			return nil, chem.NewIOError(path, "create", err)
		}
		return writeCloser{zw, closers{zw.Close, f.Close}}, nil
	default:
		return f, nil
	}
}
