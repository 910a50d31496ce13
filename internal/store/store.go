// seehuhn.de/go/barcode - ISBN barcodes as Encapsulated PostScript
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package store writes generated documents to disk.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/facebookgo/atomicfile"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("barcode-store")

// Dir stores documents in the file system.
// Relative paths are interpreted relative to the directory Root.
//
// Files are replaced atomically: readers see either the old or the new
// contents, never a partially written file.
type Dir struct {
	Root string
	Mode os.FileMode
}

// New returns a store for the given directory.
func New(root string) *Dir {
	return &Dir{Root: root, Mode: 0o644}
}

// Save writes content to path and returns the cleaned path of the written
// file.  Missing parent directories are created.
func (d *Dir) Save(ctx context.Context, path string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("store: empty file name")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.Root, path)
	}
	path = filepath.Clean(path)

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return "", err
	}

	mode := d.Mode
	if mode == 0 {
		mode = 0o644
	}
	f, err := atomicfile.New(path, mode)
	if err != nil {
		return "", err
	}
	_, err = f.Write(content)
	if err != nil {
		if abortErr := f.Abort(); abortErr != nil {
			log.Warnw("cannot remove temporary file", "path", path, "err", abortErr)
		}
		return "", err
	}
	err = f.Close()
	if err != nil {
		return "", err
	}

	log.Debugw("wrote file", "path", path, "bytes", len(content))
	return path, nil
}
