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

// Package ghostscript renders EPS files in unit tests.
//
// This calls the ghostscript command-line tool, and can be used to verify
// that Ghostscript's idea of the generated PostScript matches our own.
// Tests are skipped if ghostscript is not installed.
package ghostscript

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
)

var keepTempFiles = false

// Resolution is the rendering resolution in pixels per inch.
const Resolution = 4 * 72

// RenderEPS renders the given EPS file contents to a grayscale image.
//
// The page is cropped to the bounding box of the file, so that the image
// has ceil(bbox * Resolution / 72) pixels in each direction.
// Anti-aliasing is switched off.
func RenderEPS(t *testing.T, eps string) image.Image {
	t.Helper()

	img, err := renderEPS(eps)
	if errors.Is(err, ErrNoGhostscript) {
		t.Skip("ghostscript not found")
	} else if err != nil {
		t.Fatal(err)
	}
	return img
}

func renderEPS(eps string) (image.Image, error) {
	if !isAvailable() {
		return nil, ErrNoGhostscript
	}

	idx := <-gsIndex
	gsIndex <- idx + 1

	var img image.Image
	err := withTempDir(func(dir string) error {
		epsName := filepath.Join(dir, fmt.Sprintf("test%03d.eps", idx))
		pngName := filepath.Join(dir, fmt.Sprintf("test%03d.png", idx))
		err := os.WriteFile(epsName, []byte(eps), 0o644)
		if err != nil {
			return err
		}

		cmd := exec.Command(
			"gs", "-q", "-dSAFER", "-dBATCH", "-dNOPAUSE", "-dEPSCrop",
			"-sDEVICE=pnggray", fmt.Sprintf("-r%d", Resolution),
			"-dTextAlphaBits=1", "-dGraphicsAlphaBits=1",
			"-o", pngName,
			epsName)
		cmd.Dir = dir
		cmd.Stdin = nil
		cmd.Stderr = nil
		// Font substitution messages end up on stdout; they are harmless here.
		_, err = cmd.Output()
		if err != nil {
			return err
		}

		fd, err := os.Open(pngName)
		if err != nil {
			return err
		}
		defer fd.Close()
		img, err = png.Decode(fd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// withTempDir calls fn with a new working directory.  Unless keepTempFiles
// is set, the directory is removed when fn returns, whether or not fn
// succeeded.
func withTempDir(fn func(dir string) error) error {
	dir, err := tempDir()
	if err != nil {
		return err
	}
	if !keepTempFiles {
		defer os.RemoveAll(dir)
	}
	return fn(dir)
}

func tempDir() (string, error) {
	if !keepTempFiles {
		return os.MkdirTemp("", "eps")
	}

	const dirName = "./render-files"
	err := os.Mkdir(dirName, 0755)
	if err != nil && !os.IsExist(err) {
		return "", err
	}
	return filepath.Abs(dirName)
}

// IsDark reports whether the pixel at (x, y) is closer to black than to
// white.
func IsDark(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return (r+g+b)/3 < 0x8000
}

// Runs counts the maximal runs of dark pixels in row y, between x0
// (inclusive) and x1 (exclusive).
func Runs(img image.Image, y, x0, x1 int) int {
	runs := 0
	prev := false
	for x := x0; x < x1; x++ {
		cur := IsDark(img, x, y)
		if cur && !prev {
			runs++
		}
		prev = cur
	}
	return runs
}

// InkBounds returns the smallest rectangle containing all dark pixels.
// The result is empty if the image has no dark pixels.
func InkBounds(img image.Image) image.Rectangle {
	var res image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if IsDark(img, x, y) {
				res = res.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return res
}

// isAvailable returns true if the ghostscript command-line tool is available.
func isAvailable() bool {
	gsScriptOnce.Do(func() {
		out, err := exec.Command("gs", "-h").Output()
		if err != nil {
			gsScriptFound = false
			return
		}
		gsScriptFound = gsScriptPNGRe.Match(out)
		gsIndex <- 1
	})
	return gsScriptFound
}

// ErrNoGhostscript is returned if the ghostscript command-line tool is not
// available.
var ErrNoGhostscript = errors.New("cannot run ghostscript")

var (
	gsScriptOnce  sync.Once
	gsScriptPNGRe = regexp.MustCompile(`\bpnggray\b`)
	gsScriptFound bool
	gsIndex       = make(chan int, 1)
)
