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

package eps

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/barcode/ean"
	"seehuhn.de/go/barcode/internal/ghostscript"
	"seehuhn.de/go/barcode/layout"
)

var goldenCases = []*Settings{
	{Value: "9780306406157", BarHeight: 15, DPI: 300},
	{Value: "9780306406157", AddOn: "12345", BarHeight: 15, DPI: 300},
	{Value: "9788969930460", AddOn: "13590", BarHeight: 22.5, AddOnOffset: -1.25, DPI: 600},
}

// TestGolden compares the generated files with reference files which
// were checked by hand.
func TestGolden(t *testing.T) {
	for _, s := range goldenCases {
		t.Run(s.Value+s.AddOn, func(t *testing.T) {
			want, err := os.ReadFile(filepath.Join("testdata", s.Value+s.AddOn+".eps"))
			if err != nil {
				t.Fatal(err)
			}

			got, err := Generate(s)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(string(want), got); d != "" {
				t.Error(d)
			}
		})
	}
}

func TestHeader(t *testing.T) {
	got, err := Generate(&Settings{Value: "9780306406157", BarHeight: 15, DPI: 300})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(got, "\n")

	wantHead := []string{
		"%!PS-Adobe-2.0 EPSF-1.2",
		"%%BoundingBox: 0 0 106 48",
		"%%HiResBoundingBox: 0 0 105.70394 47.03528",
		"%%Creator: ISBN Barcode Maker",
		"%%EndComments",
		"",
		"%SETTINGS",
	}
	if d := cmp.Diff(wantHead, lines[:len(wantHead)]); d != "" {
		t.Error(d)
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "% Add-On:") {
			t.Errorf("unexpected line %q", line)
		}
	}
	if !strings.Contains(got, "\n% Add-On Offset: 0.0000 mm\n") {
		t.Error("add-on offset missing")
	}
	if !strings.HasSuffix(got, "\nshowpage\n") {
		t.Error("missing showpage")
	}
}

// TestMarks checks that every bar and every digit of the layout appears
// exactly once in the output.
func TestMarks(t *testing.T) {
	s := &Settings{Value: "9780306406157", AddOn: "12345", BarHeight: 15, DPI: 300}
	got, err := Generate(s)
	if err != nil {
		t.Fatal(err)
	}

	var fills, shows int
	for _, line := range strings.Split(got, "\n") {
		switch {
		case strings.HasPrefix(line, "n ") && strings.HasSuffix(line, " l f c"):
			fills++
		case strings.HasPrefix(line, "n ") && strings.HasSuffix(line, ") s c"):
			shows++
		}
	}

	main, _ := ean.EncodeEAN13(s.Value)
	addOn, _ := ean.EncodeEAN5(s.AddOn)
	if want := main.Bars() + addOn.Bars(); fills != want {
		t.Errorf("%d rectangles, want %d", fills, want)
	}
	if shows != 13+5 {
		t.Errorf("%d texts, want 18", shows)
	}
	if !strings.Contains(got, "n 38.8125 12.9180 m (1) s c\n") {
		t.Error("first add-on digit missing")
	}
}

func TestGenerateErrors(t *testing.T) {
	cases := []struct {
		s    *Settings
		want error
	}{
		{&Settings{Value: "978030640615", BarHeight: 15}, ErrInvalidValue},
		{&Settings{Value: "978030640615a", BarHeight: 15}, ErrInvalidValue},
		{&Settings{Value: "9780306406157", AddOn: "1234", BarHeight: 15}, ErrInvalidAddOn},
		{&Settings{Value: "9780306406157", AddOn: "1234x", BarHeight: 15}, ErrInvalidAddOn},
	}
	for _, c := range cases {
		doc, err := Generate(c.s)
		if !errors.Is(err, c.want) {
			t.Errorf("%q/%q: got %v, want %v", c.s.Value, c.s.AddOn, err, c.want)
		}
		if doc != "" {
			t.Errorf("%q/%q: partial output", c.s.Value, c.s.AddOn)
		}
	}

	// The check digit is not verified at this level.
	if _, err := Generate(&Settings{Value: "9780306406158", BarHeight: 15}); err != nil {
		t.Error(err)
	}
}

type failWriter struct {
	n int
}

var errWriteFailed = errors.New("write failed")

func (w *failWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		n := w.n
		w.n = 0
		return n, errWriteFailed
	}
	w.n -= len(p)
	return len(p), nil
}

func TestWriteError(t *testing.T) {
	s := &Settings{Value: "9780306406157", AddOn: "12345", BarHeight: 15, DPI: 300}
	l, err := Compose(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{0, 100, 1000, 3000} {
		err := Write(&failWriter{n: n}, l, s)
		if !errors.Is(err, errWriteFailed) {
			t.Errorf("n=%d: got %v", n, err)
		}
	}
}

// TestGhostscript renders a barcode with ghostscript and counts the bars.
func TestGhostscript(t *testing.T) {
	s := &Settings{Value: "9780306406157", AddOn: "12345", BarHeight: 15, DPI: 300}
	doc, err := Generate(s)
	if err != nil {
		t.Fatal(err)
	}
	img := ghostscript.RenderEPS(t, doc)

	l, _ := Compose(s)
	const pixPerPt = ghostscript.Resolution / 72
	b := img.Bounds()
	if dx := b.Dx() - int(l.BBox.URx)*pixPerPt; dx < -pixPerPt || dx > pixPerPt {
		t.Errorf("image width %d, bbox %g", b.Dx(), l.BBox.URx)
	}

	// map layout coordinates to pixels, with y pointing down
	M := l.Matrix()
	toPix := func(x, y float64) (int, int) {
		x, y = M.Apply(x, y)
		return int(x * pixPerPt), b.Max.Y - 1 - int(y*pixPerPt)
	}
	x0, y := toPix(layout.QuietZoneLeft, 7)
	x1, _ := toPix(layout.QuietZoneLeft+95*layout.ModuleWidth, 7)
	x0 -= 2
	x1 += 2

	main, _ := ean.EncodeEAN13(s.Value)
	want := countRuns(main)
	if got := ghostscript.Runs(img, y, x0, x1); got != want {
		t.Errorf("found %d bars, want %d", got, want)
	}

	// the leading digit is left of the start guard
	ink := ghostscript.InkBounds(img)
	if ink.Min.X >= x0 {
		t.Errorf("no ink left of the start guard: %v", ink)
	}
}

func countRuns(m ean.Modules) int {
	runs := 0
	for i, x := range m {
		if x == 1 && (i == 0 || m[i-1] == 0) {
			runs++
		}
	}
	return runs
}
