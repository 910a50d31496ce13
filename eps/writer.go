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
	"fmt"
	"io"
	"strconv"

	"seehuhn.de/go/postscript"

	"seehuhn.de/go/barcode/layout"
)

// writer emits the painting operators, using the abbreviations defined in
// the file prolog.  Each painted path occupies one line.
//
// Once an error has occurred, all further operations are ignored and the
// error is available in w.Err.
type writer struct {
	Content io.Writer
	Err     error

	midLine bool
}

func newWriter(out io.Writer) *writer {
	return &writer{Content: out}
}

// Bar paints a filled rectangle.
func (w *writer) Bar(b layout.Bar) {
	w.NewPath()
	w.MoveTo(b.LLx, b.LLy)
	w.LineTo(b.LLx, b.URy)
	w.LineTo(b.URx, b.URy)
	w.LineTo(b.URx, b.LLy)
	w.Fill()
	w.ClosePath()
}

// Text shows a string with the current font.
func (w *writer) Text(t layout.Text) {
	w.NewPath()
	w.MoveTo(t.Pos.X, t.Pos.Y)
	w.Show(t.Text)
	w.ClosePath()
}

// NewPath implements the PostScript operator "newpath".
func (w *writer) NewPath() {
	w.op("n")
}

// MoveTo implements the PostScript operator "moveto".
func (w *writer) MoveTo(x, y float64) {
	w.op(coord(x), coord(y), "m")
}

// LineTo implements the PostScript operator "lineto".
func (w *writer) LineTo(x, y float64) {
	w.op(coord(x), coord(y), "l")
}

// Fill implements the PostScript operator "fill".
func (w *writer) Fill() {
	w.op("f")
}

// Show implements the PostScript operator "show".
func (w *writer) Show(s string) {
	w.op(postscript.String(s).PS(), "s")
}

// ClosePath implements the PostScript operator "closepath".
// This also ends the current line.
func (w *writer) ClosePath() {
	w.op("c")
	w.endLine()
}

// ShowPage implements the PostScript operator "showpage".
func (w *writer) ShowPage() {
	w.endLine()
	w.op("showpage")
	w.endLine()
}

func (w *writer) op(args ...string) {
	if w.Err != nil {
		return
	}
	for _, arg := range args {
		if w.midLine {
			_, w.Err = io.WriteString(w.Content, " ")
			if w.Err != nil {
				return
			}
		}
		_, w.Err = io.WriteString(w.Content, arg)
		if w.Err != nil {
			return
		}
		w.midLine = true
	}
}

func (w *writer) endLine() {
	if w.Err != nil || !w.midLine {
		return
	}
	_, w.Err = fmt.Fprintln(w.Content)
	w.midLine = false
}

func coord(x float64) string {
	return strconv.FormatFloat(x, 'f', 4, 64)
}
