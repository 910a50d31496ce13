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

// Package layout computes the physical geometry of an ISBN barcode.
//
// All coordinates are in millimetres, with the origin at the bottom left
// corner of the barcode artwork.  The constants in this package reproduce a
// reference rendering and are part of the output format; they are not
// derived from each other.
package layout

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/barcode/ean"
)

// Fixed dimensions, in millimetres unless noted otherwise.
const (
	ModuleWidth = 0.33       // X-dimension
	PointsPerMM = 2.83464567 // scale factor from mm to PostScript points
	FontSize    = 3.175

	TextBaseline     = 0.0847 // baseline of the EAN-13 digits
	GuardBottom      = 1.093  // bottom of guard bars and add-on bars
	DataBarBottom    = 2.743  // bottom of the remaining EAN-13 bars
	QuietZoneLeft    = 3.63
	QuietZoneRight   = 2.31
	AddOnGapModules  = 7      // space between main symbol and add-on, in modules
	AddOnTextGap     = 0.4147 // from add-on bar top to add-on text baseline
	AddOnExtraMargin = 2.0
	TopMargin        = 0.5
)

// Params holds the caller-supplied rendering parameters.
type Params struct {
	// BarHeight is the full height of the guard bars, in mm.
	BarHeight float64

	// AddOnOffset moves the add-on symbol up (positive) or down
	// (negative), in mm.
	AddOnOffset float64
}

// Symbol is an encoded barcode together with its human-readable digits.
type Symbol struct {
	Digits  string
	Modules ean.Modules
}

// A Mark is a single drawing primitive, either a [Bar] or a [Text].
type Mark interface {
	isMark()
}

// Bar is a filled rectangle.
type Bar struct {
	rect.Rect
}

// Text is a string placed with its baseline starting at Pos.
type Text struct {
	Pos  vec.Vec2
	Text string
}

func (Bar) isMark()  {}
func (Text) isMark() {}

// Layout is the result of [Compose].
type Layout struct {
	// Marks lists the drawing primitives in painting order.
	Marks []Mark

	// Width and Height give the size of the artwork, in mm.
	Width, Height float64

	// BarTop is the top edge of all EAN-13 bars.
	BarTop float64

	// AddOnWidth is the horizontal space used by the add-on, including
	// the gap to the main symbol.  This is zero if there is no add-on.
	AddOnWidth float64

	// AddOnTextY is the baseline of the add-on digits, AddOnBarTop the
	// top edge of the add-on bars.  Both are only meaningful if an add-on
	// is present.
	AddOnTextY, AddOnBarTop float64

	// BBox is the bounding box in PostScript points, rounded up to
	// integers.  HiResBBox is the same box without rounding.
	BBox, HiResBBox rect.Rect
}

// Compose places the bars and digits of an EAN-13 symbol and an optional
// EAN-5 add-on.  If addOn.Modules is empty, no add-on is drawn.
//
// The modules must have been produced by [ean.EncodeEAN13] and
// [ean.EncodeEAN5] from the corresponding digits; no further checks are
// made here.
func Compose(main, addOn Symbol, p *Params) *Layout {
	barTop := GuardBottom + p.BarHeight
	addOnTextY := barTop - FontSize + p.AddOnOffset
	addOnBarTop := addOnTextY - AddOnTextGap

	mainWidth := float64(len(main.Modules)) * ModuleWidth
	addOnWidth := 0.0
	hasAddOn := len(addOn.Modules) > 0
	if hasAddOn {
		addOnModules := float64(len(addOn.Modules))
		addOnWidth = AddOnGapModules*ModuleWidth + addOnModules*ModuleWidth + AddOnExtraMargin
	}
	width := QuietZoneLeft + mainWidth + QuietZoneRight + addOnWidth
	height := barTop + TopMargin

	urx, ury := toPoints.Apply(width, height)
	hiRes := rect.Rect{URx: urx, URy: ury}

	l := &Layout{
		Width:       width,
		Height:      height,
		BarTop:      barTop,
		AddOnWidth:  addOnWidth,
		AddOnTextY:  addOnTextY,
		AddOnBarTop: addOnBarTop,
		BBox:        hiRes.Rounded(),
		HiResBBox:   hiRes,
	}

	// The leading digit sits left of the start guard.
	l.text(QuietZoneLeft-FontSize*0.9, TextBaseline, main.Digits[0:1])

	n := len(main.Modules)
	x := QuietZoneLeft
	for i, m := range main.Modules {
		if m == 1 {
			bottom := DataBarBottom
			if isGuard(i, n) {
				bottom = GuardBottom
			}
			l.bar(x, bottom, barTop)
		}
		x += ModuleWidth
	}

	// Digits 2-7 are centred over the left half, digits 8-13 over the
	// right half.  The right half starts after the start guard, six
	// digits and the center guard.
	for i := 0; i < 6; i++ {
		l.text(digitX(QuietZoneLeft, 3+i*7), TextBaseline, main.Digits[i+1:i+2])
	}
	for i := 0; i < 6; i++ {
		l.text(digitX(QuietZoneLeft, 50+i*7), TextBaseline, main.Digits[i+7:i+8])
	}

	if hasAddOn {
		addOnX := QuietZoneLeft + mainWidth + AddOnGapModules*ModuleWidth
		x := addOnX
		for _, m := range addOn.Modules {
			if m == 1 {
				l.bar(x, GuardBottom, addOnBarTop)
			}
			x += ModuleWidth
		}

		// Add-on digits are printed above the bars.  Each digit
		// occupies 7 modules, preceded by the 4-module start pattern
		// or a 2-module separator.
		for i := 0; i < len(addOn.Digits); i++ {
			offset := 4.0 + float64(i)*9.0 + 3.5
			tx := addOnX + offset*ModuleWidth - FontSize*0.3
			l.text(tx, addOnTextY, addOn.Digits[i:i+1])
		}
	}

	return l
}

// Matrix returns the transformation from layout coordinates (mm) to
// PostScript points.
func (l *Layout) Matrix() matrix.Matrix {
	return toPoints
}

var toPoints = matrix.Scale(PointsPerMM, PointsPerMM)

// Bars returns the filled rectangles of the layout, in painting order.
func (l *Layout) Bars() []Bar {
	var res []Bar
	for _, m := range l.Marks {
		if b, ok := m.(Bar); ok {
			res = append(res, b)
		}
	}
	return res
}

// Texts returns the text placements of the layout, in painting order.
func (l *Layout) Texts() []Text {
	var res []Text
	for _, m := range l.Marks {
		if t, ok := m.(Text); ok {
			res = append(res, t)
		}
	}
	return res
}

func (l *Layout) bar(x, bottom, top float64) {
	l.Marks = append(l.Marks, Bar{rect.Rect{
		LLx: x,
		LLy: bottom,
		URx: x + ModuleWidth,
		URy: top,
	}})
}

func (l *Layout) text(x, y float64, s string) {
	l.Marks = append(l.Marks, Text{Pos: vec.Vec2{X: x, Y: y}, Text: s})
}

// digitX returns the text origin for a digit centred over the 7-module
// block starting at module index start.
func digitX(x0 float64, start int) float64 {
	center := x0 + (float64(start)+3.5)*ModuleWidth
	return center - FontSize*0.3
}

// isGuard reports whether module i of an n-module EAN-13 symbol belongs to
// the start, center or end guard.  Guard bars extend further down than
// data bars.
func isGuard(i, n int) bool {
	return i < 3 || (i >= 45 && i <= 49) || i >= n-3
}
