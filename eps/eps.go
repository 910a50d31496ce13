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

// Package eps writes ISBN barcodes as Encapsulated PostScript files.
//
// The output format is fixed down to the number of decimal places, so that
// the same input always produces byte-for-byte the same file.  Downstream
// tools may parse the "%SETTINGS" comment block at the top of the file.
package eps

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"text/template"

	"seehuhn.de/go/postscript"

	"seehuhn.de/go/barcode/ean"
	"seehuhn.de/go/barcode/layout"
)

// Fixed values recorded in, or used by, every generated file.
const (
	Creator   = "ISBN Barcode Maker"
	Symbology = "ISBN"
	TextFont  = "Arial"
	FontName  = "ArialMT"
)

// Settings describes one barcode.
type Settings struct {
	// Value is the 13-digit main identifier.
	Value string

	// AddOn is either empty or the 5-digit supplementary code.
	AddOn string

	// BarHeight is the height of the guard bars, in mm.
	BarHeight float64

	// AddOnOffset shifts the add-on symbol vertically, in mm.
	AddOnOffset float64

	// DPI is recorded in the file, but does not affect the geometry.
	DPI int
}

// Params returns the layout parameters for s.
func (s *Settings) Params() *layout.Params {
	return &layout.Params{
		BarHeight:   s.BarHeight,
		AddOnOffset: s.AddOnOffset,
	}
}

var (
	// ErrInvalidValue is returned if the main identifier is not 13 digits.
	ErrInvalidValue = errors.New("value must consist of 13 digits")

	// ErrInvalidAddOn is returned if the add-on is neither empty nor
	// 5 digits.
	ErrInvalidAddOn = errors.New("add-on must be empty or consist of 5 digits")
)

// Generate encodes and lays out the barcode described by s, and returns the
// EPS file contents.
//
// Only the format of s.Value is checked; callers which need a valid check
// digit must use [ean.ValidateISBN13] first.
func Generate(s *Settings) (string, error) {
	l, err := Compose(s)
	if err != nil {
		return "", err
	}
	buf := &strings.Builder{}
	err = Write(buf, l, s)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Compose encodes s.Value and s.AddOn and computes the layout.
func Compose(s *Settings) (*layout.Layout, error) {
	main, ok := ean.EncodeEAN13(s.Value)
	if !ok {
		return nil, ErrInvalidValue
	}
	var addOn ean.Modules
	if s.AddOn != "" {
		addOn, ok = ean.EncodeEAN5(s.AddOn)
		if !ok {
			return nil, ErrInvalidAddOn
		}
	}
	l := layout.Compose(
		layout.Symbol{Digits: s.Value, Modules: main},
		layout.Symbol{Digits: s.AddOn, Modules: addOn},
		s.Params())
	return l, nil
}

// Write writes the EPS file for the layout l to w.
// The settings s are recorded in the file header.
func Write(w io.Writer, l *layout.Layout, s *Settings) error {
	M := l.Matrix()
	data := &header{
		Layout:   l,
		Settings: s,
		XDim:     layout.ModuleWidth,
		ScaleX:   M[0],
		ScaleY:   M[3],
		FontSize: layout.FontSize,

		Creator:   Creator,
		Symbology: Symbology,
		TextFont:  TextFont,
		FontName:  FontName,
	}
	err := headerTmpl.Execute(w, data)
	if err != nil {
		return err
	}

	pw := newWriter(w)
	for _, m := range l.Marks {
		switch m := m.(type) {
		case layout.Bar:
			pw.Bar(m)
		case layout.Text:
			pw.Text(m)
		}
	}
	pw.ShowPage()
	return pw.Err
}

type header struct {
	*layout.Layout
	*Settings

	XDim           float64
	ScaleX, ScaleY float64
	FontSize       float64

	Creator, Symbology, TextFont, FontName string
}

func fixed(prec int) func(float64) string {
	return func(x float64) string {
		return strconv.FormatFloat(x, 'f', prec, 64)
	}
}

var headerTmpl = template.Must(template.New("eps").Funcs(template.FuncMap{
	"F4": fixed(4),
	"F5": fixed(5),
	"F7": fixed(7),
	"F8": fixed(8),
	"I": func(x float64) int {
		return int(x)
	},
	"PN": func(s string) string {
		return postscript.Name(s).PS()
	},
}).Parse(`%!PS-Adobe-2.0 EPSF-1.2
%%BoundingBox: 0 0 {{I .BBox.URx}} {{I .BBox.URy}}
%%HiResBoundingBox: 0 0 {{F5 .HiResBBox.URx}} {{F5 .HiResBBox.URy}}
%%Creator: {{.Creator}}
%%EndComments

%SETTINGS
% Color: CMYK
% Background: 0.000 0.000 0.000 0.000
% Foreground: 0.000 0.000 0.000 1.000
% Human Readable: Yes
% Text Font: {{.TextFont}}
% Output DPI: {{.DPI}}
% Symbology: {{.Symbology}}
% Value: {{.Value}}
{{if .AddOn -}}
% Add-On: {{.AddOn}}
{{end -}}
% X-Dimension: {{F8 .XDim}} mm
% Bar Height: {{F8 .BarHeight}} mm
% Add-On Offset: {{F4 .AddOnOffset}} mm

/bd {bind def} bind def
/c {closepath} bd
/f {fill} bd
/l {lineto} bd
/m {moveto} bd
/n {newpath} bd
/r {rotate} bd
/sc {scale} bd
/s {show} bd
/t {translate} bd

{{F8 .ScaleX}} {{F8 .ScaleY}} sc
0.000 0.000 0.000 1.000 setcmykcolor
{{PN .FontName}} findfont {{F7 .FontSize}} scalefont setfont
`))
