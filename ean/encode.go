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

package ean

import "strings"

// Modules is a sequence of barcode modules.
// Each element is 1 for a bar and 0 for a space.
type Modules []byte

// String returns the modules in the form "10100011...".
func (m Modules) String() string {
	var b strings.Builder
	b.Grow(len(m))
	for _, x := range m {
		b.WriteByte('0' + x)
	}
	return b.String()
}

// Bars returns the number of bar modules in m.
func (m Modules) Bars() int {
	n := 0
	for _, x := range m {
		if x != 0 {
			n++
		}
	}
	return n
}

func (m Modules) appendPattern(s string) Modules {
	for i := 0; i < len(s); i++ {
		m = append(m, s[i]-'0')
	}
	return m
}

// EncodeEAN13 encodes a 13-digit string as an EAN-13 symbol.
//
// The result always has length [EAN13Modules].  Only the format of s is
// checked; the check digit is encoded as given.  Use [ValidateISBN13] to
// verify it.  The second return value is false if s is not exactly 13
// ASCII digits.
func EncodeEAN13(s string) (Modules, bool) {
	d, ok := digits(s, 13)
	if !ok {
		return nil, false
	}

	m := make(Modules, 0, EAN13Modules)
	m = m.appendPattern(startGuard)
	for i, p := range ParityEAN13(d[0]) {
		m = m.appendPattern(Code(p, d[i+1]))
	}
	m = m.appendPattern(centerGuard)
	for _, x := range d[7:] {
		m = m.appendPattern(Code(R, x))
	}
	m = m.appendPattern(endGuard)
	return m, true
}

// EncodeEAN5 encodes a 5-digit string as an EAN-5 add-on symbol.
//
// The result always has length [EAN5Modules].  The second return value is
// false if s is not exactly 5 ASCII digits.
func EncodeEAN5(s string) (Modules, bool) {
	d, ok := digits(s, 5)
	if !ok {
		return nil, false
	}

	m := make(Modules, 0, EAN5Modules)
	m = m.appendPattern(addOnStart)
	for i, p := range ParityEAN5(addOnCheck(d)) {
		if i > 0 {
			m = m.appendPattern(addOnSeparator)
		}
		m = m.appendPattern(Code(p, d[i]))
	}
	return m, true
}
