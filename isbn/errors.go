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

package isbn

import (
	"errors"
	"strconv"
	"unicode/utf8"
)

// Field names used in [InputError].
const (
	FieldISBN        = "isbn"
	FieldAddOn       = "addon"
	FieldBarHeight   = "bar_height_mm"
	FieldAddOnOffset = "addon_offset_mm"
	FieldDPI         = "dpi"
)

// These errors describe why a request was rejected.
var (
	ErrFormat      = errors.New("ISBN must consist of 13 digits")
	ErrChecksum    = errors.New("invalid ISBN check digit")
	ErrAddOnFormat = errors.New("add-on must consist of 5 digits")
	ErrEncoding    = errors.New("barcode encoding failed")
	ErrParameter   = errors.New("value out of range")
)

// InputError is returned for requests with invalid identifiers or
// dimensions.
type InputError struct {
	Field string
	Value string
	Err   error
}

func (err *InputError) Error() string {
	return "invalid " + err.Field + " " + quote(err.Value) + ": " + err.Err.Error()
}

func (err *InputError) Unwrap() error {
	return err.Err
}

// quote returns s as a Go string literal, shortened to at most
// maxQuoted runes.
func quote(s string) string {
	if utf8.RuneCountInString(s) > maxQuoted {
		r := []rune(s)
		s = string(r[:maxQuoted-3]) + "..."
	}
	return strconv.Quote(s)
}

const maxQuoted = 40
