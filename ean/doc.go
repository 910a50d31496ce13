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

// Package ean implements the EAN-13 and EAN-5 barcode symbologies.
//
// An EAN-13 symbol encodes a 13-digit product identifier, for example an
// ISBN-13, as a sequence of 95 modules.  The first digit is not encoded
// directly; instead it selects which of the two left-hand code tables (L or
// G) is used for each of the following six digits.  An EAN-5 add-on symbol
// encodes five further digits in 47 modules, typically a price or
// classification code printed to the right of the main symbol.
//
// Modules are returned as a [Modules] value, one byte per module, where 1
// is a bar and 0 is a space.  All functions in this package are pure and
// safe for concurrent use.
package ean
