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

// Parity selects one of the three EAN code tables.
type Parity byte

// These are the three EAN code tables.
// L and G are used for left-hand digits and have odd and even parity,
// respectively.  R is used for right-hand digits.
const (
	L Parity = 'L'
	G Parity = 'G'
	R Parity = 'R'
)

func (p Parity) String() string {
	return string(p)
}

// codes gives the 7-module pattern for each digit, per code table.
var codes = map[Parity][10]string{
	L: {
		"0001101", "0011001", "0010011", "0111101", "0100011",
		"0110001", "0101111", "0111011", "0110111", "0001011",
	},
	G: {
		"0100111", "0110011", "0011011", "0100001", "0011101",
		"0111001", "0000101", "0010001", "0001001", "0010111",
	},
	R: {
		"1110010", "1100110", "1101100", "1000010", "1011100",
		"1001110", "1010000", "1000100", "1001000", "1110100",
	},
}

// firstDigitParity gives the code tables used for digits 2-7 of an EAN-13
// symbol, indexed by the leading digit.
var firstDigitParity = [10]string{
	"LLLLLL", "LLGLGG", "LLGGLG", "LLGGGL", "LGLLGG",
	"LGGLLG", "LGGGLL", "LGLGLG", "LGLGGL", "LGGLGL",
}

// addOnParity gives the code tables used for the five digits of an EAN-5
// symbol, indexed by the add-on check digit.
var addOnParity = [10]string{
	"GGLLL", "GLGLL", "GLLGL", "GLLLG", "LGGLL",
	"LLGGL", "LLLGG", "LGLGL", "LGLLG", "LLGLG",
}

// Guard patterns.
const (
	startGuard  = "101"
	centerGuard = "01010"
	endGuard    = "101"

	addOnStart     = "1011"
	addOnSeparator = "01"
)

// Symbol sizes, in modules.
const (
	EAN13Modules = 95
	EAN5Modules  = 47
)

// Code returns the 7-module pattern for digit d in code table p.
func Code(p Parity, d int) string {
	return codes[p][d]
}

// ParityEAN13 returns the code tables used for the six left-hand data digits
// of an EAN-13 symbol with the given leading digit.
func ParityEAN13(first int) []Parity {
	return toParity(firstDigitParity[first])
}

// ParityEAN5 returns the code tables used for the five digits of an EAN-5
// symbol with the given check digit.
func ParityEAN5(check int) []Parity {
	return toParity(addOnParity[check])
}

func toParity(s string) []Parity {
	res := make([]Parity, len(s))
	for i := range s {
		res[i] = Parity(s[i])
	}
	return res
}
