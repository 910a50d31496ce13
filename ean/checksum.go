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

// ValidateISBN13 reports whether s is a valid 13-digit identifier.
// This requires exactly 13 ASCII digits with a correct check digit:
// the digits, weighted alternately by 1 and 3 starting with weight 1,
// must sum to a multiple of 10.
func ValidateISBN13(s string) bool {
	d, ok := digits(s, 13)
	if !ok {
		return false
	}
	return weightedSum(d)%10 == 0
}

// ISBN13CheckDigit returns the check digit which completes the 12-digit
// prefix s to a valid 13-digit identifier.
// The second return value is false if s is not exactly 12 ASCII digits.
func ISBN13CheckDigit(s string) (int, bool) {
	d, ok := digits(s, 12)
	if !ok {
		return 0, false
	}
	return (10 - weightedSum(d)%10) % 10, true
}

// AddOnCheckDigit returns the EAN-5 check digit for the five digits in s.
// The check digit selects the parity pattern of the add-on symbol, but is
// not itself encoded or printed.
// The second return value is false if s is not exactly 5 ASCII digits.
func AddOnCheckDigit(s string) (int, bool) {
	d, ok := digits(s, 5)
	if !ok {
		return 0, false
	}
	return addOnCheck(d), true
}

func addOnCheck(d []int) int {
	return (3*d[0] + 9*d[1] + 3*d[2] + 9*d[3] + 3*d[4]) % 10
}

// weightedSum computes the EAN sum with weights 1, 3, 1, 3, ...
func weightedSum(d []int) int {
	sum := 0
	for i, x := range d {
		if i%2 == 0 {
			sum += x
		} else {
			sum += 3 * x
		}
	}
	return sum
}

// digits converts s into a slice of digit values.  The second return value
// is false unless s consists of exactly n ASCII digits.
func digits(s string, n int) ([]int, bool) {
	if len(s) != n {
		return nil, false
	}
	res := make([]int, n)
	for i := 0; i < n; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, false
		}
		res[i] = int(c - '0')
	}
	return res, true
}

// IsDigits reports whether s consists of exactly n ASCII digits.
func IsDigits(s string, n int) bool {
	_, ok := digits(s, n)
	return ok
}
