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

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.  The keys double as the English text.
const (
	msgFormat       = "The ISBN must consist of 13 digits."
	msgChecksum     = "The ISBN check digit is not correct."
	msgAddOnFormat  = "The add-on must consist of 5 digits."
	msgParameter    = "The bar height, add-on offset or resolution is out of range."
	msgEncodeFailed = "Barcode generation failed."
	msgGenerated    = "The barcode has been generated."
	msgSaved        = "Saved: %s"
	msgSaveFailed   = "Saving failed: %s"
)

func init() {
	for _, m := range []struct{ key, ko string }{
		{msgFormat, "ISBN은 13자리 숫자여야 합니다."},
		{msgChecksum, "ISBN 체크디짓이 올바르지 않습니다."},
		{msgAddOnFormat, "분류번호는 5자리 숫자여야 합니다."},
		{msgParameter, "바 높이, 분류번호 위치 또는 해상도 값이 허용 범위를 벗어났습니다."},
		{msgEncodeFailed, "바코드 생성에 실패했습니다."},
		{msgGenerated, "바코드가 생성되었습니다."},
		{msgSaved, "저장 완료: %s"},
		{msgSaveFailed, "저장 실패: %s"},
	} {
		message.SetString(language.Korean, m.key, m.ko)
	}
}

// messageKey returns the user-facing message for a rejected request.
func messageKey(err error) string {
	switch {
	case errors.Is(err, ErrFormat):
		return msgFormat
	case errors.Is(err, ErrChecksum):
		return msgChecksum
	case errors.Is(err, ErrAddOnFormat):
		return msgAddOnFormat
	case errors.Is(err, ErrParameter):
		return msgParameter
	default:
		return msgEncodeFailed
	}
}
