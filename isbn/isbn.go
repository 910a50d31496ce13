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

// Package isbn turns barcode requests into EPS documents.
//
// This is the request/response layer in front of the [ean], [layout] and
// [eps] packages.  A [Service] validates the raw input strings, reports
// problems as user-facing messages in the configured language, and
// optionally hands finished documents to a [Store].
package isbn

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/xdg-go/stringprep"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"seehuhn.de/go/barcode/ean"
	"seehuhn.de/go/barcode/eps"
)

var log = logging.Logger("isbn")

// Request describes a barcode to generate.
type Request struct {
	// ISBN is the main identifier.  After normalisation, this must be
	// 13 digits with a valid check digit.
	ISBN string `json:"isbn"`

	// AddOn is an optional 5-digit supplementary code.
	AddOn string `json:"addon"`

	// BarHeightMM is the height of the guard bars in mm.
	// If this is zero, the service default is used.
	BarHeightMM float64 `json:"bar_height_mm"`

	// DPI is recorded in the document.  If this is zero, the service
	// default is used.
	DPI int `json:"dpi"`

	// AddOnOffsetMM shifts the add-on vertically, in mm.  If this is
	// nil, the service default is used.  An explicit zero is kept.
	AddOnOffsetMM *float64 `json:"addon_offset_mm,omitempty"`
}

// Result reports the outcome of a request.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Document string `json:"eps_content,omitempty"`
	FilePath string `json:"file_path,omitempty"`

	// Err is the underlying error for failed requests.
	Err error `json:"-"`
}

// Store persists generated documents.
type Store interface {
	// Save writes content to the given path and returns the path of the
	// written file.
	Save(ctx context.Context, path string, content []byte) (string, error)
}

// Defaults holds the values used for unset fields in a [Request].
type Defaults struct {
	BarHeightMM   float64
	DPI           int
	AddOnOffsetMM float64
}

// MaxDimensionMM bounds the bar height and the magnitude of the add-on
// offset.
const MaxDimensionMM = 1000

// Service handles barcode requests.
// A Service has no mutable state and can be used concurrently.
type Service struct {
	store    Store
	defaults Defaults
	lang     language.Tag
}

// NewService creates a new Service.  Messages are produced in the given
// language, falling back to English.  The store may be nil, in which case
// [Service.Save] always fails.
func NewService(store Store, defaults Defaults, lang language.Tag) *Service {
	return &Service{
		store:    store,
		defaults: defaults,
		lang:     lang,
	}
}

// Generate validates the request and produces the EPS document.
// On failure, the result carries no document.
func (s *Service) Generate(req *Request) *Result {
	p := message.NewPrinter(s.lang)

	value, addOn, err := Check(req)
	if err != nil {
		log.Warnw("rejected request", "isbn", req.ISBN, "addon", req.AddOn, "err", err)
		return s.fail(p, err)
	}

	settings := &eps.Settings{
		Value:       value,
		AddOn:       addOn,
		BarHeight:   req.BarHeightMM,
		AddOnOffset: s.defaults.AddOnOffsetMM,
		DPI:         req.DPI,
	}
	if settings.BarHeight == 0 {
		settings.BarHeight = s.defaults.BarHeightMM
	}
	if settings.DPI == 0 {
		settings.DPI = s.defaults.DPI
	}
	if req.AddOnOffsetMM != nil {
		settings.AddOnOffset = *req.AddOnOffsetMM
	}
	err = checkDimensions(settings)
	if err != nil {
		log.Warnw("rejected request", "isbn", value, "bar_height", settings.BarHeight,
			"addon_offset", settings.AddOnOffset, "dpi", settings.DPI, "err", err)
		return s.fail(p, err)
	}

	doc, err := eps.Generate(settings)
	if err != nil {
		// Check has already verified the input, so this is a bug.
		log.Errorw("encoding failed after validation", "isbn", value, "addon", addOn, "err", err)
		return s.fail(p, &InputError{Field: FieldISBN, Value: value, Err: ErrEncoding})
	}

	log.Debugw("generated barcode", "isbn", value, "addon", addOn,
		"bar_height", settings.BarHeight, "bytes", len(doc))
	return &Result{
		Success:  true,
		Message:  p.Sprintf(msgGenerated),
		Document: doc,
	}
}

// Save stores a generated document at the given path.
func (s *Service) Save(ctx context.Context, content, path string) *Result {
	p := message.NewPrinter(s.lang)

	if s.store == nil {
		err := errors.New("no store configured")
		return &Result{Message: p.Sprintf(msgSaveFailed, err.Error()), Err: err}
	}

	written, err := s.store.Save(ctx, path, []byte(content))
	if err != nil {
		log.Errorw("cannot save document", "path", path, "err", err)
		return &Result{Message: p.Sprintf(msgSaveFailed, err.Error()), Err: err}
	}

	log.Infow("saved document", "path", written, "bytes", len(content))
	return &Result{
		Success:  true,
		Message:  p.Sprintf(msgSaved, written),
		FilePath: written,
	}
}

func (s *Service) fail(p *message.Printer, err error) *Result {
	return &Result{
		Message: p.Sprintf(messageKey(err)),
		Err:     err,
	}
}

// Check normalises and validates the identifiers in req.
// On success, the normalised main identifier and add-on are returned.
// Otherwise the error is an [*InputError].
func Check(req *Request) (value, addOn string, err error) {
	value, ok := Normalize(req.ISBN)
	if !ok || !ean.IsDigits(value, 13) {
		return "", "", &InputError{Field: FieldISBN, Value: req.ISBN, Err: ErrFormat}
	}
	if !ean.ValidateISBN13(value) {
		return "", "", &InputError{Field: FieldISBN, Value: req.ISBN, Err: ErrChecksum}
	}

	addOn, ok = Normalize(req.AddOn)
	if !ok || (addOn != "" && !ean.IsDigits(addOn, 5)) {
		return "", "", &InputError{Field: FieldAddOn, Value: req.AddOn, Err: ErrAddOnFormat}
	}

	return value, addOn, nil
}

// checkDimensions rejects settings which would not give a drawable
// document, after defaults have been applied.
func checkDimensions(s *eps.Settings) error {
	h := s.BarHeight
	if math.IsNaN(h) || h <= 0 || h > MaxDimensionMM {
		return &InputError{Field: FieldBarHeight, Value: formatFloat(h), Err: ErrParameter}
	}
	off := s.AddOnOffset
	if math.IsNaN(off) || math.Abs(off) > MaxDimensionMM {
		return &InputError{Field: FieldAddOnOffset, Value: formatFloat(off), Err: ErrParameter}
	}
	if s.DPI <= 0 {
		return &InputError{Field: FieldDPI, Value: strconv.Itoa(s.DPI), Err: ErrParameter}
	}
	return nil
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// Normalize prepares a user-supplied digit string for validation.
//
// The string is mapped with SASLprep, which folds full-width digits and
// other compatibility forms to ASCII.  Afterwards, spaces and hyphens are
// removed, so that "978-0-306-40615-7" becomes "9780306406157".
// The second return value is false if s contains prohibited characters,
// such as control codes.
func Normalize(s string) (string, bool) {
	prepped, err := stringprep.SASLprep.Prepare(s)
	if err != nil {
		return "", false
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '‐', '‑':
			return -1
		}
		return r
	}, prepped), true
}

// FileName returns the default file name for a barcode.
func FileName(value, addOn string) string {
	return value + addOn + ".eps"
}
