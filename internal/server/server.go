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

// Package server provides an HTTP interface to the barcode service.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/time/rate"

	"seehuhn.de/go/barcode/internal/config"
	"seehuhn.de/go/barcode/isbn"
)

var log = logging.Logger("barcode-server")

// maxBodySize limits the size of request bodies.  Saved documents are a
// few kilobytes.
const maxBodySize = 1 << 20

// Server serves barcode requests over HTTP.
type Server struct {
	svc     *isbn.Service
	limiter *rate.Limiter
	mux     *http.ServeMux
}

// New creates a server for the given service.
func New(svc *isbn.Service, cfg *config.ServerConfig) *Server {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	s := &Server{
		svc:     svc,
		limiter: rate.NewLimiter(limit, burst),
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /api/barcode", s.handleGenerate)
	s.mux.HandleFunc("GET /api/barcode.eps", s.handleDocument)
	s.mux.HandleFunc("POST /api/save", s.handleSave)
	return s
}

// ServeHTTP implements the [http.Handler] interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		log.Debugw("rate limited", "remote", r.RemoteAddr, "path", r.URL.Path)
		writeJSON(w, http.StatusTooManyRequests, &isbn.Result{Message: "too many requests"})
		return
	}
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves requests on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	log.Infof("listening on %s", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	<-errc // http.ErrServerClosed
	return err
}

// handleGenerate answers a JSON request with a JSON result.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req isbn.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, &isbn.Result{Message: err.Error()})
		return
	}

	res := s.svc.Generate(&req)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

// handleDocument answers the EPS document itself.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &isbn.Request{
		ISBN:  q.Get("isbn"),
		AddOn: q.Get("addon"),
	}
	var err error
	if v := q.Get("height"); v != "" {
		req.BarHeightMM, err = strconv.ParseFloat(v, 64)
	}
	if v := q.Get("offset"); v != "" && err == nil {
		var offset float64
		offset, err = strconv.ParseFloat(v, 64)
		req.AddOnOffsetMM = &offset
	}
	if v := q.Get("dpi"); v != "" && err == nil {
		req.DPI, err = strconv.Atoi(v)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := s.svc.Generate(req)
	if !res.Success {
		http.Error(w, res.Message, http.StatusUnprocessableEntity)
		return
	}

	value, addOn, _ := isbn.Check(req)
	w.Header().Set("Content-Type", "application/postscript")
	w.Header().Set("Content-Disposition",
		"attachment; filename=\""+isbn.FileName(value, addOn)+"\"")
	_, err = w.Write([]byte(res.Document))
	if err != nil {
		log.Debugw("cannot send document", "remote", r.RemoteAddr, "err", err)
	}
}

type saveRequest struct {
	Content  string `json:"content"`
	FileName string `json:"file_name"`
}

// handleSave stores a document in the output directory.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, &isbn.Result{Message: err.Error()})
		return
	}
	if !validFileName(req.FileName) {
		writeJSON(w, http.StatusBadRequest, &isbn.Result{Message: "invalid file name"})
		return
	}

	res := s.svc.Save(r.Context(), req.Content, req.FileName)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, res)
}

// validFileName reports whether name is a plain file name, without any
// directory components.
func validFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Debugw("cannot write response", "err", err)
	}
}
