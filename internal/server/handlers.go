package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jmylchreest/outlyne/internal/version"
	"github.com/jmylchreest/outlyne/pkg/convert"
	"github.com/jmylchreest/outlyne/pkg/outline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.String(),
	})
}

// handleOutline extracts the outline of the HTML request body.
//
// Query parameters: max_level (1-3, default from config) and format
// (txt, markdown, json, yaml; default txt).
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := outline.FormatText
	if v := r.URL.Query().Get("format"); v != "" {
		if format, err = outline.ParseFormat(v); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	extractor := outline.New(cfg)
	result, err := extractor.Extract(r.Body)
	if err != nil {
		s.inputError(w, r, err)
		return
	}

	body, err := extractor.Render(result, format)
	if err != nil {
		jsonError(w, "failed to render outline", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Outline-Entries", strconv.Itoa(len(result.Entries)))
	w.Header().Set("X-Outline-Removed", strconv.Itoa(result.Stats.Total()))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}

// handleClean returns the sanitized document of the HTML request body.
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	format, err := outline.ParseReducedFormat(r.URL.Query().Get("format"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	reduced, err := outline.New(s.config).Reduce(r.Body, format)
	if err != nil {
		s.inputError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", reducedContentType(format))
	w.Header().Set("X-Outline-Removed", strconv.Itoa(reduced.Stats.Total()))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, reduced.Content)
}

// handleConvert converts a DOCX request body to HTML.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	limit := s.config.MaxInputBytes
	if limit <= 0 {
		limit = outline.DefaultConfig().MaxInputBytes
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if int64(len(data)) > limit {
		jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", limit), http.StatusRequestEntityTooLarge)
		return
	}

	res, err := (&convert.DOCXConverter{}).Convert(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	for _, warning := range res.Warnings {
		s.log.Warn("conversion warning", "warning", warning)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, res.HTML)
}

// requestConfig applies the max_level query parameter to the server config.
func (s *Server) requestConfig(r *http.Request) (*outline.Config, error) {
	v := r.URL.Query().Get("max_level")
	if v == "" {
		return s.config, nil
	}

	level, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("max_level must be an integer: %q", v)
	}
	cfg := s.config.Merge(nil)
	cfg.MaxLevel = level
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("max_level must be 1, 2 or 3: %d", level)
	}
	return cfg, nil
}

// inputError maps extraction errors to HTTP statuses.
func (s *Server) inputError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, outline.ErrInputTooLarge):
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, outline.ErrInvalidEncoding):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, outline.ErrUnknownFormat):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		s.log.ErrorContext(r.Context(), "extraction failed", "error", err)
		jsonError(w, "failed to read input", http.StatusInternalServerError)
	}
}

func reducedContentType(f outline.ReducedFormat) string {
	switch f {
	case outline.ReducedText:
		return "text/plain; charset=utf-8"
	case outline.ReducedMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
