package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gaurav-prasanna/docpipe/core"
)

var contentTypes = map[string]string{
	"html":     "text/html; charset=utf-8",
	"markdown": "text/markdown; charset=utf-8",
	"json":     "application/json",
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "html"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		jsonError(w, fmt.Sprintf("unsupported format: %s", format), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxBodyBytes+1))
	if err != nil {
		jsonError(w, "failed to read body", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxBodyBytes {
		jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxBodyBytes), http.StatusRequestEntityTooLarge)
		return
	}

	fragment, err := s.processor.ProcessReader(strings.NewReader(string(data)))
	if errors.Is(err, core.ErrEmptySource) {
		jsonError(w, "request body is empty", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.log.Warn("processing failed", "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	out, err := renderer.Render(fragment, core.DocMeta{})
	if err != nil {
		s.log.Error("rendering failed", "format", format, "error", err)
		jsonError(w, "rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(out)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
