package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/coder26-cmd/anti-plagiarism/domain"
	"github.com/coder26-cmd/anti-plagiarism/internal/version"
)

// CompareRequest is the body of POST /api/v1/compare
type CompareRequest struct {
	SourceA *string `json:"source_a"`
	SourceB *string `json:"source_b"`
	// IncludeCanonical adds both canonical texts to the response
	IncludeCanonical bool `json:"include_canonical"`
}

// CanonicalizeRequest is the body of POST /api/v1/canonicalize
type CanonicalizeRequest struct {
	Source   *string `json:"source"`
	WithTree bool    `json:"with_tree"`
}

// ErrorResponse is returned with every non-2xx status
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Short(),
	})
}

func (s *Server) compareHandler(w http.ResponseWriter, r *http.Request) {
	var body CompareRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.SourceA == nil || body.SourceB == nil {
		writeError(w, http.StatusBadRequest, domain.NewInvalidInputError("source_a and source_b are required", nil))
		return
	}

	result, err := s.service.CompareSources(r.Context(), []byte(*body.SourceA), []byte(*body.SourceB))
	if err != nil {
		s.logger.Info("compare request failed", "code", domain.ErrorCode(err), "error", err)
		writeError(w, statusFor(err), err)
		return
	}
	if !body.IncludeCanonical {
		result.CanonicalA, result.CanonicalB = "", ""
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) canonicalizeHandler(w http.ResponseWriter, r *http.Request) {
	var body CanonicalizeRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Source == nil {
		writeError(w, http.StatusBadRequest, domain.NewInvalidInputError("source is required", nil))
		return
	}

	form, err := s.service.Canonicalize(r.Context(), []byte(*body.Source), body.WithTree)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// decode reads a JSON body, writing the error response itself on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxRequestBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				domain.NewInvalidInputError(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), nil))
			return false
		}
		writeError(w, http.StatusBadRequest, domain.NewInvalidInputError("invalid JSON body", err))
		return false
	}
	return true
}

// statusFor maps domain error codes onto HTTP statuses
func statusFor(err error) int {
	switch {
	case domain.HasCode(err, domain.ErrCodeInvalidInput):
		return http.StatusBadRequest
	case domain.HasCode(err, domain.ErrCodeParseError):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: domain.ErrorCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
