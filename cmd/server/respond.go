package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Simplici0/windowquote/internal/apperror"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	writeJSONResponse(w, statusCode, errorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// writeServiceError maps an error kind to a status code. Unclassified errors
// are logged and hidden behind internalMessage.
func (s *server) writeServiceError(w http.ResponseWriter, err error, internalMessage string) {
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		writeErrorResponse(w, http.StatusNotFound, err.Error())
	case apperror.KindValidation:
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
	case apperror.KindConflict:
		writeErrorResponse(w, http.StatusConflict, err.Error())
	default:
		s.log.WithError(err).Error(internalMessage)
		writeErrorResponse(w, http.StatusInternalServerError, internalMessage)
	}
}

// decodeJSON reads a single JSON document from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperror.Validation("request body is empty", err)
		case errors.As(err, &maxErr):
			return apperror.Validation("request body is too large", err)
		default:
			return apperror.Validation("invalid JSON body: "+err.Error(), err)
		}
	}
	if dec.More() {
		return apperror.Validation("request body must contain a single JSON document", nil)
	}
	return nil
}
