package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/pkg/logger"
)

// maxBodyBytes caps request bodies; datasets are tens of facts per year
const maxBodyBytes = 4 << 20

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondServiceError maps caller mistakes to 400 and everything else to 500
func respondServiceError(w http.ResponseWriter, log *logger.Logger, err error) {
	if contracts.IsInputError(err) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.WithError(err).Error("Request failed")
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

// decodeBody decodes a JSON body, rejecting unknown fields
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
