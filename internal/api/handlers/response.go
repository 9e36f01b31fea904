package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Agungajipradana/contact-management-api/internal/domain"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/sirupsen/logrus"
)

// WebResponse is the uniform envelope. Exactly one of the two fields is
// populated in any response.
type WebResponse struct {
	Data   interface{} `json:"data,omitempty"`
	Errors string      `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body WebResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func writeData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, WebResponse{Data: data})
}

// writeError is the only place error statuses are decided. Validation
// failures collapse to a coarse message without field detail; domain
// errors carry their own status; everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, WebResponse{Errors: "Validation error"})
		return
	}

	var derr *domain.Error
	if errors.As(err, &derr) {
		writeJSON(w, derr.Status, WebResponse{Errors: derr.Message})
		return
	}

	logrus.WithError(err).Error("unhandled error")
	writeJSON(w, http.StatusInternalServerError, WebResponse{Errors: err.Error()})
}

// malformedBody routes a JSON decode failure through the validation
// branch of writeError.
func malformedBody(err error) error {
	return validation.Errors{"body": err}
}
