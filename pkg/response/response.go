// Package response writes the JSON envelope used by every endpoint:
//
//	{"success": true, "message": "...", ...data}
//	{"success": false, "message": "..."}
//
// Data keys are spread at the top level next to success/message, matching
// the API contract clients already depend on.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/zaika/config"
	"github.com/shashiranjanraj/zaika/pkg/apperr"
)

func write(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

func envelope(success bool, message string, data map[string]interface{}) map[string]interface{} {
	body := make(map[string]interface{}, len(data)+2)
	for k, v := range data {
		body[k] = v
	}
	body["success"] = success
	if message != "" {
		body["message"] = message
	}
	return body
}

// JSON sends a success envelope with the given status.
func JSON(w http.ResponseWriter, status int, message string, data map[string]interface{}) {
	write(w, status, envelope(true, message, data))
}

// Success sends a 200 envelope.
func Success(w http.ResponseWriter, message string, data map[string]interface{}) {
	JSON(w, http.StatusOK, message, data)
}

// Created sends a 201 envelope.
func Created(w http.ResponseWriter, message string, data map[string]interface{}) {
	JSON(w, http.StatusCreated, message, data)
}

// Err sends a failure envelope with the given status and message.
func Err(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope(false, message, nil))
}

// Error is the central responder: it maps err to a status via apperr and
// writes the failure envelope. In production, 500s get a generic message so
// internal detail never reaches the client; other statuses keep their
// specific message.
func Error(w http.ResponseWriter, err error) {
	status := apperr.StatusOf(err)
	message := err.Error()

	if status >= http.StatusInternalServerError && config.Production() {
		message = "An unexpected server error has occurred."
	}

	Err(w, status, message)
}
