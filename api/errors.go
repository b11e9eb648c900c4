package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

var errorMessages = map[int]string{
	http.StatusUnauthorized:        "unauthorized",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeError sends the uniform failure envelope for code.
func writeError(w http.ResponseWriter, code int) {
	msg, ok := errorMessages[code]
	if !ok {
		msg = http.StatusText(code)
	}
	writeJSON(w, errorResponse{Success: false, Error: code, Message: msg}, code)
}

// NotFoundHandler answers requests that match no route.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound)
	})
}

// MethodNotAllowedHandler answers requests whose path matches a route
// registered for other methods.
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed)
	})
}
