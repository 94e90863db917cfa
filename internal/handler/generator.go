package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/service"
)

const maxBodyBytes = 1 << 20 // 1MB

// PasswordService is the generation and scoring logic the handler exposes.
type PasswordService interface {
	Generate(req model.GenerateRequest) (model.GenerateResponse, error)
	Score(req model.StrengthRequest) (model.StrengthResponse, error)
}

// GeneratorHandler handles HTTP requests for password generation.
type GeneratorHandler struct {
	service PasswordService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc PasswordService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// HandleGenerate handles POST /api/v1/generate requests.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Generate(req)
	if err != nil {
		if code, ok := validationCode(err); ok {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error(), code))
			return
		}
		slog.Error("password generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error", "internal"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleStrength handles POST /api/v1/strength requests.
func (h *GeneratorHandler) HandleStrength(w http.ResponseWriter, r *http.Request) {
	var req model.StrengthRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Score(req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPassword) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error(), "password_required"))
			return
		}
		slog.Error("password scoring failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error", "internal"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// decodeBody reads a JSON body into v. An absent body leaves v untouched.
// It writes the error response itself and reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return true
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large", "body_too_large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body", "invalid_body"))
		return false
	}
	return true
}

func validationCode(err error) (string, bool) {
	switch {
	case errors.Is(err, crypto.ErrNoClassSelected):
		return "no_class_selected", true
	case errors.Is(err, service.ErrLengthTooShort):
		return "length_too_short", true
	case errors.Is(err, service.ErrLengthTooLong):
		return "length_too_long", true
	case errors.Is(err, crypto.ErrLengthInsufficient):
		return "length_insufficient", true
	case errors.Is(err, crypto.ErrInvalidLength):
		return "invalid_length", true
	}
	return "", false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg, code string) map[string]string {
	return map[string]string{"error": msg, "code": code}
}
