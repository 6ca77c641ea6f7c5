package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"toolboard/internal/auth"
	"toolboard/internal/models"
)

type verifyPasswordRequest struct {
	Password string `json:"password"`
}

// verifyAgainst checks a candidate against a stored hash and writes the
// boolean outcome. A wrong password is a 200 with valid=false, never an error.
func verifyAgainst(w http.ResponseWriter, requires bool, hash *string, candidate string) {
	if !requires || hash == nil {
		respondError(w, http.StatusBadRequest, "resource is not password protected")
		return
	}
	valid := auth.CheckPassword(*hash, candidate) == nil
	respondJSON(w, map[string]any{"valid": valid})
}

func decodeVerifyRequest(w http.ResponseWriter, r *http.Request) (verifyPasswordRequest, bool) {
	var req verifyPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "password required")
		return req, false
	}
	return req, true
}

func VerifyDocumentPassword(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeVerifyRequest(w, r)
		if !ok {
			return
		}
		id := chi.URLParam(r, "id")
		uid := auth.Subject(r.Context())

		var doc models.ImportantDocument
		if err := db.First(&doc, "id = ? AND user_id = ?", id, uid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(w, http.StatusNotFound, "document not found")
				return
			}
			lg.Errorw("document lookup failed", "id", id, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load document")
			return
		}
		verifyAgainst(w, doc.RequiresPassword, doc.PasswordHash, req.Password)
	}
}

func VerifyNotePassword(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeVerifyRequest(w, r)
		if !ok {
			return
		}
		id := chi.URLParam(r, "id")
		uid := auth.Subject(r.Context())

		var note models.Note
		if err := db.First(&note, "id = ? AND user_id = ?", id, uid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(w, http.StatusNotFound, "note not found")
				return
			}
			lg.Errorw("note lookup failed", "id", id, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load note")
			return
		}
		verifyAgainst(w, note.RequiresPassword, note.PasswordHash, req.Password)
	}
}
