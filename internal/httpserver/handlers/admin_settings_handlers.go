package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"toolboard/internal/models"
	"toolboard/internal/settings"
)

func AdminGetSiteMaintenance(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maint, err := settings.GetSiteMaintenance(db)
		if err != nil && err != settings.ErrNotFound {
			lg.Errorw("site maintenance read failed", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load settings")
			return
		}
		fee, err := settings.GetPlatformFee(db)
		if err != nil {
			if err != settings.ErrNotFound {
				lg.Errorw("platform fee read failed", "error", err)
				respondError(w, http.StatusInternalServerError, "failed to load settings")
				return
			}
			fee = settings.PlatformFee{Amount: settings.DefaultPlatformFee}
		}
		respondJSON(w, map[string]any{"setting": maint, "platformFee": fee.Amount})
	}
}

func AdminUpdateSiteMaintenance(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SignUpsDisabled *bool    `json:"signUpsDisabled"`
			PlatformFee     *float64 `json:"platformFee"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.SignUpsDisabled == nil && req.PlatformFee == nil {
			respondError(w, http.StatusBadRequest, "signUpsDisabled or platformFee required")
			return
		}
		if req.PlatformFee != nil && *req.PlatformFee < 0 {
			respondError(w, http.StatusBadRequest, "platformFee must not be negative")
			return
		}
		resp := map[string]any{"success": true}
		if req.SignUpsDisabled != nil {
			v := settings.SiteMaintenance{SignUpsDisabled: *req.SignUpsDisabled}
			if err := settings.PutSiteMaintenance(db, v); err != nil {
				lg.Errorw("site maintenance upsert failed", "error", err)
				respondError(w, http.StatusInternalServerError, "failed to save settings")
				return
			}
			resp["setting"] = v
		}
		if req.PlatformFee != nil {
			v := settings.PlatformFee{Amount: *req.PlatformFee}
			if err := settings.PutPlatformFee(db, v); err != nil {
				lg.Errorw("platform fee upsert failed", "error", err)
				respondError(w, http.StatusInternalServerError, "failed to save settings")
				return
			}
			resp["platformFee"] = v.Amount
		}
		respondJSON(w, resp)
	}
}

func AdminGetLegal(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := settings.LegalKeyFor(r.URL.Query().Get("type"))
		if !ok {
			respondError(w, http.StatusBadRequest, "type must be one of: terms, privacy")
			return
		}
		doc, updatedAt, err := settings.GetLegal(db, key)
		if err != nil {
			if err == settings.ErrNotFound {
				respondJSON(w, map[string]any{"content": "", "lastUpdated": nil})
				return
			}
			lg.Errorw("legal document read failed", "key", key, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load document")
			return
		}
		var last *time.Time
		if !updatedAt.IsZero() {
			last = &updatedAt
		}
		respondJSON(w, map[string]any{"content": doc.Content, "lastUpdated": last})
	}
}

func AdminUpdateLegal(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Type    string  `json:"type"`
			Content *string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		key, ok := settings.LegalKeyFor(req.Type)
		if !ok {
			respondError(w, http.StatusBadRequest, "type must be one of: terms, privacy")
			return
		}
		if req.Content == nil {
			respondError(w, http.StatusBadRequest, "content required")
			return
		}
		updatedAt, err := settings.PutLegal(db, key, *req.Content)
		if err != nil {
			lg.Errorw("legal document upsert failed", "key", key, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to save document")
			return
		}
		respondJSON(w, map[string]any{"success": true, "lastUpdated": updatedAt})
	}
}

// AdminStats reports platform counters for the admin overview.
func AdminStats(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var count int64
		if err := db.Model(&models.User{}).Where("is_active = ?", true).Count(&count).Error; err != nil {
			lg.Errorw("active user count failed", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load stats")
			return
		}
		respondJSON(w, map[string]any{"activeUserCount": count})
	}
}
