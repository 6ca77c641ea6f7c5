package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"toolboard/internal/settings"
)

// PublicSiteMaintenance reports whether sign-ups are disabled. This gates
// landing-page rendering, so store failures degrade to the default instead of
// surfacing an error.
func PublicSiteMaintenance(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := settings.GetSiteMaintenance(db)
		if err != nil && err != settings.ErrNotFound {
			lg.Warnw("site maintenance read failed, serving default", "error", err)
			v = settings.SiteMaintenance{}
		}
		respondJSON(w, map[string]any{"signUpsDisabled": v.SignUpsDisabled})
	}
}

// PublicPlatformFee never errors outward; any failure yields the default fee.
func PublicPlatformFee(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := settings.GetPlatformFee(db)
		if err != nil {
			if err != settings.ErrNotFound {
				lg.Warnw("platform fee read failed, serving default", "error", err)
			}
			v = settings.PlatformFee{Amount: settings.DefaultPlatformFee}
		}
		respondJSON(w, map[string]any{"amount": v.Amount})
	}
}

// PublicLegal serves a legal document by type. An unknown type is the only
// client error; store failures fall back to empty content.
func PublicLegal(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := settings.LegalKeyFor(r.URL.Query().Get("type"))
		if !ok {
			respondError(w, http.StatusBadRequest, "type must be one of: terms, privacy")
			return
		}
		doc, updatedAt, err := settings.GetLegal(db, key)
		if err != nil {
			if err != settings.ErrNotFound {
				lg.Warnw("legal document read failed, serving default", "key", key, "error", err)
			}
			respondJSON(w, map[string]any{"content": "", "lastUpdated": nil})
			return
		}
		var last *time.Time
		if !updatedAt.IsZero() {
			last = &updatedAt
		}
		respondJSON(w, map[string]any{"content": doc.Content, "lastUpdated": last})
	}
}
