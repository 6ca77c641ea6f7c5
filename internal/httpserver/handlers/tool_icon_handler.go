package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"toolboard/internal/models"
)

// isIconURL distinguishes an absolute/relative URL from an opaque icon name.
// Only plain names are subject to the global uniqueness pre-check.
func isIconURL(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "/")
}

// AdminUploadToolIcon binds an icon name or URL to a (tool, icon type) slot.
// Plain icon names must be unique across tools; the store has no constraint
// for that, so it is checked here before the upsert.
func AdminUploadToolIcon(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		toolID := strings.TrimSpace(r.FormValue("tool_id"))
		iconName := strings.TrimSpace(r.FormValue("icon_name"))
		iconType := strings.TrimSpace(r.FormValue("icon_type"))

		if toolID == "" || iconName == "" {
			respondError(w, http.StatusBadRequest, "tool_id and icon_name required")
			return
		}
		if err := uuid.Validate(toolID); err != nil {
			respondError(w, http.StatusBadRequest, "tool_id must be a valid uuid")
			return
		}
		if !oneOf(iconType, iconTypes) {
			respondError(w, http.StatusBadRequest, enumError("icon_type", iconTypes))
			return
		}

		var tool models.Tool
		if err := db.First(&tool, "id = ?", toolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(w, http.StatusNotFound, "tool not found")
				return
			}
			lg.Errorw("tool lookup failed", "tool_id", toolID, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load tool")
			return
		}

		if !isIconURL(iconName) {
			var existing models.ToolIcon
			err := db.First(&existing, "icon_url = ? AND tool_id <> ?", iconName, toolID).Error
			if err == nil {
				respondError(w, http.StatusBadRequest, "icon name already in use by another tool, please choose a different icon")
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				lg.Errorw("icon uniqueness check failed", "icon_name", iconName, "error", err)
				respondError(w, http.StatusInternalServerError, "failed to check icon name")
				return
			}
		}

		icon := models.ToolIcon{
			ToolID:    toolID,
			IconType:  iconType,
			IconURL:   iconName,
			IconData:  nil,
			UpdatedAt: time.Now(),
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tool_id"}, {Name: "icon_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"icon_url", "icon_data", "updated_at"}),
		}).Create(&icon).Error
		if err != nil {
			lg.Errorw("tool icon upsert failed", "tool_id", toolID, "icon_type", iconType, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to save icon")
			return
		}
		respondJSON(w, map[string]any{"success": true, "message": "icon saved"})
	}
}
