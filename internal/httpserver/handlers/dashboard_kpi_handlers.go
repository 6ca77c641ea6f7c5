package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"toolboard/internal/auth"
	"toolboard/internal/models"
)

// ListDashboardKpis returns the caller's KPI toggles, optionally filtered by
// tool and key. Filters compose conjunctively with the ownership predicate.
func ListDashboardKpis(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.Subject(r.Context())
		q := db.Where("user_id = ?", uid)
		if toolID := r.URL.Query().Get("toolId"); toolID != "" {
			q = q.Where("tool_id = ?", toolID)
		}
		if key := r.URL.Query().Get("kpiKey"); key != "" {
			q = q.Where("kpi_key = ?", key)
		}
		kpis := []models.UserDashboardKpi{}
		if err := q.Order("updated_at desc").Find(&kpis).Error; err != nil {
			lg.Errorw("kpi list failed", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load kpis")
			return
		}
		respondJSON(w, map[string]any{"kpis": kpis})
	}
}

// UpsertDashboardKpi writes one KPI toggle keyed on (user, tool, kpi key).
// Repeating the call replaces the stored value.
func UpsertDashboardKpi(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ToolID    string `json:"toolId"`
			KpiKey    string `json:"kpiKey"`
			IsEnabled *bool  `json:"isEnabled"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.ToolID == "" || req.KpiKey == "" {
			respondError(w, http.StatusBadRequest, "toolId and kpiKey required")
			return
		}
		if err := uuid.Validate(req.ToolID); err != nil {
			respondError(w, http.StatusBadRequest, "toolId must be a valid uuid")
			return
		}
		if req.IsEnabled == nil {
			respondError(w, http.StatusBadRequest, "isEnabled must be a boolean")
			return
		}
		uid := auth.Subject(r.Context())

		kpi := models.UserDashboardKpi{
			UserID:    uid,
			ToolID:    req.ToolID,
			KpiKey:    req.KpiKey,
			IsEnabled: *req.IsEnabled,
			UpdatedAt: time.Now(),
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "tool_id"}, {Name: "kpi_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_enabled", "updated_at"}),
		}).Create(&kpi).Error
		if err != nil {
			lg.Errorw("kpi upsert failed", "tool_id", req.ToolID, "kpi_key", req.KpiKey, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to save kpi")
			return
		}
		// reload so the response reflects the stored row on the update path
		var stored models.UserDashboardKpi
		if err := db.First(&stored, "user_id = ? AND tool_id = ? AND kpi_key = ?", uid, req.ToolID, req.KpiKey).Error; err != nil {
			lg.Errorw("kpi reload failed", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load kpi")
			return
		}
		respondJSON(w, map[string]any{"kpi": stored})
	}
}
