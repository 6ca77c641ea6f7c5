package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"toolboard/internal/auth"
	"toolboard/internal/models"
)

// itemPatch distinguishes "field absent" (leave unchanged) from "field present
// as null" (clear, where clearing is permitted) by decoding to raw messages.
type itemPatch map[string]json.RawMessage

func (p itemPatch) has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p itemPatch) isNull(key string) bool {
	return bytes.Equal(bytes.TrimSpace(p[key]), []byte("null"))
}

func (p itemPatch) str(key string) (string, error) {
	var s string
	err := json.Unmarshal(p[key], &s)
	return s, err
}

func (p itemPatch) timeVal(key string) (*time.Time, error) {
	var t time.Time
	if err := json.Unmarshal(p[key], &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateDashboardItem applies a partial update to an item owned by the caller.
// A row owned by someone else is indistinguishable from a missing one.
func UpdateDashboardItem(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		uid := auth.Subject(r.Context())

		var patch itemPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		var item models.DashboardItem
		if err := db.First(&item, "id = ? AND user_id = ?", id, uid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(w, http.StatusNotFound, "item not found")
				return
			}
			lg.Errorw("dashboard item lookup failed", "id", id, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load item")
			return
		}

		if patch.has("title") {
			s, err := patch.str("title")
			if err != nil || s == "" {
				respondError(w, http.StatusBadRequest, "title must be a non-empty string")
				return
			}
			item.Title = s
		}
		if patch.has("description") {
			s, err := patch.str("description")
			if err != nil {
				respondError(w, http.StatusBadRequest, "description must be a string")
				return
			}
			item.Description = s
		}
		if patch.has("type") {
			s, err := patch.str("type")
			if err != nil || !oneOf(s, itemTypes) {
				respondError(w, http.StatusBadRequest, enumError("type", itemTypes))
				return
			}
			item.Type = s
		}
		if patch.has("status") {
			s, err := patch.str("status")
			if err != nil || !oneOf(s, itemStatuses) {
				respondError(w, http.StatusBadRequest, enumError("status", itemStatuses))
				return
			}
			item.Status = s
		}
		if patch.has("priority") {
			if patch.isNull("priority") {
				item.Priority = nil
			} else {
				s, err := patch.str("priority")
				if err != nil || !oneOf(s, itemPriorities) {
					respondError(w, http.StatusBadRequest, enumError("priority", itemPriorities))
					return
				}
				item.Priority = &s
			}
		}
		if patch.has("due_date") {
			if patch.isNull("due_date") {
				item.DueDate = nil
			} else {
				t, err := patch.timeVal("due_date")
				if err != nil {
					respondError(w, http.StatusBadRequest, "due_date must be an RFC 3339 timestamp or null")
					return
				}
				item.DueDate = t
			}
		}
		if patch.has("scheduled_date") {
			if patch.isNull("scheduled_date") {
				item.ScheduledDate = nil
			} else {
				t, err := patch.timeVal("scheduled_date")
				if err != nil {
					respondError(w, http.StatusBadRequest, "scheduled_date must be an RFC 3339 timestamp or null")
					return
				}
				item.ScheduledDate = t
			}
		}
		if patch.has("metadata") {
			raw := bytes.TrimSpace(patch["metadata"])
			if len(raw) == 0 || raw[0] != '{' || !json.Valid(raw) {
				respondError(w, http.StatusBadRequest, "metadata must be a JSON object")
				return
			}
			item.Metadata = models.JSONB(raw)
		}

		item.UpdatedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			lg.Errorw("dashboard item update failed", "id", id, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to save item")
			return
		}
		respondJSON(w, map[string]any{"item": item})
	}
}

func DeleteDashboardItem(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		uid := auth.Subject(r.Context())

		res := db.Delete(&models.DashboardItem{}, "id = ? AND user_id = ?", id, uid)
		if res.Error != nil {
			lg.Errorw("dashboard item delete failed", "id", id, "error", res.Error)
			respondError(w, http.StatusInternalServerError, "failed to delete item")
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "item not found")
			return
		}
		respondJSON(w, map[string]any{"success": true})
	}
}

// DebugDashboardItems dumps every item the caller owns, newest first.
func DebugDashboardItems(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.Subject(r.Context())
		items := []models.DashboardItem{}
		if err := db.Where("user_id = ?", uid).Order("created_at desc").Find(&items).Error; err != nil {
			lg.Errorw("dashboard item list failed", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load items")
			return
		}
		respondJSON(w, map[string]any{"items": items, "count": len(items)})
	}
}
