package handlers

import (
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"toolboard/internal/models"
)

// AdminCronLogs lists cron job runs, newest first, with optional job_name and
// status filters. The total count ignores the page window so callers can
// compute hasMore.
func AdminCronLogs(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := db.Model(&models.CronJobLog{})
		if name := r.URL.Query().Get("job_name"); name != "" {
			q = q.Where("job_name = ?", name)
		}
		if status := r.URL.Query().Get("status"); status != "" {
			if !oneOf(status, cronStatuses) {
				respondError(w, http.StatusBadRequest, enumError("status", cronStatuses))
				return
			}
			q = q.Where("status = ?", status)
		}
		limit, offset := clampPage(r)

		var total int64
		if err := q.Count(&total).Error; err != nil {
			lg.Errorw("cron log count failed", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load cron logs")
			return
		}
		logs := []models.CronJobLog{}
		if err := q.Order("started_at desc").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
			lg.Errorw("cron log list failed", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load cron logs")
			return
		}
		respondJSON(w, map[string]any{
			"logs": logs,
			"pagination": pagination{
				Total:   total,
				Limit:   limit,
				Offset:  offset,
				HasMore: total > int64(offset+limit),
			},
		})
	}
}
