package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"toolboard/internal/auth"
	"toolboard/internal/httpserver/handlers"
	"toolboard/internal/mailer"
)

func NewRouter(db *gorm.DB, m *mailer.Mailer, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	r.Get("/v1/public/site-maintenance", handlers.PublicSiteMaintenance(db, lg))
	r.Get("/v1/public/platform-fee", handlers.PublicPlatformFee(db, lg))
	r.Get("/v1/public/legal", handlers.PublicLegal(db, lg))
	r.Post("/v1/support", handlers.SubmitSupport(m, lg))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.SessionAuth(db))

		protected.Put("/v1/dashboard/items/{id}", handlers.UpdateDashboardItem(db, lg))
		protected.Delete("/v1/dashboard/items/{id}", handlers.DeleteDashboardItem(db, lg))
		protected.Get("/v1/dashboard/items/debug", handlers.DebugDashboardItems(db, lg))
		protected.Get("/v1/dashboard/kpis", handlers.ListDashboardKpis(db, lg))
		protected.Post("/v1/dashboard/kpis", handlers.UpsertDashboardKpi(db, lg))
		protected.Post("/v1/documents/{id}/verify-password", handlers.VerifyDocumentPassword(db, lg))
		protected.Post("/v1/notes/{id}/verify-password", handlers.VerifyNotePassword(db, lg))

		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireSuperadmin)
			admin.Get("/v1/admin/cron-logs", handlers.AdminCronLogs(db, lg))
			admin.Get("/v1/admin/site-maintenance", handlers.AdminGetSiteMaintenance(db, lg))
			admin.Put("/v1/admin/site-maintenance", handlers.AdminUpdateSiteMaintenance(db, lg))
			admin.Get("/v1/admin/legal", handlers.AdminGetLegal(db, lg))
			admin.Put("/v1/admin/legal", handlers.AdminUpdateLegal(db, lg))
			admin.Get("/v1/admin/stats", handlers.AdminStats(db, lg))
			admin.Post("/v1/admin/tools/icons", handlers.AdminUploadToolIcon(db, lg))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
