package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhouzirui/support-line/internal/handler/dashboard"
	"github.com/zhouzirui/support-line/internal/handler/support"
	middlewarePkg "github.com/zhouzirui/support-line/internal/middleware"
	"github.com/zhouzirui/support-line/internal/observability"
	"github.com/zhouzirui/support-line/internal/service/emotion"
	supportService "github.com/zhouzirui/support-line/internal/service/support"
	"github.com/zhouzirui/support-line/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(supportSvc *supportService.Service, classifier dashboard.ClassifierInfo, publicURL string, logger *zap.Logger, metrics *observability.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	supportHandler := support.New(supportSvc, logger, metrics)
	dashboardHandler := dashboard.New(supportSvc.Log(), classifier, publicURL, logger, metrics)

	dashboardHandler.RegisterPage(r)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		status := emotion.StatusDegraded
		provider := "none"
		if classifier != nil {
			status = classifier.Status()
			provider = classifier.Provider()
		}
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":     "ok",
			"classifier": map[string]string{"provider": provider, "status": string(status)},
			"records":    supportSvc.Log().Len(),
		})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		supportHandler.RegisterRoutes(api)
		dashboardHandler.RegisterRoutes(api)
	})

	return r
}
