package router

import (
	"net/http"

	"github.com/shandysiswandi/gopos/internal/pkg/config"
)

// middlewareMaintenance answers 503 for the route templates listed in
// app.maintenance.endpoints. The list is read once at startup.
func middlewareMaintenance(cfg config.Config) Middleware {
	blocked := make(map[string]struct{})
	if cfg != nil {
		for _, ep := range cfg.GetArray("app.maintenance.endpoints") {
			blocked[ep] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := blocked[matchedRoutePath(r)]; ok {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
