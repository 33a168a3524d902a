package adaptor

import (
	"net/http"

	"student-housing/internal/usecase"
	"student-housing/pkg/utils"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	service usecase.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(service usecase.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log.With(zap.String("handler", "dashboard")),
	}
}

// Stats handles GET /api/dashboard/stats. The shape depends on the role.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	stats, err := h.service.Stats(r.Context(), actor)
	if err != nil {
		handleServiceError(w, h.log, err, "get dashboard stats")
		return
	}

	utils.ResponseSuccess(w, "Dashboard stats retrieved successfully", stats)
}

// Overview handles GET /api/dashboard
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	overview, err := h.service.Overview(r.Context(), actor)
	if err != nil {
		handleServiceError(w, h.log, err, "get dashboard overview")
		return
	}

	utils.ResponseSuccess(w, "Dashboard retrieved successfully", overview)
}
