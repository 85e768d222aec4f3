package http

import (
	"net/http"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/presence-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
	GetWeeklyTrend(w http.ResponseWriter, r *http.Request)
	GetDepartmentBreakdown(w http.ResponseWriter, r *http.Request)
	GetCalendar(w http.ResponseWriter, r *http.Request)
	GetEmployeeSummary(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard returns the manager dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetStats returns today's counters
func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetWeeklyTrend returns the trailing week
func (h *dashboardHandlerImpl) GetWeeklyTrend(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetWeeklyTrend(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *dashboardHandlerImpl) GetDepartmentBreakdown(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetDepartmentBreakdown(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *dashboardHandlerImpl) GetCalendar(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month") // format: YYYY-MM, default: current month

	result, err := h.dashboardService.GetCalendar(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *dashboardHandlerImpl) GetEmployeeSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	month := r.URL.Query().Get("month") // format: YYYY-MM, default: current month

	result, err := h.dashboardService.GetEmployeeSummary(r.Context(), id, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
