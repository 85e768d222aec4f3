package http

import (
	"net/http"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee_dashboard"
	"github.com/cmlabs-hris/presence-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/presence-backend-go/internal/handler/http/response"
)

type EmployeeDashboardHandler interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
	GetMonthlySummary(w http.ResponseWriter, r *http.Request)
}

type employeeDashboardHandlerImpl struct {
	service employee_dashboard.EmployeeDashboardService
}

func NewEmployeeDashboardHandler(service employee_dashboard.EmployeeDashboardService) EmployeeDashboardHandler {
	return &employeeDashboardHandlerImpl{service: service}
}

// GetDashboard returns the caller's dashboard
func (h *employeeDashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.service.GetDashboard(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetMonthlySummary returns the caller's summary for ?month=YYYY-MM
func (h *employeeDashboardHandlerImpl) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	month := r.URL.Query().Get("month")
	result, err := h.service.GetMonthlySummary(r.Context(), identity.UserID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
