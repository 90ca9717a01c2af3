package http

import (
	"net/http"

	"github.com/punchdesk/attendance-backend-go/internal/domain/payroll"
	"github.com/punchdesk/attendance-backend-go/internal/handler/http/middleware"
	"github.com/punchdesk/attendance-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	MySummary(w http.ResponseWriter, r *http.Request)
	TeamSummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// MySummary implements PayrollHandler.
func (h *payrollHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, month, ok := parsePeriod(r)
	if !ok {
		response.BadRequest(w, "Query params 'year' and 'month' are required", nil)
		return
	}

	result, err := h.payrollService.MonthlySummary(r.Context(), userID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TeamSummary implements PayrollHandler. Admin only (enforced by routing).
func (h *payrollHandlerImpl) TeamSummary(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(r)
	if !ok {
		response.BadRequest(w, "Query params 'year' and 'month' are required", nil)
		return
	}

	result, err := h.payrollService.TeamSummary(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
