package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/punchdesk/attendance-backend-go/internal/domain/expense"
	"github.com/punchdesk/attendance-backend-go/internal/handler/http/middleware"
	"github.com/punchdesk/attendance-backend-go/internal/handler/http/response"
)

type ExpenseHandler interface {
	Add(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type expenseHandlerImpl struct {
	expenseService expense.Service
}

func NewExpenseHandler(expenseService expense.Service) ExpenseHandler {
	return &expenseHandlerImpl{
		expenseService: expenseService,
	}
}

// Add implements ExpenseHandler. Multipart: 'data' JSON field plus an
// optional 'receipt' file.
func (h *expenseHandlerImpl) Add(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Max 10MB
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse expense form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	var req expense.AddRequest
	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal expense data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	file, fileHeader, err := r.FormFile("receipt")
	if err == nil {
		defer file.Close()
		req.ReceiptFile = file
		req.ReceiptFilename = fileHeader.Filename
	} else if err != http.ErrMissingFile {
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	result, err := h.expenseService.Add(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Expense claim submitted", result)
}

// ListMine implements ExpenseHandler.
func (h *expenseHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.expenseService.ListMine(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPending implements ExpenseHandler. Admin only (enforced by routing).
func (h *expenseHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	result, err := h.expenseService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements ExpenseHandler. Admin only (enforced by routing).
func (h *expenseHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	adminID, err := middleware.UserID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.expenseService.Approve(r.Context(), adminID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expense approved", result)
}

// Reject implements ExpenseHandler. Admin only (enforced by routing).
func (h *expenseHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	adminID, err := middleware.UserID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.expenseService.Reject(r.Context(), adminID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expense rejected", result)
}
