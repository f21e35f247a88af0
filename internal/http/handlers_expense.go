package http

import (
	"net/http"

	applog "expensetracker/internal/log"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	f := parseFilter(r.URL.Query())
	NewJSONResponse().Body(s.reader.Filter(f)).Write(w, r)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	e, ok := s.reader.Get(r.PathValue("id"))
	if !ok {
		NotFoundError("expense not found").Write(w, r)
		return
	}
	NewJSONResponse().Body(e).Write(w, r)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var body expenseBody
	if err := decodeJSON(w, r, &body); err != nil {
		BadRequestError(err.Error()).Write(w, r)
		return
	}

	e, err := s.expenses.CreateExpense(r.Context(), body.input())
	if err != nil {
		s.writeServiceError(w, r, applog.OpCreate, err)
		return
	}
	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/expenses/"+e.ID).
		Body(e).
		Write(w, r)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var body patchBody
	if err := decodeJSON(w, r, &body); err != nil {
		BadRequestError(err.Error()).Write(w, r)
		return
	}

	e, found, err := s.expenses.UpdateExpense(r.Context(), r.PathValue("id"), body.input())
	if err != nil {
		s.writeServiceError(w, r, applog.OpUpdate, err)
		return
	}
	if !found {
		NotFoundError("expense not found").Write(w, r)
		return
	}
	NewJSONResponse().Body(e).Write(w, r)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	found, err := s.expenses.DeleteExpense(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, applog.OpDelete, err)
		return
	}
	if !found {
		NotFoundError("expense not found").Write(w, r)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w, r)
}

// handleClearExpenses deletes the whole collection. The caller must pass
// ?confirm=true.
func (s *Server) handleClearExpenses(w http.ResponseWriter, r *http.Request) {
	if !parseConfirm(r.URL.Query()) {
		BadRequestError("clearing all expenses requires confirm=true").Write(w, r)
		return
	}
	if err := s.expenses.ClearAll(r.Context()); err != nil {
		s.writeServiceError(w, r, applog.OpClear, err)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w, r)
}
