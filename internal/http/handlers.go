package http

import (
	"context"
	"errors"
	"net/http"

	"expensetracker/internal/core"
	"expensetracker/internal/kv"
	applog "expensetracker/internal/log"
	"expensetracker/internal/services"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(map[string]string{"status": "ok"}).Write(w, r)
}

// handleReady reports ready once the store has loaded and, when the backend
// supports it, the backend answers a ping.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.reader.Loading() {
		ServiceUnavailableError("expenses are still loading").Write(w, r)
		return
	}
	if p, ok := s.backend.(kv.Pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), readyPingTimeout)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			s.logger.WarnContext(r.Context(), "Backend ping failed", applog.FieldError, err)
			ServiceUnavailableError("storage backend unavailable").Write(w, r)
			return
		}
	}
	NewJSONResponse().Body(map[string]string{"status": "ready"}).Write(w, r)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(core.Categories()).Write(w, r)
}

// writeServiceError maps service errors to responses: validation failures are
// 422, anything else is logged and reported as 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		UnprocessableEntityError("validation failed", ve.Fields).Write(w, r)
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Request timed out",
			applog.FieldOperation, op, applog.FieldError, err)
		ServiceUnavailableError("storage did not answer in time").Write(w, r)
		return
	}
	applog.FromContext(r.Context()).ErrorContext(r.Context(), "Operation failed",
		applog.FieldOperation, op, applog.FieldError, err)
	InternalServerError("could not save your changes, please try again").Write(w, r)
}
