package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"expensetracker/internal/export"
	applog "expensetracker/internal/log"
	"expensetracker/internal/services"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(s.reader.Snapshot(s.now())).Write(w, r)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(s.reader.Stats()).Write(w, r)
}

// handleExport streams the current list as a download in ?format=json|xlsx|csv.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		BadRequestError(err.Error()).Write(w, r)
		return
	}
	doc, err := s.exports.Document()
	if err != nil {
		s.writeServiceError(w, r, applog.OpExport, err)
		return
	}

	// Render fully before writing so a failure can still produce a 500.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, doc); err != nil {
		s.writeServiceError(w, r, applog.OpExport, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename(format)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleExportTargets(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(map[string][]string{"targets": s.exports.Targets()}).Write(w, r)
}

type exportResult struct {
	Target      string    `json:"target"`
	Count       int       `json:"count"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// handleExportTo delivers the current list to a configured target such as
// amqp or sheets.
func (s *Server) handleExportTo(w http.ResponseWriter, r *http.Request) {
	target := r.PathValue("target")
	doc, err := s.exports.Export(r.Context(), target)
	if errors.Is(err, services.ErrUnknownTarget) {
		NotFoundError(err.Error()).Write(w, r)
		return
	}
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Export failed",
			applog.FieldTarget, target, applog.FieldError, err)
		ErrorResponse(http.StatusBadGateway, "export target did not accept the document").Write(w, r)
		return
	}
	NewJSONResponse().Body(exportResult{
		Target:      target,
		Count:       len(doc.Expenses),
		GeneratedAt: doc.GeneratedAt,
	}).Write(w, r)
}
