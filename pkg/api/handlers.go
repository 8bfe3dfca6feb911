package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ssargent/binsave/pkg/codec"
	"github.com/ssargent/binsave/pkg/export"
)

// Server holds the API server state
type Server struct {
	mu      sync.Mutex // guards session; a record is not safe for concurrent use
	session RecordSession
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(session RecordSession, config ServerConfig, metrics *Metrics) *Server {
	if metrics != nil {
		metrics.SetRecordSize(session.Record().Size())
	}
	return &Server{
		session: session,
		config:  config,
		metrics: metrics,
	}
}

func (s *Server) recordOperation(op string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.RecordFieldOperation(op, err == nil, time.Since(start))
	}
}

// statusFor maps record errors onto HTTP status codes
func statusFor(err error) int {
	var formatErr *export.FormatError
	switch {
	case errors.Is(err, codec.ErrUnknownField):
		return http.StatusNotFound
	case errors.Is(err, codec.ErrTypeMismatch),
		errors.Is(err, codec.ErrInvalidArgument),
		errors.As(err, &formatErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// reportTruncations counts each event and renders it for a response
func (s *Server) reportTruncations(truncations []codec.Truncation) []string {
	var out []string
	for _, t := range truncations {
		if s.metrics != nil {
			s.metrics.RecordTruncation(t.Field)
		}
		out = append(out, t.String())
	}
	return out
}

func fieldName(r *http.Request) (string, error) {
	return url.PathUnescape(chi.URLParam(r, "name"))
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{
		"status":  "healthy",
		"session": s.session.ID().String(),
	})
}

// handleLayout godoc
//
//	@Summary		Record layout
//	@Description	List every field with its type, offset and byte length
//	@Tags			record
//	@Produce		json
//	@Success		200	{array}	LayoutEntry
//	@Router			/layout [get]
//	@Security		ApiKeyAuth
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	slots := s.session.Record().Schema().Slots()
	layout := make([]LayoutEntry, len(slots))
	for i, slot := range slots {
		layout[i] = LayoutEntry{
			Name:   slot.Name,
			Type:   slot.Type.String(),
			Count:  slot.Count,
			Offset: slot.Offset,
			Length: slot.Length,
		}
	}
	sendSuccess(w, layout)
}

// handleGetField godoc
//
//	@Summary		Read a field
//	@Description	Render a field the way the export format does
//	@Tags			record
//	@Produce		json
//	@Param			name	path		string	true	"Field name"
//	@Success		200		{object}	FieldResponse
//	@Failure		404		{object}	map[string]string
//	@Router			/fields/{name} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetField(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name, err := fieldName(r)
	if err != nil {
		s.recordOperation("get", start, err)
		sendError(w, "Invalid field name encoding", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	rec := s.session.Record()
	value, err := export.Field(rec, name)
	s.mu.Unlock()

	s.recordOperation("get", start, err)
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}

	slot, _ := rec.Schema().Lookup(name)
	sendSuccess(w, FieldResponse{Name: name, Type: slot.Type.String(), Value: value})
}

// handlePutField godoc
//
//	@Summary		Write a field
//	@Description	Parse a value in export format and store it. Truncated stores are reported.
//	@Tags			record
//	@Accept			json
//	@Produce		json
//	@Param			name	path		string			true	"Field name"
//	@Param			body	body		FieldRequest	true	"Value"
//	@Success		200		{object}	FieldResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/fields/{name} [put]
//	@Security		ApiKeyAuth
func (s *Server) handlePutField(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name, err := fieldName(r)
	if err != nil {
		s.recordOperation("set", start, err)
		sendError(w, "Invalid field name encoding", http.StatusBadRequest)
		return
	}

	var req FieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.recordOperation("set", start, err)
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	rec := s.session.Record()
	rec.TakeTruncations()
	err = export.SetField(rec, name, req.Value)
	var value string
	if err == nil {
		value, err = export.Field(rec, name)
	}
	truncations := rec.TakeTruncations()
	s.mu.Unlock()

	s.recordOperation("set", start, err)
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}

	slot, _ := rec.Schema().Lookup(name)
	sendSuccess(w, FieldResponse{
		Name:        name,
		Type:        slot.Type.String(),
		Value:       value,
		Truncations: s.reportTruncations(truncations),
	})
}

// handleExport godoc
//
//	@Summary		Export the record
//	@Description	Render every field as text keyed by field name
//	@Tags			record
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/export [get]
//	@Security		ApiKeyAuth
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s.mu.Lock()
	values, err := export.Export(s.session.Record())
	s.mu.Unlock()

	s.recordOperation("export", start, err)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to export record: %v", err), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, values)
}

// handleImport godoc
//
//	@Summary		Import the record
//	@Description	Replace every field from text values. Fields without a key are reset to zero. Nothing changes when a value is rejected. Truncated stores are reported.
//	@Tags			record
//	@Accept			json
//	@Produce		json
//	@Param			body	body		map[string]string	true	"Field values"
//	@Success		200		{object}	ImportResponse
//	@Failure		400		{object}	map[string]string
//	@Router			/import [post]
//	@Security		ApiKeyAuth
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		s.recordOperation("import", start, err)
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	rec := s.session.Record()
	// import into a copy so the live record is never left half imported
	scratch := codec.LoadRecord(rec.Schema(), rec.Raw())
	err := export.Import(scratch, values)
	if err == nil {
		rec.Load(scratch.Raw())
	}
	s.mu.Unlock()

	s.recordOperation("import", start, err)
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}
	sendSuccess(w, ImportResponse{
		Message:     "Record imported successfully",
		Truncations: s.reportTruncations(scratch.TakeTruncations()),
	})
}

// handlePersist godoc
//
//	@Summary		Persist the record
//	@Description	Write the record buffer to its storage target
//	@Tags			record
//	@Produce		json
//	@Success		200	{object}	PersistResponse
//	@Failure		500	{object}	map[string]string
//	@Router			/persist [post]
//	@Security		ApiKeyAuth
func (s *Server) handlePersist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.session.Persist()
	size := s.session.Record().Size()
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordPersist(err == nil)
	}
	if err != nil {
		Logger().Error("persist failed", zap.Error(err))
		sendError(w, fmt.Sprintf("Failed to persist record: %v", err), http.StatusInternalServerError)
		return
	}

	if s.metrics != nil {
		s.metrics.SetRecordSize(size)
	}
	sendSuccess(w, PersistResponse{
		Session: s.session.ID().String(),
		Target:  s.session.Target().String(),
		Bytes:   size,
	})
}
