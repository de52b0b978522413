package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/guid"
	"github.com/ssargent/stylegraph/pkg/library"
)

// Server holds the API server state
type Server struct {
	registry *codec.Registry
	library  RecordLibrary
	config   ServerConfig
	metrics  *Metrics
	log      zerolog.Logger
}

// NewServer creates a new API server. lib may be nil, in which case the
// library routes report 503.
func NewServer(reg *codec.Registry, lib RecordLibrary, config ServerConfig, metrics *Metrics, log zerolog.Logger) *Server {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{
		registry: reg,
		library:  lib,
		config:   config,
		metrics:  metrics,
		log:      log,
	}
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
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleDecode godoc
//
//	@Summary		Decode a record
//	@Description	Decode one persisted record and return its snapshot
//	@Tags			decode
//	@Accept			octet-stream
//	@Produce		json
//	@Param			body		body		[]byte	true	"Record bytes"
//	@Param			version		query		int		false	"Version given to an unversioned root"
//	@Param			max_depth	query		int		false	"Maximum object nesting"
//	@Param			strict		query		bool	false	"Reject bytes after the root object"
//	@Success		200			{object}	DecodeResponse
//	@Failure		400			{object}	DecodeFailure
//	@Failure		422			{object}	DecodeFailure
//	@Failure		501			{object}	DecodeFailure
//	@Router			/decode [post]
//	@Security		ApiKeyAuth
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(body) == 0 {
		sendError(w, "Request body is empty", http.StatusBadRequest)
		return
	}

	obj, err := s.decode(body, opts...)
	if err != nil {
		sendDecodeError(w, err)
		return
	}
	sendSuccess(w, toDecodeResponse(obj))
}

// handleListClasses godoc
//
//	@Summary		List classes
//	@Description	List every supported and catalogued class identifier
//	@Tags			classes
//	@Produce		json
//	@Param			supported	query		bool	false	"Only supported (true) or only catalogued (false) classes"
//	@Success		200			{object}	map[string]interface{}
//	@Router			/classes [get]
//	@Security		ApiKeyAuth
func (s *Server) handleListClasses(w http.ResponseWriter, r *http.Request) {
	classes := s.registry.Classes()

	if raw := r.URL.Query().Get("supported"); raw != "" {
		want, err := strconv.ParseBool(raw)
		if err != nil {
			sendError(w, "supported must be true or false", http.StatusBadRequest)
			return
		}
		filtered := classes[:0]
		for _, c := range classes {
			if c.Supported == want {
				filtered = append(filtered, c)
			}
		}
		classes = filtered
	}

	sendSuccess(w, map[string]interface{}{
		"classes":     classes,
		"supported":   s.registry.Len(),
		"unsupported": s.registry.UnsupportedLen(),
	})
}

// handleGetClass godoc
//
//	@Summary		Describe a class
//	@Description	Look up a class identifier in canonical or wire form
//	@Tags			classes
//	@Produce		json
//	@Param			id	path		string	true	"Class identifier"
//	@Success		200	{object}	codec.ClassInfo
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/classes/{id} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetClass(w http.ResponseWriter, r *http.Request) {
	id, err := guid.ParseAny(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	info, ok := s.registry.Lookup(id)
	if !ok {
		sendError(w, fmt.Sprintf("Unknown class identifier %s", id), http.StatusNotFound)
		return
	}
	sendSuccess(w, info)
}

// handlePutRecord godoc
//
//	@Summary		Store a record
//	@Description	Store raw record bytes in the library
//	@Tags			library
//	@Accept			octet-stream
//	@Produce		json
//	@Param			name	query		string	false	"Display name"
//	@Param			body	body		[]byte	true	"Record bytes"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/library [post]
//	@Security		ApiKeyAuth
func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	if !s.requireLibrary(w) {
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		s.metrics.RecordLibraryOperation("put", false)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	id, err := s.library.Put(name, body)
	if err != nil {
		s.metrics.RecordLibraryOperation("put", false)
		sendError(w, fmt.Sprintf("Failed to store record: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordLibraryOperation("put", true)
	sendSuccess(w, map[string]string{"id": id.String(), "name": name})
}

// handleListRecords godoc
//
//	@Summary		List records
//	@Description	List every record in the library, oldest first
//	@Tags			library
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Failure		500	{object}	map[string]string
//	@Router			/library [get]
//	@Security		ApiKeyAuth
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	if !s.requireLibrary(w) {
		return
	}

	entries, err := s.library.List()
	if err != nil {
		s.metrics.RecordLibraryOperation("list", false)
		sendError(w, fmt.Sprintf("Failed to list records: %v", err), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []library.EntryInfo{}
	}

	s.metrics.RecordLibraryOperation("list", true)
	s.metrics.SetLibraryEntries(len(entries))
	sendSuccess(w, map[string]interface{}{"records": entries})
}

// handleGetRecord godoc
//
//	@Summary		Decode a stored record
//	@Description	Decode the record stored under id and return its snapshot
//	@Tags			library
//	@Produce		json
//	@Param			id	path		string	true	"Record id"
//	@Success		200	{object}	DecodeResponse
//	@Failure		400	{object}	DecodeFailure
//	@Failure		404	{object}	map[string]string
//	@Failure		422	{object}	DecodeFailure
//	@Failure		501	{object}	DecodeFailure
//	@Router			/library/{id} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	if !s.requireLibrary(w) {
		return
	}

	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}

	entry, err := s.library.Get(id)
	if err != nil {
		s.metrics.RecordLibraryOperation("get", false)
		sendLibraryError(w, err)
		return
	}
	s.metrics.RecordLibraryOperation("get", true)

	opts, err := s.decodeOptions(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	obj, err := s.decode(entry.Data, opts...)
	if err != nil {
		sendDecodeError(w, err)
		return
	}

	resp := toDecodeResponse(obj)
	resp.ID = entry.ID.String()
	resp.Name = entry.Name
	sendSuccess(w, resp)
}

// handleDeleteRecord godoc
//
//	@Summary		Delete a record
//	@Description	Remove a record from the library
//	@Tags			library
//	@Produce		json
//	@Param			id	path		string	true	"Record id"
//	@Success		200	{object}	map[string]string
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/library/{id} [delete]
//	@Security		ApiKeyAuth
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if !s.requireLibrary(w) {
		return
	}

	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}

	if err := s.library.Delete(id); err != nil {
		s.metrics.RecordLibraryOperation("delete", false)
		sendLibraryError(w, err)
		return
	}

	s.metrics.RecordLibraryOperation("delete", true)
	sendSuccess(w, map[string]string{"message": "Record deleted successfully"})
}

// handleDecodeLibrary godoc
//
//	@Summary		Decode the library
//	@Description	Decode every stored record; failures are reported per record
//	@Tags			library
//	@Produce		json
//	@Success		200	{object}	library.Report
//	@Failure		500	{object}	map[string]string
//	@Router			/library/decode [post]
//	@Security		ApiKeyAuth
func (s *Server) handleDecodeLibrary(w http.ResponseWriter, r *http.Request) {
	if !s.requireLibrary(w) {
		return
	}

	start := time.Now()
	report, err := s.library.DecodeAll()
	if err != nil {
		s.metrics.RecordLibraryOperation("decode", false)
		sendError(w, fmt.Sprintf("Failed to decode library: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordLibraryOperation("decode", true)
	s.metrics.SetLibraryEntries(report.Total)
	for _, res := range report.Results {
		s.metrics.RecordDecode(res.Class, res.Outcome, res.Size, res.Elapsed)
	}
	s.log.Info().
		Int("total", report.Total).
		Dur("elapsed", time.Since(start)).
		Interface("counts", report.Counts).
		Msg("decoded library")
	sendSuccess(w, report)
}

func (s *Server) decode(buf []byte, opts ...codec.Option) (codec.Object, error) {
	start := time.Now()
	obj, err := codec.Decode(buf, s.registry, opts...)
	outcome := codec.Classify(err)

	class := ""
	if obj != nil {
		class = obj.ClassName()
	}
	s.metrics.RecordDecode(class, outcome, len(buf), time.Since(start))

	if err != nil {
		s.log.Warn().Err(err).Str("outcome", string(outcome)).Int("size", len(buf)).Msg("decode failed")
	} else {
		s.log.Debug().Str("class", class).Int("size", len(buf)).Msg("decoded record")
	}
	return obj, err
}

// decodeOptions builds stream options from the server config and the
// version, max_depth and strict query parameters.
func (s *Server) decodeOptions(r *http.Request) ([]codec.Option, error) {
	var opts []codec.Option
	if s.config.MaxDepth > 0 {
		opts = append(opts, codec.WithMaxDepth(s.config.MaxDepth))
	}
	if s.config.DefaultVersion > 0 {
		opts = append(opts, codec.WithVersion(s.config.DefaultVersion))
	}

	q := r.URL.Query()
	if raw := q.Get("version"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid version %q", raw)
		}
		opts = append(opts, codec.WithVersion(int(v)))
	}
	if raw := q.Get("max_depth"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 1 {
			return nil, fmt.Errorf("invalid max_depth %q", raw)
		}
		opts = append(opts, codec.WithMaxDepth(d))
	}

	strict := s.config.Strict
	if raw := q.Get("strict"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid strict %q", raw)
		}
		strict = v
	}
	if strict {
		opts = append(opts, codec.WithStrictLength())
	}
	return opts, nil
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return body, nil
}

func (s *Server) requireLibrary(w http.ResponseWriter) bool {
	if s.library == nil {
		sendError(w, "Record library is not configured", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func parseRecordID(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := ksuid.Parse(raw)
	if err != nil {
		sendError(w, fmt.Sprintf("Invalid record id %q", raw), http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}

func sendLibraryError(w http.ResponseWriter, err error) {
	if errors.Is(err, library.ErrNotFound) {
		sendError(w, "Record not found", http.StatusNotFound)
		return
	}
	sendError(w, fmt.Sprintf("Library error: %v", err), http.StatusInternalServerError)
}

func toDecodeResponse(obj codec.Object) DecodeResponse {
	if obj == nil {
		return DecodeResponse{}
	}
	return DecodeResponse{Class: obj.ClassName(), Snapshot: obj.Snapshot()}
}
