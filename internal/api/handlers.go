package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rgehrsitz/retireright/internal/calculation"
	"github.com/rgehrsitz/retireright/internal/compare"
	"github.com/rgehrsitz/retireright/internal/config"
	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/internal/store"
	"github.com/rgehrsitz/retireright/internal/transform"
)

// maxBodyBytes bounds request bodies; configurations are small.
const maxBodyBytes = 1 << 20

// Handler holds the dependencies of every endpoint.
type Handler struct {
	Engine   *calculation.ProjectionEngine
	Comparer *compare.CompareEngine
	// Store may be nil, in which case saving and listing return 503.
	Store store.Store
}

// NewHandler creates a handler around one engine. A nil engine uses the embedded rules.
func NewHandler(engine *calculation.ProjectionEngine, st store.Store) *Handler {
	if engine == nil {
		engine = calculation.NewProjectionEngine(nil, nil)
	}
	return &Handler{
		Engine:   engine,
		Comparer: compare.NewCompareEngine(engine),
		Store:    st,
	}
}

// CreateProjection runs the posted configuration.
func (h *Handler) CreateProjection(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cfg, err := config.Decode(body, config.FormatJSON)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid configuration", err)
		return
	}

	save := r.URL.Query().Get("save") == "true"
	if save && h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Run storage not configured", nil)
		return
	}

	table, err := h.Engine.Run(r.Context(), cfg)
	if err != nil {
		writeRunError(w, err)
		return
	}

	resp := ProjectionResponse{Table: table}
	if save {
		run := &store.SavedRun{Name: r.URL.Query().Get("name"), Config: cfg, Table: table}
		if err := h.Store.SaveRun(r.Context(), run); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save run", err)
			return
		}
		resp.ID = &run.ID
		resp.Name = run.Name
		writeJSON(w, http.StatusCreated, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListProjections lists saved runs, newest first.
func (h *Handler) ListProjections(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Run storage not configured", nil)
		return
	}
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", fmt.Errorf("limit must be a non-negative integer, got %q", s))
			return
		}
		limit = n
	}

	runs, err := h.Store.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetProjection loads one saved run.
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Run storage not configured", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid run ID", err)
		return
	}

	run, err := h.Store.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Run not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get run", err)
		return
	}
	writeJSON(w, http.StatusOK, ProjectionResponse{ID: &run.ID, Name: run.Name, Config: run.Config, Table: run.Table})
}

// Compare projects the base configuration and each alternative.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Config == nil {
		writeRunError(w, domain.NewValidationError("config", "is required"))
		return
	}

	alternatives := make([]compare.Alternative, 0, len(req.Alternatives))
	for _, spec := range req.Alternatives {
		alt, err := h.Comparer.ResolveAlternative(spec)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid alternative", err)
			return
		}
		alternatives = append(alternatives, alt)
	}

	compSet, err := h.Comparer.CompareAlternatives(r.Context(), req.Config, alternatives)
	if err != nil {
		writeRunError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, compSet)
}

// ListJurisdictions lists the tax tables the engine knows.
func (h *Handler) ListJurisdictions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.StateTax.Jurisdictions())
}

// writeRunError maps engine and transform failures onto HTTP statuses.
func writeRunError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid configuration",
			Field:   verr.Field,
			Details: err.Error(),
		})
		return
	}
	var terr *transform.TransformError
	if errors.As(err, &terr) {
		writeError(w, http.StatusBadRequest, "Invalid alternative", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Projection failed", err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
