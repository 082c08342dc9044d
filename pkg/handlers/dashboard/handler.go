package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/de-tools/consumption-atlas/pkg/adapters"
	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	"github.com/de-tools/consumption-atlas/pkg/render/png"
	"github.com/de-tools/consumption-atlas/pkg/services/dashboard"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	svc      dashboard.Service
	renderer *png.Renderer
}

func NewHandler(svc dashboard.Service, renderer *png.Renderer) *Handler {
	if renderer == nil {
		renderer = png.NewRenderer()
	}
	return &Handler{
		svc:      svc,
		renderer: renderer,
	}
}

func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	response := adapters.MapOptionsDomainToApi(h.svc.Options(ctx))
	writeJSON(w, http.StatusOK, response, logger)
}

// GetDashboard reads the filter from the query string. Parameters that are not
// present keep their default value.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.respondDashboard(w, r, filter)
}

// PostDashboard decodes a JSON filter over the defaults, so omitted fields keep
// their default and an explicit empty beverage list selects nothing.
func (h *Handler) PostDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	request := adapters.MapFilterDomainToApi(h.svc.Options(ctx).Default)
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	h.respondDashboard(w, r, adapters.MapFilterApiToDomain(request))
}

func (h *Handler) GetFigure(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "figure")

	filter, err := h.filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, ok := h.recompute(w, r, filter)
	if !ok {
		return
	}

	fig, err := png.FigureByName(result.Figures, name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, fig); err != nil {
		logger.Error().
			Err(err).
			Str("figure", name).
			Msg("failed to render figure")
		http.Error(w, "failed to render figure", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error().
			Err(err).
			Str("figure", name).
			Msg("failed to write figure")
	}
}

func (h *Handler) respondDashboard(w http.ResponseWriter, r *http.Request, filter domain.FilterState) {
	result, ok := h.recompute(w, r, filter)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, adapters.MapDashboardDomainToApi(result), zerolog.Ctx(r.Context()))
}

func (h *Handler) recompute(w http.ResponseWriter, r *http.Request, filter domain.FilterState) (domain.Dashboard, bool) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	result, err := h.svc.Recompute(ctx, filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFilter) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return domain.Dashboard{}, false
		}
		logger.Error().
			Err(err).
			Msg("failed to recompute dashboard")
		http.Error(w, "failed to recompute dashboard", http.StatusInternalServerError)
		return domain.Dashboard{}, false
	}
	return result, true
}

func (h *Handler) filterFromQuery(r *http.Request) (domain.FilterState, error) {
	filter := h.svc.Options(r.Context()).Default.Clone()
	query := r.URL.Query()

	if query.Has("continent") {
		filter.Continent = query.Get("continent")
	}
	if query.Has("beverage") {
		filter.Beverages = []string{}
		for _, b := range query["beverage"] {
			if b != "" {
				filter.Beverages = append(filter.Beverages, b)
			}
		}
	}
	if query.Has("strength") {
		filter.Strength = query.Get("strength")
	}
	if query.Has("year") {
		year, err := strconv.Atoi(query.Get("year"))
		if err != nil {
			return domain.FilterState{}, fmt.Errorf("invalid 'year' value %q. Expected an integer", query.Get("year"))
		}
		filter.Year = year
	}
	return filter, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, logger *zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode response")
	}
}
