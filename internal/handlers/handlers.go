package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"parcel-router/internal/config"
	"parcel-router/internal/refdata"
	"parcel-router/internal/routing"
)

type Handlers struct {
	store    *refdata.Store
	resolver *routing.CachedRouter
	config   *config.Config
	validate *validator.Validate
}

// RouteRequest is the JSON body accepted by the route endpoint. Country and
// service fall back to the configured defaults when omitted.
type RouteRequest struct {
	Country     string `json:"country" validate:"omitempty,alpha,len=2"`
	PostCode    string `json:"postcode"`
	City        string `json:"city" validate:"omitempty,max=64"`
	ServiceCode string `json:"service" validate:"omitempty,numeric,len=3"`
}

func New(store *refdata.Store, resolver *routing.CachedRouter, cfg *config.Config) *Handlers {
	return &Handlers{
		store:    store,
		resolver: resolver,
		config:   cfg,
		validate: validator.New(),
	}
}

// ResolveRoute resolves a destination to its routing data
// @Summary Resolve a destination
// @Description Resolves a parcel destination to depot, sort codes and service text
// @Tags routing
// @Accept json
// @Produce json
// @Param destination body RouteRequest true "Destination to resolve"
// @Success 200 {object} routing.RouteInfo "Resolved routing data"
// @Failure 400 {object} map[string]string "Malformed request"
// @Failure 422 {object} map[string]string "Destination cannot be resolved"
// @Router /api/route [post]
func (h *Handlers) ResolveRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid", "invalid request body")
		return
	}

	h.resolve(w, r, req)
}

// ResolveRouteQuery resolves a destination given as query parameters
// @Summary Resolve a destination (query form)
// @Description Resolves a destination passed as country/postcode/city/service query parameters
// @Tags routing
// @Produce json
// @Param country query string false "ISO 3166-1 alpha-2 country code"
// @Param postcode query string true "Destination postcode"
// @Param city query string false "Destination city"
// @Param service query string false "Three-digit service code"
// @Success 200 {object} routing.RouteInfo "Resolved routing data"
// @Failure 422 {object} map[string]string "Destination cannot be resolved"
// @Router /api/route [get]
func (h *Handlers) ResolveRouteQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := RouteRequest{
		Country:     q.Get("country"),
		PostCode:    q.Get("postcode"),
		City:        q.Get("city"),
		ServiceCode: q.Get("service"),
	}

	h.resolve(w, r, req)
}

func (h *Handlers) resolve(w http.ResponseWriter, r *http.Request, req RouteRequest) {
	if err := h.validate.Struct(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid", err.Error())
		return
	}

	dest := routing.Destination{
		Country:     req.Country,
		PostCode:    req.PostCode,
		City:        req.City,
		ServiceCode: req.ServiceCode,
	}

	info, err := h.resolver.Resolve(r.Context(), dest)
	if err != nil {
		h.writeResolveError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

// GetDepot returns the master data of a single depot
// @Summary Get depot details
// @Description Returns address and contact data for a depot number
// @Tags depots
// @Produce json
// @Param id path string true "Depot number"
// @Success 200 {object} refdata.Depot "Depot master data"
// @Failure 404 {object} map[string]string "Unknown depot"
// @Router /api/depots/{id} [get]
func (h *Handlers) GetDepot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	depot, err := h.store.GetDepot(id)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "not_found", "unknown depot")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(depot)
}

// GetVersion returns the loaded routing dataset version
// @Summary Get dataset version
// @Description Returns the version stamp of the loaded routing dataset
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string "Dataset version"
// @Router /api/version [get]
func (h *Handlers) GetVersion(w http.ResponseWriter, r *http.Request) {
	version, err := h.store.Version()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "internal", "failed to read dataset version")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"routingtable_version": version})
}

// HealthCheck reports service liveness
// @Summary Health check
// @Description Returns ok when the service and its reference store are reachable
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string "Service healthy"
// @Router /health [get]
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := map[string]string{"status": "ok"}
	if err := h.store.Ping(); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "degraded", "error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// writeResolveError maps resolution failures onto HTTP statuses. A
// destination the dataset cannot resolve is a client problem, not a server
// one, so the typed resolution errors come back as 422 with the error kind.
func (h *Handlers) writeResolveError(w http.ResponseWriter, err error) {
	var countryErr *routing.CountryError
	var serviceErr *routing.ServiceError
	var translationErr *routing.TranslationError

	switch {
	case errors.As(err, &countryErr):
		h.writeError(w, http.StatusUnprocessableEntity, "country", countryErr.Error())
	case errors.As(err, &serviceErr):
		h.writeError(w, http.StatusUnprocessableEntity, "service", serviceErr.Error())
	case errors.As(err, &translationErr):
		h.writeError(w, http.StatusUnprocessableEntity, "translation", translationErr.Error())
	default:
		h.writeError(w, http.StatusInternalServerError, "internal", "failed to resolve destination")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg, "kind": kind})
}
