package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/truckhire/truckhire-server/internal/api/http/httpctx"
	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/logger"
	"github.com/truckhire/truckhire-server/internal/model"
	"github.com/truckhire/truckhire-server/internal/service"
)

// TruckService is the part of the truck service the HTTP layer calls.
type TruckService interface {
	Create(ctx context.Context, params service.CreateTruckParams) (model.Truck, error)
	List(ctx context.Context, params model.TruckListParams) ([]model.Truck, error)
	Get(ctx context.Context, id uuid.UUID) (model.Truck, error)
	Update(ctx context.Context, params service.UpdateTruckServiceParams) (model.Truck, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type Truck struct {
	service TruckService
	logger  *logger.Logger
}

func NewTruck(service TruckService, logger *logger.Logger) *Truck {
	return &Truck{
		service: service,
		logger:  logger,
	}
}

func (h *Truck) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := httpctx.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apierrors.NewErrInternal())
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("expected multipart form data"))
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price_per_day"), 64)
	if err != nil {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("price_per_day must be a number"))
		return
	}

	params := service.CreateTruckParams{
		OwnerID:     principal.ID,
		Name:        r.FormValue("name"),
		Type:        r.FormValue("type"),
		Location:    r.FormValue("location"),
		PricePerDay: price,
	}

	if file, header, err := r.FormFile("image_cover"); err == nil {
		defer file.Close()
		params.Cover = file
		params.CoverSize = header.Size
		params.CoverContentType = header.Header.Get("Content-Type")
	}

	truck, err := h.service.Create(r.Context(), params)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"data":   map[string]any{"truck": truck},
	})
}

// List is public; filters, sorting and paging come from query params.
func (h *Truck) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := model.TruckListParams{
		Type:     query.Get("type"),
		Location: query.Get("location"),
		Search:   query.Get("search"),
		SortBy:   query.Get("sort"),
		SortDesc: query.Get("order") == "desc",
	}
	if v := query.Get("available"); v != "" {
		available := v == "true"
		params.Available = &available
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		params.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		params.Limit = limit
	}

	trucks, err := h.service.List(r.Context(), params)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"results": len(trucks),
		"data":    map[string]any{"trucks": trucks},
	})
}

func (h *Truck) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("invalid truck id"))
		return
	}

	truck, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"truck": truck},
	})
}

func (h *Truck) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := httpctx.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apierrors.NewErrInternal())
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("invalid truck id"))
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("expected multipart form data"))
		return
	}

	params := service.UpdateTruckServiceParams{
		ID:       id,
		OwnerID:  principal.ID,
		Name:     formValue(r, "name"),
		Type:     formValue(r, "type"),
		Location: formValue(r, "location"),
	}
	if v := formValue(r, "price_per_day"); v != nil {
		price, err := strconv.ParseFloat(*v, 64)
		if err != nil {
			writeError(w, h.logger, apierrors.NewErrInvalidRequest("price_per_day must be a number"))
			return
		}
		params.PricePerDay = &price
	}
	if v := formValue(r, "available"); v != nil {
		available := *v == "true"
		params.Available = &available
	}

	if file, header, err := r.FormFile("image_cover"); err == nil {
		defer file.Close()
		params.Cover = file
		params.CoverSize = header.Size
		params.CoverContentType = header.Header.Get("Content-Type")
	}

	truck, err := h.service.Update(r.Context(), params)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"truck": truck},
	})
}

func (h *Truck) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := httpctx.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apierrors.NewErrInternal())
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("invalid truck id"))
		return
	}

	if err := h.service.Delete(r.Context(), id, principal.ID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
