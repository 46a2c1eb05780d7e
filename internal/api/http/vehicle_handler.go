package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/service"
)

type VehicleHandler struct {
	vehicleSvc service.VehicleService
}

func NewVehicleHandler(vehicleSvc service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc}
}

type vehicleRequest struct {
	Name         *string          `json:"vehicle_name"`
	Model        *string          `json:"model"`
	Type         *string          `json:"type"`
	RentPrice    *json.Number     `json:"rent_price"`
	Availability *bool            `json:"availability"`
	Location     *domain.Location `json:"location"`
	Image1URL    *string          `json:"image1_url"`
	Image2URL    *string          `json:"image2_url"`
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req vehicleRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Name == nil || req.Model == nil || req.Type == nil || req.RentPrice == nil || req.Location == nil {
		respondError(w, fmt.Errorf("vehicle_name, model, type, rent_price and location are required: %w", domain.ErrInvalidArgument))
		return
	}

	in := service.VehicleInput{
		Name:      *req.Name,
		Model:     *req.Model,
		Type:      *req.Type,
		RentPrice: req.RentPrice.String(),
		Location:  *req.Location,
	}
	if req.Image1URL != nil {
		in.Image1URL = *req.Image1URL
	}
	if req.Image2URL != nil {
		in.Image2URL = *req.Image2URL
	}

	vehicle, err := h.vehicleSvc.Create(r.Context(), actor, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	vehicles, err := h.vehicleSvc.List(r.Context(), actor)
	if err != nil {
		respondError(w, err)
		return
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	respondJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	vehicle, err := h.vehicleSvc.Get(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req vehicleRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	patch := service.VehiclePatch{
		Name:         req.Name,
		Model:        req.Model,
		Type:         req.Type,
		Availability: req.Availability,
		Location:     req.Location,
		Image1URL:    req.Image1URL,
		Image2URL:    req.Image2URL,
	}
	if req.RentPrice != nil {
		price := req.RentPrice.String()
		patch.RentPrice = &price
	}

	vehicle, err := h.vehicleSvc.Update(r.Context(), actor, mux.Vars(r)["id"], patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.vehicleSvc.Delete(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Vehicle deleted successfully")
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", domain.ErrInvalidArgument)
	}
	return nil
}
