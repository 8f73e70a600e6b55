package handlers

import (
	"encoding/json"
	"net/http"

	"optic-backend/internal/models"
	"optic-backend/internal/services"
)

type PrescriptionHandler struct {
	Service *services.PrescriptionService
}

func NewPrescriptionHandler(s *services.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{Service: s}
}

func (h *PrescriptionHandler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	prescription, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(prescription)
}

func (h *PrescriptionHandler) GetPrescription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	prescription, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prescription)
}

func (h *PrescriptionHandler) ListPrescriptions(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.List(r.Context(), listParams(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *PrescriptionHandler) UpdatePrescription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var req models.UpdatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	prescription, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prescription)
}

func (h *PrescriptionHandler) DeletePrescription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
