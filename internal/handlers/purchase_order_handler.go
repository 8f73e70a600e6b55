package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"optic-backend/internal/models"
	"optic-backend/internal/services"
)

type PurchaseOrderHandler struct {
	Service *services.PurchaseOrderService
}

func NewPurchaseOrderHandler(s *services.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{Service: s}
}

func (h *PurchaseOrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

func (h *PurchaseOrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	order, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

func (h *PurchaseOrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.List(r.Context(), listParams(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *PurchaseOrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var req models.UpdatePurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// ReceiveOrder marks an order delivered and books the quantity into stock.
func (h *PurchaseOrderHandler) ReceiveOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Receive)
}

func (h *PurchaseOrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Cancel)
}

// AdvanceOrder moves an order one stage forward in the delivery chain.
func (h *PurchaseOrderHandler) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Advance)
}

func (h *PurchaseOrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
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

func (h *PurchaseOrderHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, id int) (*models.PurchaseOrder, error),
) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	order, err := apply(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}
