package handlers

import (
	"encoding/json"
	"net/http"

	"optic-backend/internal/models"
	"optic-backend/internal/services"
)

type ProductHandler struct {
	Service *services.ProductService
	Printer *services.PrinterService
}

func NewProductHandler(s *services.ProductService, printer *services.PrinterService) *ProductHandler {
	return &ProductHandler{Service: s, Printer: printer}
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	product, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(product)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	product, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.List(r.Context(), listParams(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	product, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
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

type printLabelsRequest struct {
	ProductIDs []int `json:"product_ids"`
	Copies     int   `json:"copies"`
}

// PrintLabels sends barcode labels for the named products to the LAN
// printer. Products without a printable barcode are reported, not printed.
func (h *ProductHandler) PrintLabels(w http.ResponseWriter, r *http.Request) {
	var req printLabelsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.ProductIDs) == 0 {
		http.Error(w, "product_ids is required", http.StatusBadRequest)
		return
	}

	var products []*models.Product
	for _, id := range req.ProductIDs {
		product, err := h.Service.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		products = append(products, product)
	}

	result, err := h.Printer.PrintLabels(products, req.Copies)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
