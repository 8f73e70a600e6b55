package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"optic-backend/internal/models"
	"optic-backend/internal/services"
	"optic-backend/internal/storage"
)

// Photo uploads cap at 5 MB; the client sends an already-cropped blob.
const maxPhotoBytes = 5 << 20

type EmployeeHandler struct {
	Service    *services.EmployeeService
	Exports    *services.ExportService
	PhotoStore *storage.PhotoStore
}

func NewEmployeeHandler(s *services.EmployeeService, exports *services.ExportService, photos *storage.PhotoStore) *EmployeeHandler {
	return &EmployeeHandler{Service: s, Exports: exports, PhotoStore: photos}
}

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	employee, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(employee)
}

func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	employee, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employee)
}

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.List(r.Context(), listParams(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var req models.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	employee, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employee)
}

func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
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

// ExportEmployees streams the staff roster in the requested format
// (?format=json|csv|excel|xlsx|pdf, default csv).
func (h *EmployeeHandler) ExportEmployees(w http.ResponseWriter, r *http.Request) {
	format := services.ExportFormat(r.URL.Query().Get("format"))
	switch format {
	case "":
		format = services.FormatCSV
	case "excel":
		format = services.FormatExcel
	}

	data, contentType, err := h.Exports.Export(r.Context(), format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="employees.%s"`, format))
	w.Write(data)
}

// UploadPhoto stores an employee photo and saves its public URL.
func (h *EmployeeHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.PhotoStore == nil {
		http.Error(w, "Photo storage is not configured", http.StatusServiceUnavailable)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if _, err := h.Service.Get(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxPhotoBytes+1))
	if err != nil || len(data) == 0 {
		http.Error(w, "Invalid photo payload", http.StatusBadRequest)
		return
	}
	if len(data) > maxPhotoBytes {
		http.Error(w, "Photo exceeds the 5 MB limit", http.StatusRequestEntityTooLarge)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	url, err := h.PhotoStore.UploadPhoto(r.Context(), "employees", id, data, contentType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := h.Service.SetPhotoURL(r.Context(), id, url); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"photo_url": url})
}
