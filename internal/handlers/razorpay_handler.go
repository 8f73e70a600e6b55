package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"optic-backend/internal/models"
	"optic-backend/internal/services"
)

type RazorpayHandler struct {
	Service *services.RazorpayService
}

func NewRazorpayHandler(s *services.RazorpayService) *RazorpayHandler {
	return &RazorpayHandler{Service: s}
}

// CreateOrder raises a razorpay checkout order against an expense.
func (h *RazorpayHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOnlinePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.CreateOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// VerifyPayment handles the checkout success callback.
func (h *RazorpayHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payment, err := h.Service.VerifyPayment(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payment)
}

// HandleWebhook processes razorpay webhook events. It always acknowledges
// with 200 once the signature checks out, so razorpay does not retry events
// we have already logged.
func (h *RazorpayHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.Service.VerifyWebhookSignature(body, signature) {
		log.Printf("[Razorpay] Invalid webhook signature")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	event, _ := payload["event"].(string)
	payloadData, _ := payload["payload"].(map[string]interface{})
	log.Printf("[Razorpay] Received webhook: %s", event)

	if err := h.Service.ProcessWebhook(r.Context(), event, payloadData); err != nil {
		log.Printf("[Razorpay] Webhook processing error: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// ListPayments returns the online payment history of one expense.
func (h *RazorpayHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	payments, err := h.Service.ListByExpense(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}
