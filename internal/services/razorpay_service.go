package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"optic-backend/internal/cache"
	"optic-backend/internal/metrics"
	"optic-backend/internal/models"
	"optic-backend/internal/payments"
	"optic-backend/internal/repositories"
	"optic-backend/internal/timeutil"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayService settles approved expenses online. A verified capture
// lands as a COMPLETED expense transaction, so the payment breakdown math
// never distinguishes online from manual payments.
type RazorpayService struct {
	paymentRepo   *repositories.OnlinePaymentRepository
	expenseRepo   *repositories.ExpenseRepository
	txRepo        *repositories.ExpenseTransactionRepository
	keyID         string
	keySecret     string
	webhookSecret string
}

func NewRazorpayService(
	keyID, keySecret, webhookSecret string,
	paymentRepo *repositories.OnlinePaymentRepository,
	expenseRepo *repositories.ExpenseRepository,
	txRepo *repositories.ExpenseTransactionRepository,
) *RazorpayService {
	return &RazorpayService{
		paymentRepo:   paymentRepo,
		expenseRepo:   expenseRepo,
		txRepo:        txRepo,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

func (s *RazorpayService) Enabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

// CreateOrder raises a razorpay order against an expense's payable balance.
func (s *RazorpayService) CreateOrder(ctx context.Context, req *models.CreateOnlinePaymentRequest) (*models.CreateOrderResponse, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("online payments are not configured")
	}

	expense, err := s.expenseRepo.Get(ctx, req.ExpenseID)
	if err != nil {
		return nil, fmt.Errorf("expense not found: %w", err)
	}
	if expense.Status != models.ApprovalApproved {
		return nil, ErrExpenseNotApproved
	}

	txns, err := s.txRepo.ListByExpense(ctx, req.ExpenseID)
	if err != nil {
		return nil, err
	}
	flat := make([]models.ExpenseTransaction, len(txns))
	for i, tx := range txns {
		flat[i] = *tx
	}
	breakdown := payments.Compute(expense.Amount, payments.SumCompleted(flat))
	if err := payments.ValidateNewPayment(req.Amount, breakdown.Payable); err != nil {
		return nil, err
	}

	client := razorpay.NewClient(s.keyID, s.keySecret)
	amountPaise := int(req.Amount * 100)

	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("exp_%d_%d", expense.ID, time.Now().Unix()),
		"notes": map[string]interface{}{
			"expense_id": expense.ID,
			"vendor":     expense.Vendor,
		},
	}
	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}
	orderID := order["id"].(string)

	payment := &models.OnlinePayment{
		RazorpayOrderID: orderID,
		ExpenseID:       expense.ID,
		Vendor:          expense.Vendor,
		Amount:          req.Amount,
		Status:          models.OnlinePaymentPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}

	return &models.CreateOrderResponse{
		OrderID:  orderID,
		Amount:   amountPaise,
		Currency: "INR",
		KeyID:    s.keyID,
		Vendor:   expense.Vendor,
		Rupees:   req.Amount,
	}, nil
}

// VerifyPayment checks the checkout callback signature and, on success,
// records the capture as a completed UPI transaction on the expense.
func (s *RazorpayService) VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.OnlinePayment, error) {
	payment, err := s.paymentRepo.GetByOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, fmt.Errorf("payment not found: %w", err)
	}

	if !s.verifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		_ = s.paymentRepo.MarkFailed(ctx, payment.ID, "Invalid signature")
		return nil, fmt.Errorf("invalid payment signature")
	}

	if payment.Status == models.OnlinePaymentSuccess {
		return payment, nil
	}

	payment.RazorpaySignature = req.RazorpaySignature
	if err := s.recordCapture(ctx, payment, req.RazorpayPaymentID); err != nil {
		return nil, err
	}
	return payment, nil
}

// recordCapture settles a verified capture: a COMPLETED UPI transaction on
// the expense, the paid total bumped in SQL, and the payment row closed.
func (s *RazorpayService) recordCapture(ctx context.Context, payment *models.OnlinePayment, paymentID string) error {
	// Best effort detail fetch; verification already passed.
	utr, method, vpa := s.fetchPaymentDetails(paymentID)

	tx := &models.ExpenseTransaction{
		ExpenseID:     payment.ExpenseID,
		Amount:        payment.Amount,
		Type:          "EXPENSE",
		Status:        models.TransactionCompleted,
		PaymentMethod: models.MethodUPI,
		Date:          timeutil.StartOfDay(timeutil.Now()),
		Notes:         fmt.Sprintf("Online payment via Razorpay | UTR: %s", utr),
		Reference:     paymentID,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	if err := s.expenseRepo.AddPaidAmount(ctx, payment.ExpenseID, payment.Amount); err != nil {
		return err
	}

	payment.RazorpayPaymentID = paymentID
	payment.Status = models.OnlinePaymentSuccess
	payment.UTRNumber = utr
	payment.Method = method
	payment.VPA = vpa
	payment.TransactionID = &tx.ID
	if err := s.paymentRepo.MarkSuccess(ctx, payment); err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	metrics.PaymentsRecorded.WithLabelValues(string(models.MethodUPI)).Inc()
	cache.InvalidateDashboard(ctx)
	log.Printf("[Razorpay] Captured payment %s for expense %d, amount %.2f",
		paymentID, payment.ExpenseID, payment.Amount)
	return nil
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against the
// raw webhook body.
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		// Skip verification when no secret is configured.
		return true
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ProcessWebhook handles razorpay webhook events. Unknown events are logged
// and acknowledged.
func (s *RazorpayService) ProcessWebhook(ctx context.Context, event string, payload map[string]interface{}) error {
	switch event {
	case "payment.captured":
		return s.handlePaymentCaptured(ctx, payload)
	case "payment.failed":
		return s.handlePaymentFailed(ctx, payload)
	default:
		log.Printf("[Razorpay] Unhandled webhook event: %s", event)
		return nil
	}
}

func webhookEntity(payload map[string]interface{}) map[string]interface{} {
	entity := payload
	if p, ok := payload["payment"].(map[string]interface{}); ok {
		entity = p
	}
	if e, ok := entity["entity"].(map[string]interface{}); ok {
		entity = e
	}
	return entity
}

func (s *RazorpayService) handlePaymentCaptured(ctx context.Context, payload map[string]interface{}) error {
	entity := webhookEntity(payload)
	orderID, _ := entity["order_id"].(string)
	paymentID, _ := entity["id"].(string)
	if orderID == "" {
		return fmt.Errorf("missing order_id in webhook")
	}

	payment, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("payment not found: %w", err)
	}
	if payment.Status == models.OnlinePaymentSuccess {
		log.Printf("[Razorpay] Payment already processed: %s", orderID)
		return nil
	}
	return s.recordCapture(ctx, payment, paymentID)
}

func (s *RazorpayService) handlePaymentFailed(ctx context.Context, payload map[string]interface{}) error {
	entity := webhookEntity(payload)
	orderID, _ := entity["order_id"].(string)
	if orderID == "" {
		return fmt.Errorf("missing order_id in webhook")
	}

	payment, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("payment not found: %w", err)
	}
	if payment.Status == models.OnlinePaymentSuccess {
		// A late failure event never overrides a verified capture.
		return nil
	}

	reason := "Payment failed"
	if desc, ok := entity["error_description"].(string); ok && desc != "" {
		reason = desc
	}
	return s.paymentRepo.MarkFailed(ctx, payment.ID, reason)
}

func (s *RazorpayService) ListByExpense(ctx context.Context, expenseID int) ([]*models.OnlinePayment, error) {
	return s.paymentRepo.ListByExpense(ctx, expenseID)
}

func (s *RazorpayService) verifySignature(orderID, paymentID, signature string) bool {
	if s.keySecret == "" {
		return false
	}
	data := orderID + "|" + paymentID
	h := hmac.New(sha256.New, []byte(s.keySecret))
	h.Write([]byte(data))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *RazorpayService) fetchPaymentDetails(paymentID string) (utr, method, vpa string) {
	client := razorpay.NewClient(s.keyID, s.keySecret)
	payment, err := client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		log.Printf("[Razorpay] Failed to fetch payment details: %v", err)
		return "", "", ""
	}

	if acquirer, ok := payment["acquirer_data"].(map[string]interface{}); ok {
		if u, ok := acquirer["upi_transaction_id"].(string); ok {
			utr = u
		}
		if u, ok := acquirer["bank_transaction_id"].(string); ok && utr == "" {
			utr = u
		}
		if u, ok := acquirer["rrn"].(string); ok && utr == "" {
			utr = u
		}
	}
	if m, ok := payment["method"].(string); ok {
		method = m
	}
	if v, ok := payment["vpa"].(string); ok {
		vpa = v
	}
	return utr, method, vpa
}
