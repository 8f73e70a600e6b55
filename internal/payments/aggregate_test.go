package payments

import (
	"testing"

	"optic-backend/internal/models"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		total, paid float64
		want        models.PaymentStatus
	}{
		{5000, 0, models.PaymentStatusPending},
		{5000, 2000, models.PaymentStatusPartial},
		{5000, 5000, models.PaymentStatusPaid},
		{5000, 6000, models.PaymentStatusPaid},
		{0, 0, models.PaymentStatusPending},
	}
	for _, tc := range cases {
		if got := StatusFor(tc.total, tc.paid); got != tc.want {
			t.Fatalf("StatusFor(%v, %v) = %v, want %v", tc.total, tc.paid, got, tc.want)
		}
	}
}

func TestCompute_RemainingAndPayable(t *testing.T) {
	b := Compute(5000, 2000)
	if b.Remaining != 3000 || b.Payable != 3000 {
		t.Fatalf("remaining=%v payable=%v, want 3000/3000", b.Remaining, b.Payable)
	}
	if b.Overpaid {
		t.Fatal("unexpected overpaid flag")
	}
}

func TestCompute_OverpaymentSurfaced(t *testing.T) {
	b := Compute(1000, 1500)
	if b.Remaining != -500 {
		t.Fatalf("raw remaining should stay negative, got %v", b.Remaining)
	}
	if b.Payable != 0 {
		t.Fatalf("payable must never go negative, got %v", b.Payable)
	}
	if !b.Overpaid {
		t.Fatal("overpayment must be flagged")
	}
}

func TestValidateNewPayment(t *testing.T) {
	remaining := 3000.0

	if err := ValidateNewPayment(0, remaining); err != ErrNonPositiveAmount {
		t.Fatalf("amount 0: got %v, want ErrNonPositiveAmount", err)
	}
	if err := ValidateNewPayment(-50, remaining); err != ErrNonPositiveAmount {
		t.Fatalf("negative amount: got %v, want ErrNonPositiveAmount", err)
	}
	if err := ValidateNewPayment(3001, remaining); err != ErrExceedsRemaining {
		t.Fatalf("amount 3001: got %v, want ErrExceedsRemaining", err)
	}
	if err := ValidateNewPayment(3000, remaining); err != nil {
		t.Fatalf("amount 3000 must pass, got %v", err)
	}
}

func TestSumCompleted_IgnoresNonCompleted(t *testing.T) {
	txns := []models.ExpenseTransaction{
		{Amount: 1000, Status: models.TransactionCompleted},
		{Amount: 500, Status: models.TransactionPending},
		{Amount: 250, Status: models.TransactionCompleted},
		{Amount: 99, Status: models.TransactionFailed},
	}
	if got := SumCompleted(txns); got != 1250 {
		t.Fatalf("SumCompleted = %v, want 1250", got)
	}
}
