package budget

import (
	"encoding/json"
	"testing"

	"optic-backend/internal/models"
)

func summary(categoryID int, amount string, allocated float64) models.ExpenseByCategorySummary {
	return models.ExpenseByCategorySummary{
		CategoryID: categoryID,
		Amount:     json.Number(amount),
		Budget:     allocated,
	}
}

func TestReconcile_GoldenScenario(t *testing.T) {
	categories := []models.ExpenseCategory{
		{ID: 1, Name: "Rent"},
		{ID: 2, Name: "Utilities"},
		{ID: 3, Name: "Marketing"},
	}
	summaries := []models.ExpenseByCategorySummary{
		summary(1, "1200", 1000),
		summary(2, "300", 500),
		summary(3, "50", 0),
	}
	expenses := []models.Expense{
		{ID: 11, CategoryID: 1},
		{ID: 12, CategoryID: 2},
		{ID: 13, CategoryID: 3},
	}

	rows := Reconcile(categories, summaries, expenses)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	wantUtil := []float64{120, 60, 0}
	wantOver := []bool{true, false, true}
	for i, row := range rows {
		if row.Utilization != wantUtil[i] {
			t.Fatalf("row %d utilization: got %v, want %v", i, row.Utilization, wantUtil[i])
		}
		if row.OverBudget != wantOver[i] {
			t.Fatalf("row %d over_budget: got %v, want %v", i, row.OverBudget, wantOver[i])
		}
	}

	if rows[0].Remaining != -200 {
		t.Fatalf("remaining: got %v, want -200", rows[0].Remaining)
	}
	if rows[0].ExpenseID != 11 {
		t.Fatalf("expense id: got %d, want 11", rows[0].ExpenseID)
	}
}

func TestReconcile_ZeroAllocationNeverNaN(t *testing.T) {
	rows := Reconcile(nil, []models.ExpenseByCategorySummary{summary(1, "50", 0)}, nil)
	if rows[0].Utilization != 0 {
		t.Fatalf("allocated=0 must give utilization 0, got %v", rows[0].Utilization)
	}
	if !rows[0].OverBudget {
		t.Fatal("spent>0 with allocated=0 must be over budget")
	}
}

func TestReconcile_MalformedAmountDegradesToZero(t *testing.T) {
	rows := Reconcile(nil, []models.ExpenseByCategorySummary{summary(1, "n/a", 100)}, nil)
	if rows[0].Spent != 0 {
		t.Fatalf("malformed amount: got spent %v, want 0", rows[0].Spent)
	}
}

func TestReconcile_MissingCategoryNameFallsBackToID(t *testing.T) {
	rows := Reconcile(nil, []models.ExpenseByCategorySummary{summary(42, "10", 100)}, nil)
	if rows[0].CategoryName != "42" {
		t.Fatalf("missing name: got %q, want %q", rows[0].CategoryName, "42")
	}
}

func TestReconcile_NoExpenseMatchLeavesZeroID(t *testing.T) {
	rows := Reconcile(nil, []models.ExpenseByCategorySummary{summary(1, "10", 100)}, nil)
	if rows[0].ExpenseID != 0 {
		t.Fatalf("expected zero expense id, got %d", rows[0].ExpenseID)
	}
}

func TestReconcile_LastWriteWinsOnSharedCategory(t *testing.T) {
	expenses := []models.Expense{
		{ID: 7, CategoryID: 1},
		{ID: 9, CategoryID: 1},
	}
	rows := Reconcile(nil, []models.ExpenseByCategorySummary{summary(1, "10", 100)}, expenses)
	if rows[0].ExpenseID != 9 {
		t.Fatalf("expected last expense (9) to win, got %d", rows[0].ExpenseID)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	categories := []models.ExpenseCategory{{ID: 1, Name: "Rent"}}
	summaries := []models.ExpenseByCategorySummary{summary(1, "250.50", 400)}
	expenses := []models.Expense{{ID: 3, CategoryID: 1}}

	first := Reconcile(categories, summaries, expenses)
	second := Reconcile(categories, summaries, expenses)
	if len(first) != len(second) {
		t.Fatalf("row counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("row %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestValidateBudgetUpdate(t *testing.T) {
	if err := ValidateBudgetUpdate(999, 1000); err != ErrBudgetBelowSpent {
		t.Fatalf("expected ErrBudgetBelowSpent, got %v", err)
	}
	if err := ValidateBudgetUpdate(1000, 1000); err != nil {
		t.Fatalf("equal allocation must pass, got %v", err)
	}
	if err := ValidateBudgetUpdate(1500, 1000); err != nil {
		t.Fatalf("raising allocation must pass, got %v", err)
	}
}
