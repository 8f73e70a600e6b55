// Package budget merges category definitions, per-category spend rollups,
// and raw expense records into the rows the budget table renders. All
// functions are pure; malformed upstream data degrades to zero values
// instead of failing the whole table.
package budget

import (
	"errors"
	"strconv"

	"optic-backend/internal/models"
)

// ErrBudgetBelowSpent rejects shrinking an allocation under money already
// spent.
var ErrBudgetBelowSpent = errors.New("budget cannot be set below the amount already spent")

// Row is one reconciled budget table line.
type Row struct {
	CategoryID   int     `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Allocated    float64 `json:"allocated"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
	Utilization  float64 `json:"utilization"` // Percent; 0 when nothing is allocated
	OverBudget   bool    `json:"over_budget"`
	// ExpenseID is the editable expense behind this category. Zero means no
	// raw expense matched and the row has no edit target.
	ExpenseID int `json:"expense_id"`
}

// Reconcile builds one row per category summary.
//
// The expense lookup is last-write-wins: when several expenses share a
// category, the latest scanned record supplies the edit target. Categories
// conceptually hold many expenses, so this is a known ambiguity kept
// deliberately; see DESIGN.md before "fixing" it.
func Reconcile(
	categories []models.ExpenseCategory,
	summaries []models.ExpenseByCategorySummary,
	expenses []models.Expense,
) []Row {
	nameByCategory := make(map[int]string, len(categories))
	for _, c := range categories {
		nameByCategory[c.ID] = c.Name
	}

	expenseByCategory := make(map[int]int, len(expenses))
	for _, e := range expenses {
		expenseByCategory[e.CategoryID] = e.ID
	}

	rows := make([]Row, 0, len(summaries))
	for _, s := range summaries {
		name, ok := nameByCategory[s.CategoryID]
		if !ok {
			// Keep the row renderable even when the reference set is stale.
			name = strconv.Itoa(s.CategoryID)
		}

		allocated := s.Budget
		spent := coerceAmount(s.Amount.String())

		rows = append(rows, Row{
			CategoryID:   s.CategoryID,
			CategoryName: name,
			Allocated:    allocated,
			Spent:        spent,
			Remaining:    allocated - spent,
			Utilization:  utilization(spent, allocated),
			OverBudget:   spent > allocated,
			ExpenseID:    expenseByCategory[s.CategoryID],
		})
	}
	return rows
}

// ValidateBudgetUpdate enforces the hard invariant that an allocation can
// never drop below money already spent.
func ValidateBudgetUpdate(newAllocated, spent float64) error {
	if newAllocated < spent {
		return ErrBudgetBelowSpent
	}
	return nil
}

func utilization(spent, allocated float64) float64 {
	if allocated == 0 {
		return 0
	}
	return spent / allocated * 100
}

// coerceAmount parses a string-or-number amount, defaulting to 0 on any
// failure so a bad rollup field never takes the table down.
func coerceAmount(raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
