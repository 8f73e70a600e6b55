package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"optic-backend/internal/budget"
	"optic-backend/internal/listing"
	"optic-backend/internal/models"
	"optic-backend/internal/payments"
	"optic-backend/internal/services"
	"optic-backend/internal/timeutil"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
)

// listParams reads the shared list query parameters: q, from, to, sort,
// dir, page, page_size. Dates are bare YYYY-MM-DD values in IST; "to" is
// inclusive of its whole day.
func listParams(r *http.Request) listing.Params {
	q := r.URL.Query()

	params := listing.Params{
		Query:     q.Get("q"),
		SortField: q.Get("sort"),
		SortDir:   listing.Asc,
		Page:      1,
		PageSize:  0,
	}
	if q.Get("dir") == "desc" {
		params.SortDir = listing.Desc
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		params.Page = page
	}
	if size, err := strconv.Atoi(q.Get("page_size")); err == nil {
		params.PageSize = size
	}
	if from, err := timeutil.ParseDate(q.Get("from")); err == nil {
		params.From = &from
	}
	if to, err := timeutil.ParseDate(q.Get("to")); err == nil {
		end := timeutil.EndOfDay(to)
		params.To = &end
	}
	return params
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// writeServiceError maps service errors onto HTTP statuses: missing rows
// become 404, validation failures 400, everything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		http.Error(w, "Not found", http.StatusNotFound)
	case isValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func isValidationError(err error) bool {
	for _, known := range []error{
		services.ErrEmailTaken,
		services.ErrSKUTaken,
		services.ErrInvalidBarcode,
		services.ErrInsufficientStock,
		services.ErrExpiryBeforeDate,
		services.ErrExpenseNotApproved,
		payments.ErrNonPositiveAmount,
		payments.ErrExceedsRemaining,
		budget.ErrBudgetBelowSpent,
		models.ErrOrderTerminal,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
