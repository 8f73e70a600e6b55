package services

import (
	"strings"
	"testing"
	"time"

	"optic-backend/internal/models"
	"optic-backend/internal/timeutil"
)

func TestExportCSV_HeaderAndRows(t *testing.T) {
	created := time.Date(2025, 3, 10, 9, 30, 0, 0, timeutil.IST)
	employees := []*models.Employee{
		{FirstName: "Asha", LastName: "Verma", Email: "asha@shop.in", Phone: "9876543210", Role: models.RoleAdmin, CreatedAt: created},
		{FirstName: "Ravi", Email: "ravi@shop.in", Phone: "9876500000", Role: models.RoleStaff, CreatedAt: created},
	}

	data, err := exportCSV(employees)
	if err != nil {
		t.Fatalf("exportCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Name,Email,Phone,Role,Created At" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Asha Verma,asha@shop.in,") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	// Single-name employees must not carry a trailing space.
	if !strings.HasPrefix(lines[2], "Ravi,") {
		t.Fatalf("unexpected second row: %q", lines[2])
	}
}

func TestExportCSV_QuotesCommas(t *testing.T) {
	employees := []*models.Employee{
		{FirstName: "Verma, Asha", Email: "asha@shop.in", Role: models.RoleOwner},
	}

	data, err := exportCSV(employees)
	if err != nil {
		t.Fatalf("exportCSV: %v", err)
	}
	if !strings.Contains(string(data), `"Verma, Asha"`) {
		t.Fatalf("comma in name must be quoted, got: %s", data)
	}
}

func TestExportRow_UsesISTTimestamps(t *testing.T) {
	// 02:00 UTC is 07:30 in IST.
	e := &models.Employee{
		FirstName: "Asha",
		Role:      models.RoleStaff,
		CreatedAt: time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC),
	}

	row := exportRow(e)
	if len(row) != len(exportHeader) {
		t.Fatalf("row width %d does not match header width %d", len(row), len(exportHeader))
	}
	if !strings.Contains(row[4], "07:30") {
		t.Fatalf("created-at should render in IST, got %q", row[4])
	}
}
