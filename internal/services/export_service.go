package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"optic-backend/internal/models"
	"optic-backend/internal/repositories"
	"optic-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/xuri/excelize/v2"
)

// ExportFormat selects the staff roster output encoding.
type ExportFormat string

const (
	FormatJSON  ExportFormat = "json"
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "xlsx"
	FormatPDF   ExportFormat = "pdf"
)

// exportHeader is the fixed column set every roster format shares.
var exportHeader = []string{"Name", "Email", "Phone", "Role", "Created At"}

type ExportService struct {
	employeeRepo *repositories.EmployeeRepository
}

func NewExportService(employeeRepo *repositories.EmployeeRepository) *ExportService {
	return &ExportService{employeeRepo: employeeRepo}
}

// Export renders the staff roster in the requested format and returns the
// payload with its content type.
func (s *ExportService) Export(ctx context.Context, format ExportFormat) ([]byte, string, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, "", err
	}
	for _, e := range employees {
		e.Role = models.NormalizeRole(string(e.Role))
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(employees, "", "  ")
		return data, "application/json", err
	case FormatCSV:
		data, err := exportCSV(employees)
		return data, "text/csv", err
	case FormatExcel:
		data, err := exportExcel(employees)
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	case FormatPDF:
		data, err := exportPDF(employees)
		return data, "application/pdf", err
	}
	return nil, "", fmt.Errorf("unsupported export format: %s", format)
}

func exportRow(e *models.Employee) []string {
	return []string{
		e.Name(),
		e.Email,
		e.Phone,
		string(e.Role),
		timeutil.ToIST(e.CreatedAt).Format(timeutil.DateTimeLayout),
	}
}

// exportCSV writes the roster with every field quoted, so names and
// addresses containing commas survive a round trip through spreadsheets.
func exportCSV(employees []*models.Employee) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, e := range employees {
		if err := w.Write(exportRow(e)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportExcel(employees []*models.Employee) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Employees"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for row, e := range employees {
		for col, value := range exportRow(e) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportPDF(employees []*models.Employee) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Employee Roster")
	pdf.Ln(12)

	widths := []float64{60, 80, 40, 30, 60}

	pdf.SetFont("Arial", "B", 10)
	for i, title := range exportHeader {
		pdf.CellFormat(widths[i], 8, title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, e := range employees {
		for i, value := range exportRow(e) {
			pdf.CellFormat(widths[i], 8, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
