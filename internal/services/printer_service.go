package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"time"

	"optic-backend/internal/metrics"
	"optic-backend/internal/models"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/ean"
)

// PrinterService talks to the LAN label printer bridge. Labels carry the
// product name and a scannable EAN/UPC barcode.
type PrinterService struct {
	client  *http.Client
	baseURL string
}

type printLabelRequest struct {
	Line1      string `json:"line1"`
	BarcodePNG string `json:"barcode_png"` // Base64
	Copies     int    `json:"copies"`
}

type printResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PrintResult reports what a batch print actually did. Products without a
// valid barcode are skipped, not failed.
type PrintResult struct {
	Printed int      `json:"printed"`
	Skipped []string `json:"skipped,omitempty"` // Product names lacking a valid barcode
}

func NewPrinterService(baseURL string) *PrinterService {
	return &PrinterService{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// PrintLabels renders and prints one label per product copy. Products whose
// barcode is not a valid 12 or 13 digit code are collected in Skipped.
func (s *PrinterService) PrintLabels(products []*models.Product, copies int) (*PrintResult, error) {
	if copies < 1 {
		copies = 1
	}

	result := &PrintResult{}
	for _, product := range products {
		if !ValidBarcode(product.Barcode) {
			result.Skipped = append(result.Skipped, product.Name)
			continue
		}

		img, err := renderBarcode(product.Barcode)
		if err != nil {
			result.Skipped = append(result.Skipped, product.Name)
			continue
		}

		req := printLabelRequest{
			Line1:      product.Name,
			BarcodePNG: img,
			Copies:     copies,
		}
		if err := s.sendPrintRequest("/print-label", req); err != nil {
			return result, err
		}
		result.Printed += copies
		metrics.LabelsPrinted.Add(float64(copies))
	}
	return result, nil
}

// renderBarcode encodes a 12 digit code as UPC-A padded to EAN-13, and a 13
// digit code as EAN-13, returning a base64 PNG.
func renderBarcode(code string) (string, error) {
	if len(code) == 12 {
		code = "0" + code
	}

	bc, err := ean.Encode(code)
	if err != nil {
		return "", fmt.Errorf("failed to encode barcode: %w", err)
	}
	scaled, err := barcode.Scale(bc, 300, 120)
	if err != nil {
		return "", fmt.Errorf("failed to scale barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("failed to render barcode: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (s *PrinterService) sendPrintRequest(endpoint string, req printLabelRequest) error {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal print request: %w", err)
	}

	resp, err := s.client.Post(
		s.baseURL+endpoint,
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return fmt.Errorf("failed to send print request: %w", err)
	}
	defer resp.Body.Close()

	var printResp printResponse
	if err := json.NewDecoder(resp.Body).Decode(&printResp); err != nil {
		return fmt.Errorf("failed to decode print response: %w", err)
	}
	if !printResp.Success {
		return fmt.Errorf("print failed: %s", printResp.Message)
	}
	return nil
}
