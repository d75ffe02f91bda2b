package importer

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"inventory/internal/models"

	"github.com/xuri/excelize/v2"
)

// ParseFile reads product payloads from the spreadsheet at path.
func ParseFile(path string) ([]models.AddProductRequest, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", path, err)
	}
	defer f.Close()

	return parseWorkbook(f)
}

// ParseProducts reads product payloads from a spreadsheet stream.
func ParseProducts(r io.Reader) ([]models.AddProductRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	return parseWorkbook(f)
}

// parseWorkbook maps the header row of the first sheet onto product fields.
// Cells that do not parse leave the field unset so the store reports it.
func parseWorkbook(f *excelize.File) ([]models.AddProductRequest, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	columns := mapColumns(rows[0])
	for _, required := range []string{"id", "name"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("spreadsheet header has no %q column", required)
		}
	}

	var products []models.AddProductRequest
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		req := models.AddProductRequest{
			ID:       cell(row, columns, "id"),
			Name:     cell(row, columns, "name"),
			Category: cell(row, columns, "category"),
		}
		if raw := cell(row, columns, "price"); raw != "" {
			if price, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64); err == nil {
				req.Price = &price
			} else {
				log.Printf("importer: row %d: unreadable price %q", i+2, raw)
			}
		}
		if raw := cell(row, columns, "stock"); raw != "" {
			if stock, err := strconv.Atoi(raw); err == nil {
				req.Stock = &stock
			} else {
				log.Printf("importer: row %d: unreadable stock %q", i+2, raw)
			}
		}
		products = append(products, req)
	}
	return products, nil
}

func mapColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		switch key {
		case "id", "name", "price", "category", "stock":
			if _, seen := columns[key]; !seen {
				columns[key] = i
			}
		}
	}
	return columns
}

func cell(row []string, columns map[string]int, key string) string {
	i, ok := columns[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
