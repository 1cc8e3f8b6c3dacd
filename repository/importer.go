package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/extrame/xls"

	"debt-payoff/domain"
)

// maxXLSRows bounds how much of a spreadsheet is read.
const maxXLSRows = 1000

var headerAliases = map[string]string{
	"id":          "id",
	"name":        "name",
	"debt":        "name",
	"balance":     "balance",
	"amount":      "balance",
	"apr":         "apr",
	"rate":        "apr",
	"interest":    "apr",
	"min_payment": "min_payment",
	"minpayment":  "min_payment",
	"min payment": "min_payment",
	"minimum":     "min_payment",
	"due_day":     "due_day",
	"due day":     "due_day",
	"dueday":      "due_day",
	"include":     "include",
	"category":    "category",
	"notes":       "notes",
}

// ImportCSV reads debt rows from a CSV file with a header line. Values are
// returned unparsed; normalization happens in the service layer.
func ImportCSV(r io.Reader) ([]domain.RawDebt, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	var lines []int
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading csv record: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, record)
		lines = append(lines, line)
	}
	return rowsToRawDebts(rows, lines)
}

// ImportXLS reads debt rows from the first sheet of a legacy Excel workbook.
func ImportXLS(r io.ReadSeeker) ([]domain.RawDebt, error) {
	workbook, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}

	rows := workbook.ReadAllCells(maxXLSRows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in sheet")
	}
	lines := make([]int, len(rows))
	for i := range lines {
		lines[i] = i + 1
	}
	return rowsToRawDebts(rows, lines)
}

// rowsToRawDebts maps columns by header name. lines holds the source line of
// every row and is used to report errors against the original file.
func rowsToRawDebts(rows [][]string, lines []int) ([]domain.RawDebt, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header row", domain.ErrInvalidInput)
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(header))
		if field, ok := headerAliases[key]; ok {
			if _, dup := columns[field]; !dup {
				columns[field] = i
			}
		}
	}
	for _, required := range []string{"name", "balance"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing %q column", domain.ErrInvalidInput, required)
		}
	}

	cell := func(row []string, field string) string {
		i, ok := columns[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	debts := make([]domain.RawDebt, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		debts = append(debts, domain.RawDebt{
			Row:        lines[n+1],
			ID:         cell(row, "id"),
			Name:       cell(row, "name"),
			Balance:    cell(row, "balance"),
			APR:        cell(row, "apr"),
			MinPayment: cell(row, "min_payment"),
			DueDay:     cell(row, "due_day"),
			Include:    cell(row, "include"),
			Category:   cell(row, "category"),
			Notes:      cell(row, "notes"),
		})
	}
	return debts, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
