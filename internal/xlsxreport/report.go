// =============================================================================
// Transaction Converter - XLSX Report
// =============================================================================
//
// This module writes decoded transactions to a spreadsheet for review and
// reads such a spreadsheet back.
//
// SHEET LAYOUT:
//   - Sheet name: "Transactions"
//   - Row 1: the canonical field names, bold
//   - Row 2 onward: one transaction per row, fields in canonical order
//
// Every cell is written as text. Spreadsheet numbers are doubles and would
// round 64-bit identifiers and amounts. Descriptions are stored without the
// surrounding quotes.
//
// =============================================================================

package xlsxreport

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/tx-converter/internal/types"
	"github.com/ginjaninja78/tx-converter/internal/validation"
)

// SheetName is the worksheet holding the transactions.
const SheetName = "Transactions"

// columnWidth is applied to every report column.
const columnWidth = 18

// =============================================================================
// WRITING
// =============================================================================

// WriteReport creates an XLSX workbook at path holding txs.
//
// PARAMETERS:
//   - path: The output file. An existing file is replaced.
//   - txs: The transactions, written in order.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func WriteReport(path string, txs []types.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, 0, types.FieldCount)
	for _, field := range types.Fields() {
		header = append(header, field.String())
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	lastColumn, err := excelize.ColumnNumberToName(types.FieldCount)
	if err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastColumn+"1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", lastColumn, columnWidth); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	for i, tx := range txs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := make([]interface{}, 0, types.FieldCount)
		for _, field := range types.Fields() {
			row = append(row, types.FieldValue(tx, field))
		}

		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write transaction %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// =============================================================================
// READING
// =============================================================================

// ReadReport loads the transactions from a workbook written by WriteReport.
// Empty rows are skipped.
func ReadReport(path string) ([]types.Transaction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	index, err := f.GetSheetIndex(SheetName)
	if err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, fmt.Errorf("sheet %q not found", SheetName)
	}

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 || !isHeader(rows[0]) {
		return nil, fmt.Errorf("sheet %q does not start with the transaction header", SheetName)
	}

	var transactions []types.Transaction
	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		tx, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func isHeader(row []string) bool {
	if len(row) != types.FieldCount {
		return false
	}
	for i, field := range types.Fields() {
		if row[i] != field.String() {
			return false
		}
	}
	return true
}

// parseRow converts one sheet row. Trailing empty cells are dropped by
// excelize, so a short row is padded.
func parseRow(row []string) (types.Transaction, error) {
	var tx types.Transaction

	if len(row) > types.FieldCount {
		return tx, fmt.Errorf("got %d cells, want %d", len(row), types.FieldCount)
	}
	cells := make([]string, types.FieldCount)
	copy(cells, row)

	for i, field := range types.Fields() {
		value := cells[i]
		if field == types.FieldDescription {
			value = validation.QuoteDescription(value)
		}
		if err := validation.ParseValue(&tx, field, value); err != nil {
			return tx, fmt.Errorf("field %s: %w", field, err)
		}
	}

	return tx, nil
}
