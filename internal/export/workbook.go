package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cloud-ru/mcp-emi-go/internal/calculations"
)

const (
	SummarySheet  = "Summary"
	ScheduleSheet = "Amortization Schedule"

	currencyFormat = "₹#,##0.00"
)

// WriteWorkbook пишет XLSX с двумя листами: сводка по кредиту и график платежей
func WriteWorkbook(w io.Writer, in calculations.LoanInput, result *calculations.CalculationResult) error {
	if err := checkResult(result); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ScheduleSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(currencyFormat)})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	if err := writeSummarySheet(f, in, result.Summary, currency, bold); err != nil {
		return err
	}
	if err := writeScheduleSheet(f, result.Schedule, currency, bold); err != nil {
		return err
	}

	return f.Write(w)
}

func writeSummarySheet(f *excelize.File, in calculations.LoanInput, s calculations.LoanSummary, currency, bold int) error {
	row := 1
	writeHeading := func(title string) error {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(SummarySheet, cell, title); err != nil {
			return err
		}
		if err := f.SetCellStyle(SummarySheet, cell, cell, bold); err != nil {
			return err
		}
		row += 2
		return nil
	}
	writeLines := func(lines []summaryLine) error {
		for _, l := range lines {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(SummarySheet, cell, &[]interface{}{l.Label, l.Value}); err != nil {
				return err
			}
			if l.Unit == unitCurrency {
				valueCell, _ := excelize.CoordinatesToCellName(2, row)
				if err := f.SetCellStyle(SummarySheet, valueCell, valueCell, currency); err != nil {
					return err
				}
			}
			row++
		}
		return nil
	}

	if err := writeHeading("Loan Details Summary"); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if err := writeLines(loanDetailLines(in, s)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	row++
	if err := writeHeading("Calculated Summary"); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if err := writeLines(calculatedLines(s)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if err := f.SetColWidth(SummarySheet, "A", "A", 30); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "B", "B", 20)
}

func writeScheduleSheet(f *excelize.File, schedule []calculations.ScheduleEntry, currency, bold int) error {
	header := make([]interface{}, len(scheduleColumns))
	for i, c := range scheduleColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(ScheduleSheet, "A1", &header); err != nil {
		return fmt.Errorf("write schedule header: %w", err)
	}
	if err := f.SetCellStyle(ScheduleSheet, "A1", "G1", bold); err != nil {
		return err
	}

	for i, e := range schedule {
		row := []interface{}{e.Month}
		for _, v := range scheduleValues(e) {
			row = append(row, v)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ScheduleSheet, cell, &row); err != nil {
			return fmt.Errorf("write schedule month %d: %w", e.Month, err)
		}
	}

	lastCell, _ := excelize.CoordinatesToCellName(len(scheduleColumns), len(schedule)+1)
	if err := f.SetCellStyle(ScheduleSheet, "B2", lastCell, currency); err != nil {
		return err
	}

	if err := f.SetColWidth(ScheduleSheet, "A", "A", 8); err != nil {
		return err
	}
	return f.SetColWidth(ScheduleSheet, "B", "G", 20)
}

func strPtr(s string) *string {
	return &s
}
