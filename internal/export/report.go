package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/cloud-ru/mcp-emi-go/internal/calculations"
)

const (
	reportMargin   = 14.0
	reportFont     = "Helvetica"
	rowHeight      = 6.0
	footerReserved = 16.0
	disclaimer     = "This is a computer-generated schedule for illustrative purposes only."
)

// ширины колонок графика, в сумме ширина A4 без полей
var columnWidths = []float64{16, 27, 27, 28, 28, 28, 28}

// WriteReport пишет PDF-отчет: сводку по кредиту и помесячный график с итогами
func WriteReport(w io.Writer, in calculations.LoanInput, result *calculations.CalculationResult, generatedAt time.Time) error {
	if err := checkResult(result); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(reportMargin, reportMargin, reportMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pageW, pageH := pdf.GetPageSize()

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		y := pdf.GetY()
		pdf.SetFont(reportFont, "", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 4, disclaimer, "", 0, "C", false, 0, "")
		pdf.SetXY(reportMargin, y)
		pdf.CellFormat(0, 4, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	drawTitle(pdf, pageW, generatedAt)

	// две таблицы сводки рядом
	tableW := (pageW - reportMargin*2.5) / 2
	top := reportMargin + 34
	pdf.SetFont(reportFont, "B", 12)
	pdf.SetTextColor(48, 59, 77)
	pdf.Text(reportMargin, top-4, "Loan Details Summary")

	leftBottom := drawSummaryTable(pdf, reportMargin, top, tableW, loanDetailLines(in, result.Summary))
	rightBottom := drawSummaryTable(pdf, reportMargin+tableW+reportMargin/2, top, tableW, calculatedLines(result.Summary))

	pdf.SetY(max(leftBottom, rightBottom) + 12)
	drawScheduleHeader(pdf, in.TaxRatePercent)

	pdf.SetFont(reportFont, "", 8)
	for _, e := range result.Schedule {
		if pdf.GetY()+rowHeight > pageH-footerReserved {
			pdf.AddPage()
			drawScheduleHeader(pdf, in.TaxRatePercent)
			pdf.SetFont(reportFont, "", 8)
		}
		cells := []string{strconv.Itoa(e.Month)}
		for _, v := range scheduleValues(e) {
			cells = append(cells, FormatAmount(v))
		}
		drawRow(pdf, cells, false)
	}

	if pdf.GetY()+rowHeight > pageH-footerReserved {
		pdf.AddPage()
	}
	s := result.Summary
	pdf.SetFont(reportFont, "B", 8)
	pdf.SetFillColor(241, 245, 249)
	drawRow(pdf, []string{
		"Totals",
		FormatAmount(s.Principal),
		FormatAmount(s.TotalInterest),
		FormatAmount(s.TotalTax),
		FormatAmount(s.ProcessingFee),
		FormatAmount(s.TotalPayable),
		"",
	}, true)

	return pdf.Output(w)
}

func drawTitle(pdf *fpdf.Fpdf, pageW float64, generatedAt time.Time) {
	pdf.SetFont(reportFont, "B", 18)
	pdf.SetTextColor(15, 23, 42)
	pdf.Text(reportMargin, reportMargin+9, "Amortization Schedule")

	pdf.SetFont(reportFont, "", 10)
	pdf.SetTextColor(100, 116, 139)
	pdf.SetXY(reportMargin, reportMargin+5)
	pdf.CellFormat(0, 5, "Generated on: "+generatedAt.Format("02 Jan 2006"), "", 0, "R", false, 0, "")

	pdf.SetDrawColor(226, 232, 240)
	pdf.Line(reportMargin, reportMargin+18, pageW-reportMargin, reportMargin+18)
}

// drawSummaryTable рисует таблицу "название - значение" и возвращает ее нижнюю границу
func drawSummaryTable(pdf *fpdf.Fpdf, x, y, width float64, lines []summaryLine) float64 {
	pdf.SetDrawColor(203, 213, 225)
	pdf.SetTextColor(48, 59, 77)
	labelW := width * 0.55

	for i, l := range lines {
		pdf.SetXY(x, y+float64(i)*rowHeight)
		pdf.SetFont(reportFont, "B", 9)
		pdf.CellFormat(labelW, rowHeight, l.Label, "1", 0, "L", false, 0, "")
		style := ""
		if l.Bold {
			style = "B"
		}
		pdf.SetFont(reportFont, style, 9)
		pdf.CellFormat(width-labelW, rowHeight, formatLine(l), "1", 0, "R", false, 0, "")
	}
	return y + float64(len(lines))*rowHeight
}

func formatLine(l summaryLine) string {
	switch l.Unit {
	case unitPercent:
		return formatPercent(l.Value) + "%"
	case unitMonths:
		return fmt.Sprintf("%d months", int(l.Value))
	default:
		return FormatAmount(l.Value) + " INR"
	}
}

func drawScheduleHeader(pdf *fpdf.Fpdf, taxRatePercent float64) {
	headers := make([]string, len(scheduleColumns))
	for i, c := range scheduleColumns {
		switch {
		case i == 0:
			headers[i] = c
		case c == "Tax":
			headers[i] = fmt.Sprintf("Tax (%s%%) (INR)", formatPercent(taxRatePercent))
		default:
			headers[i] = c + " (INR)"
		}
	}

	pdf.SetFont(reportFont, "B", 7)
	pdf.SetFillColor(30, 64, 175)
	pdf.SetTextColor(255, 255, 255)
	drawRow(pdf, headers, true)
	pdf.SetTextColor(48, 59, 77)
}

func drawRow(pdf *fpdf.Fpdf, cells []string, fill bool) {
	pdf.SetX(reportMargin)
	for i, c := range cells {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(columnWidths[i], rowHeight, c, "1", 0, align, fill, 0, "")
	}
	pdf.Ln(rowHeight)
}
