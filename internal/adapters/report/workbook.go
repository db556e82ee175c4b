package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"badminton/internal/application/projections"
)

// Sheet names in the bill workbook.
const (
	BillsSheet      = "Bills"
	AttendanceSheet = "Attendance"
)

// WorkbookMediaType is the content type of the xlsx export.
const WorkbookMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook writes the monthly bills and the attendance grid to an xlsx file.
// PRE: summary and sheet describe the same period
// POST: Returns the workbook bytes and a suggested file name
func Workbook(summary projections.MonthlySummary, sheet projections.AttendanceSheetResult) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(BillsSheet)
	if err != nil {
		return nil, "", fmt.Errorf("create bills sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, "", fmt.Errorf("create money style: %w", err)
	}

	if err := writeBills(f, summary, headerStyle, moneyStyle); err != nil {
		return nil, "", err
	}
	if err := writeAttendance(f, sheet, headerStyle); err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}
	return buf, fmt.Sprintf("bills_%s.xlsx", summary.Period), nil
}

func writeBills(f *excelize.File, s projections.MonthlySummary, headerStyle, moneyStyle int) error {
	headers := []any{"Player", "Month", "Sessions", "Tier", "Rate", "Amount"}
	if err := f.SetSheetRow(BillsSheet, "A1", &headers); err != nil {
		return fmt.Errorf("write bill headers: %w", err)
	}
	f.SetCellStyle(BillsSheet, "A1", "F1", headerStyle)
	f.SetColWidth(BillsSheet, "A", "A", 24)
	f.SetColWidth(BillsSheet, "B", "F", 12)

	row := 2
	for _, r := range s.Rows {
		values := []any{r.Player, r.MonthName, r.AttendedCount, string(r.Tier), r.Rate, r.Amount}
		if err := f.SetSheetRow(BillsSheet, cell("A", row), &values); err != nil {
			return fmt.Errorf("write bill row %d: %w", row, err)
		}
		row++
	}
	f.SetCellStyle(BillsSheet, "E2", cell("F", row), moneyStyle)

	f.SetCellValue(BillsSheet, cell("A", row), "Total")
	f.SetCellValue(BillsSheet, cell("F", row), s.TotalRevenue)
	return nil
}

func writeAttendance(f *excelize.File, s projections.AttendanceSheetResult, headerStyle int) error {
	if _, err := f.NewSheet(AttendanceSheet); err != nil {
		return fmt.Errorf("create attendance sheet: %w", err)
	}

	headers := []any{"Player"}
	for _, l := range s.Labels {
		headers = append(headers, l)
	}
	if err := f.SetSheetRow(AttendanceSheet, "A1", &headers); err != nil {
		return fmt.Errorf("write attendance headers: %w", err)
	}
	f.SetCellStyle(AttendanceSheet, "A1", cell(colName(len(headers)-1), 1), headerStyle)
	f.SetColWidth(AttendanceSheet, "A", "A", 24)

	for i, r := range s.Rows {
		values := []any{r.Player}
		for _, attended := range r.Weeks {
			mark := ""
			if attended {
				mark = "x"
			}
			values = append(values, mark)
		}
		if err := f.SetSheetRow(AttendanceSheet, cell("A", i+2), &values); err != nil {
			return fmt.Errorf("write attendance row %d: %w", i+2, err)
		}
	}
	return nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
