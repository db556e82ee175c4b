package report

import (
	"strconv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"badminton/internal/application/projections"
	"badminton/internal/domain/billing"
)

func sampleSummary() projections.MonthlySummary {
	return projections.MonthlySummary{
		Period:    "2025-06",
		MonthName: "June",
		Rows: []projections.SummaryRow{
			{Player: "Alice", MonthName: "June", AttendedCount: 4, Tier: billing.TierRegular, Rate: 10, Amount: 40},
			{Player: "Bob <b>", MonthName: "June", AttendedCount: 1, Tier: billing.TierCasual, Rate: 3, Amount: 3},
		},
		TotalRevenue:  43,
		FeeConfigured: true,
		RegularRate:   10,
		CasualRate:    3,
	}
}

// TestStatementHTML verifies the table, the total and escaping of names.
func TestStatementHTML(t *testing.T) {
	out, err := StatementHTML(sampleSummary())
	if err != nil {
		t.Fatalf("StatementHTML: %v", err)
	}
	html := string(out)

	for _, want := range []string{"<table>", "<h1>Bills for June 2025</h1>", "<td>Alice</td>", "40.00", "Total revenue: 43.00", "Regular"} {
		if !strings.Contains(html, want) {
			t.Errorf("statement missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<b>") {
		t.Errorf("player name markup leaked into HTML:\n%s", html)
	}
}

// TestStatementMarkdown_Unconfigured verifies the zero-fee notice and the empty case.
func TestStatementMarkdown_Unconfigured(t *testing.T) {
	s := projections.MonthlySummary{Period: "2025-07", MonthName: "July", Rows: []projections.SummaryRow{}}
	md := StatementMarkdown(s)
	if !strings.Contains(md, "No fee schedule") {
		t.Errorf("missing unconfigured notice:\n%s", md)
	}
	if !strings.Contains(md, "Nobody attended") {
		t.Errorf("missing empty notice:\n%s", md)
	}
}

// TestEscapeCell verifies pipes cannot split a table row.
func TestEscapeCell(t *testing.T) {
	if got := escapeCell("A|B"); got != `A\|B` {
		t.Errorf("escapeCell = %q", got)
	}
	if got := escapeCell("line\nbreak"); got != "line break" {
		t.Errorf("escapeCell newline = %q", got)
	}
}

// TestWorkbook verifies both sheets carry the summary rows.
func TestWorkbook(t *testing.T) {
	sheet := projections.AttendanceSheetResult{
		Period: "2025-06",
		Labels: [5]string{"Week 1", "Holiday", "Week 3", "Week 4", "Week 5"},
		Rows: []projections.SheetRow{
			{Player: "Alice", Weeks: [5]bool{true, true, true, true, false}},
			{Player: "Bob <b>", Weeks: [5]bool{false, true, false, false, false}},
		},
	}

	buf, name, err := Workbook(sampleSummary(), sheet)
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	if name != "bills_2025-06.xlsx" {
		t.Errorf("file name = %q", name)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != BillsSheet || got[1] != AttendanceSheet {
		t.Errorf("sheets = %v", got)
	}

	checks := []struct {
		sheet, cell, want string
	}{
		{BillsSheet, "A1", "Player"},
		{BillsSheet, "A2", "Alice"},
		{BillsSheet, "D2", "Regular"},
		{BillsSheet, "A3", "Bob <b>"},
		{BillsSheet, "D3", "Casual"},
		{BillsSheet, "A4", "Total"},
		{AttendanceSheet, "C1", "Holiday"},
		{AttendanceSheet, "B2", "x"},
		{AttendanceSheet, "F2", ""},
		{AttendanceSheet, "C3", "x"},
	}
	for _, c := range checks {
		got, err := f.GetCellValue(c.sheet, c.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s): %v", c.sheet, c.cell, err)
		}
		if got != c.want {
			t.Errorf("%s!%s = %q, want %q", c.sheet, c.cell, got, c.want)
		}
	}

	raw, err := f.GetCellValue(BillsSheet, "F4", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetCellValue total: %v", err)
	}
	if total, err := strconv.ParseFloat(raw, 64); err != nil || total != 43 {
		t.Errorf("total = %q, want 43", raw)
	}
}
