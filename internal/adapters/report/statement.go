// Package report renders monthly bills for people: an HTML statement and an xlsx workbook.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"badminton/internal/application/projections"
	"badminton/internal/domain/billing"
)

// mdRenderer is a goldmark instance with GFM tables.
// Raw HTML in player names is escaped because WithUnsafe is not set.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// StatementMarkdown writes the monthly bill as a Markdown document.
// POST: One table row per summary row followed by the revenue total
func StatementMarkdown(s projections.MonthlySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Bills for %s %s\n\n", s.MonthName, yearOf(s.Period))
	if !s.FeeConfigured {
		b.WriteString("_No fee schedule is configured for this month; amounts are zero._\n\n")
	} else {
		fmt.Fprintf(&b, "Regular rate **%s** per session (%d or more sessions), casual rate **%s**.\n\n",
			money(s.RegularRate), billing.RegularThreshold, money(s.CasualRate))
	}

	if len(s.Rows) == 0 {
		b.WriteString("Nobody attended this month.\n")
		return b.String()
	}

	b.WriteString("| Player | Sessions | Tier | Rate | Amount |\n")
	b.WriteString("|---|---:|---|---:|---:|\n")
	for _, r := range s.Rows {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n",
			escapeCell(r.Player), r.AttendedCount, r.Tier, money(r.Rate), money(r.Amount))
	}
	fmt.Fprintf(&b, "\n**Total revenue: %s**\n", money(s.TotalRevenue))
	return b.String()
}

// StatementHTML renders StatementMarkdown through goldmark.
func StatementHTML(s projections.MonthlySummary) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(StatementMarkdown(s)), &buf); err != nil {
		return nil, fmt.Errorf("render statement: %w", err)
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", billing.RoundCents(v))
}

func yearOf(period string) string {
	year, _, _ := strings.Cut(period, "-")
	return year
}

// escapeCell keeps a name from breaking out of its table cell or adding emphasis.
func escapeCell(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '|', '\\', '*', '_', '`', '[', ']', '<', '>', '#':
			b.WriteByte('\\')
		case '\n', '\r':
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}
