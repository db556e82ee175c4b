package web

import (
	"mime"
	"net/http"
	"strconv"

	"badminton/internal/adapters/report"
	"badminton/internal/application/projections"
)

func (srv *server) summaryDeps() projections.MonthlySummaryDeps {
	return projections.MonthlySummaryDeps{
		PlayerStore:     srv.stores.PlayerStore,
		FeeStore:        srv.stores.FeeStore,
		AttendanceStore: srv.stores.AttendanceStore,
	}
}

// handleSummary handles GET /api/summary.
func (srv *server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	summary, err := projections.QueryMonthlySummary(r.Context(), projections.MonthlySummaryQuery{Period: srv.periodParam(r)}, srv.summaryDeps())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleBillStatement handles GET /api/bills/statement.
// Responds 404 when the period has no fee schedule.
func (srv *server) handleBillStatement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	summary, err := projections.QueryMonthlySummary(r.Context(), projections.MonthlySummaryQuery{
		Period:             srv.periodParam(r),
		RequireFeeSchedule: true,
	}, srv.summaryDeps())
	if err != nil {
		writeError(w, err)
		return
	}

	html, err := report.StatementHTML(summary)
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// handleBillExport handles GET /api/bills/export.
// Responds 404 when the period has no fee schedule.
func (srv *server) handleBillExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	ctx := r.Context()
	p := srv.periodParam(r)

	summary, err := projections.QueryMonthlySummary(ctx, projections.MonthlySummaryQuery{Period: p, RequireFeeSchedule: true}, srv.summaryDeps())
	if err != nil {
		writeError(w, err)
		return
	}
	sheet, err := projections.QueryAttendanceSheet(ctx, projections.AttendanceSheetQuery{Period: p}, srv.sheetDeps())
	if err != nil {
		writeError(w, err)
		return
	}

	buf, name, err := report.Workbook(summary, sheet)
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", report.WorkbookMediaType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	buf.WriteTo(w)
}
