package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"badminton/internal/application/listutil"
	"badminton/internal/application/orchestrators"
	"badminton/internal/application/projections"
	"badminton/internal/domain/fee"
	"badminton/internal/domain/ledger"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// writeError maps ledger errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ledger.ErrDuplicateKey), errors.Is(err, ledger.ErrReferentialIntegrity):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		internalError(w, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode_error", "error", err.Error())
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// decodeBody reads a bounded JSON body into v.
// POST: Malformed or oversized bodies yield ledger.ErrValidation; an empty body leaves v untouched when allowEmpty
func decodeBody(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := strictDecode(r, v)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	if err != nil {
		return ledger.Validationf("invalid request body: %v", err)
	}
	return nil
}

// periodParam returns ?period=, defaulting to the navigator's period.
func (srv *server) periodParam(r *http.Request) string {
	if p := strings.TrimSpace(r.URL.Query().Get("period")); p != "" {
		return p
	}
	return srv.nav.Period().String()
}

// periodOrActive defaults a body period to the navigator's period.
func (srv *server) periodOrActive(p string) string {
	if strings.TrimSpace(p) == "" {
		return srv.nav.Period().String()
	}
	return p
}

// weekParam returns ?week=, defaulting to the navigator's week.
func (srv *server) weekParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("week"))
	if raw == "" {
		return srv.nav.Week(), nil
	}
	week, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ledger.Validationf("week %q is not a number", raw)
	}
	return week, nil
}

// --- players ---

type addPlayerRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type removePlayerRequest struct {
	Name string `json:"name"`
}

type removePlayerResponse struct {
	Name              string `json:"name"`
	AttendanceRemoved int    `json:"attendanceRemoved"`
}

// handleGetPlayers handles GET /api/getPlayers.
func (srv *server) handleGetPlayers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	result, err := projections.QueryPlayerList(r.Context(), projections.PlayerListQuery{}, projections.PlayerListDeps{
		PlayerStore: srv.stores.PlayerStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Players)
}

// handleAddPlayer handles POST /api/addPlayer.
func (srv *server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req addPlayerRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeError(w, err)
		return
	}
	p, err := orchestrators.ExecuteAddPlayer(r.Context(), orchestrators.AddPlayerInput{
		Name:    req.Name,
		Contact: req.Contact,
	}, orchestrators.AddPlayerDeps{PlayerStore: srv.stores.PlayerStore})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, projections.PlayerView{Name: p.Name, Contact: p.Contact})
}

// handleRemovePlayer handles POST /api/removePlayer.
func (srv *server) handleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req removePlayerRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeError(w, err)
		return
	}
	res, err := orchestrators.ExecuteRemovePlayer(r.Context(), orchestrators.RemovePlayerInput{Name: req.Name},
		orchestrators.RemovePlayerDeps{PlayerStore: srv.stores.PlayerStore})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, removePlayerResponse{Name: res.Name, AttendanceRemoved: res.AttendanceRemoved})
}

// handlePlayerAttendance handles GET /api/players/attendance?player=&page=&per_page=.
func (srv *server) handlePlayerAttendance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	res, err := projections.QueryPlayerAttendance(r.Context(),
		projections.PlayerAttendanceQuery{
			PlayerName: r.URL.Query().Get("player"),
			Page:       listutil.ParsePageParams(r.URL.Query()),
		},
		projections.PlayerAttendanceDeps{AttendanceStore: srv.stores.AttendanceStore})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// --- fees ---

type feeRequest struct {
	Period      string  `json:"period"`
	RegularRate float64 `json:"regularRate"`
	CasualRate  float64 `json:"casualRate"`
}

type feeResponse struct {
	Period      string  `json:"period"`
	RegularRate float64 `json:"regularRate"`
	CasualRate  float64 `json:"casualRate"`
	Configured  bool    `json:"configured"`
}

func newFeeResponse(s fee.Schedule, configured bool) feeResponse {
	return feeResponse{
		Period:      s.Period.String(),
		RegularRate: s.RegularRate,
		CasualRate:  s.CasualRate,
		Configured:  configured,
	}
}

// handleFees handles GET/POST /api/fees.
func (srv *server) handleFees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		res, err := projections.QueryFeeSchedule(ctx, projections.FeeScheduleQuery{Period: srv.periodParam(r)},
			projections.FeeScheduleDeps{FeeStore: srv.stores.FeeStore})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newFeeResponse(res.Schedule, res.Configured))

	case http.MethodPost:
		var req feeRequest
		if err := decodeBody(w, r, &req, false); err != nil {
			writeError(w, err)
			return
		}
		s, err := orchestrators.ExecuteSaveFeeSchedule(ctx, orchestrators.SaveFeeScheduleInput{
			Period:      srv.periodOrActive(req.Period),
			RegularRate: req.RegularRate,
			CasualRate:  req.CasualRate,
		}, orchestrators.SaveFeeScheduleDeps{FeeStore: srv.stores.FeeStore})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newFeeResponse(s, true))

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// handleFeeHistory handles GET /api/fees/history.
func (srv *server) handleFeeHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	rows, err := projections.QueryFeeHistory(r.Context(), projections.FeeHistoryQuery{},
		projections.FeeHistoryDeps{FeeStore: srv.stores.FeeStore})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// --- attendance ---

type attendanceRequest struct {
	Player   string `json:"player"`
	Period   string `json:"period"`
	Week     int    `json:"week"`
	Attended bool   `json:"attended"`
}

type attendanceResponse struct {
	Player   string `json:"player"`
	Period   string `json:"period"`
	Week     int    `json:"week"`
	Attended bool   `json:"attended"`
}

// handleAttendance handles GET/POST /api/attendance.
func (srv *server) handleAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		week, err := srv.weekParam(r)
		if err != nil {
			writeError(w, err)
			return
		}
		q := projections.AttendanceQuery{
			PlayerName: r.URL.Query().Get("player"),
			Period:     srv.periodParam(r),
			Week:       week,
		}
		attended, err := projections.QueryAttendance(ctx, q, projections.AttendanceDeps{AttendanceStore: srv.stores.AttendanceStore})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, attendanceResponse{Player: q.PlayerName, Period: q.Period, Week: q.Week, Attended: attended})

	case http.MethodPost:
		var req attendanceRequest
		if err := decodeBody(w, r, &req, false); err != nil {
			writeError(w, err)
			return
		}
		rec, err := orchestrators.ExecuteRecordAttendance(ctx, orchestrators.RecordAttendanceInput{
			PlayerName: req.Player,
			Period:     srv.periodOrActive(req.Period),
			Week:       req.Week,
			Attended:   req.Attended,
		}, orchestrators.RecordAttendanceDeps{
			PlayerStore:     srv.stores.PlayerStore,
			AttendanceStore: srv.stores.AttendanceStore,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, attendanceResponse{
			Player:   rec.PlayerName,
			Period:   rec.Period.String(),
			Week:     rec.Week,
			Attended: rec.Attended,
		})

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// handleAttendanceSheet handles GET /api/attendance/sheet.
func (srv *server) handleAttendanceSheet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	sheet, err := projections.QueryAttendanceSheet(r.Context(), projections.AttendanceSheetQuery{Period: srv.periodParam(r)}, srv.sheetDeps())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

func (srv *server) sheetDeps() projections.AttendanceSheetDeps {
	return projections.AttendanceSheetDeps{
		PlayerStore:     srv.stores.PlayerStore,
		AttendanceStore: srv.stores.AttendanceStore,
		WeekLabelStore:  srv.stores.WeekLabelStore,
	}
}

// --- week labels ---

type weekLabelRequest struct {
	Period string `json:"period"`
	Week   int    `json:"week"`
	Label  string `json:"label"`
}

type weekLabelResponse struct {
	Period string `json:"period"`
	Week   int    `json:"week"`
	Label  string `json:"label"`
}

// handleWeekLabels handles GET/POST /api/weekLabels.
func (srv *server) handleWeekLabels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		week, err := srv.weekParam(r)
		if err != nil {
			writeError(w, err)
			return
		}
		q := projections.WeekLabelQuery{Period: srv.periodParam(r), Week: week}
		label, err := projections.QueryWeekLabel(ctx, q, projections.WeekLabelDeps{WeekLabelStore: srv.stores.WeekLabelStore})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, weekLabelResponse{Period: q.Period, Week: q.Week, Label: label})

	case http.MethodPost:
		var req weekLabelRequest
		if err := decodeBody(w, r, &req, false); err != nil {
			writeError(w, err)
			return
		}
		l, err := orchestrators.ExecuteSetWeekLabel(ctx, orchestrators.SetWeekLabelInput{
			Period: srv.periodOrActive(req.Period),
			Week:   req.Week,
			Label:  req.Label,
		}, orchestrators.SetWeekLabelDeps{WeekLabelStore: srv.stores.WeekLabelStore})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, weekLabelResponse{Period: l.Period.String(), Week: l.Week, Label: l.Text})

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}
