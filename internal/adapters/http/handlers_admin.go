package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"badminton/internal/adapters/storage"
	"badminton/internal/adapters/storage/snapshot"
	"badminton/internal/application/orchestrators"
	"badminton/internal/application/projections"
	"badminton/internal/domain/attendance"
	"badminton/internal/domain/ledger"
	"badminton/internal/domain/navigator"
	"badminton/internal/domain/period"
)

// maxSnapshotBytes bounds an uploaded ledger image.
const maxSnapshotBytes = 64 << 20

// defaultPerfTop is how many perf entries GET /api/perf returns without ?top=.
const defaultPerfTop = 25

// --- navigator ---

type navigatorRequest struct {
	Action string `json:"action"`
	Week   int    `json:"week,omitempty"`
	Period string `json:"period,omitempty"`
}

type navigatorResponse struct {
	Period     string `json:"period"`
	MonthName  string `json:"monthName"`
	Week       int    `json:"week"`
	TotalWeeks int    `json:"totalWeeks"`
	Label      string `json:"label"`
}

func (srv *server) navigatorView(ctx context.Context, s navigator.State) (navigatorResponse, error) {
	label, err := projections.WeekLabels{Store: srv.stores.WeekLabelStore}.WeekLabel(ctx, s.Period, s.Week)
	if err != nil {
		return navigatorResponse{}, err
	}
	return navigatorResponse{
		Period:     s.Period.String(),
		MonthName:  s.Period.MonthName(),
		Week:       s.Week,
		TotalWeeks: attendance.TotalWeeks,
		Label:      label,
	}, nil
}

// handleNavigator handles GET/POST /api/navigator.
// POST actions: next, prev, jump (with week), period (with period).
func (srv *server) handleNavigator(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var state navigator.State
	switch r.Method {
	case http.MethodGet:
		state = srv.nav.State()

	case http.MethodPost:
		var req navigatorRequest
		if err := decodeBody(w, r, &req, false); err != nil {
			writeError(w, err)
			return
		}
		switch strings.ToLower(strings.TrimSpace(req.Action)) {
		case "next":
			state = srv.nav.Next()
		case "prev":
			state = srv.nav.Prev()
		case "jump":
			s, err := srv.nav.Jump(req.Week)
			if err != nil {
				writeError(w, err)
				return
			}
			state = s
		case "period":
			p, err := period.Parse(req.Period)
			if err != nil {
				writeError(w, err)
				return
			}
			state = srv.nav.SetPeriod(p)
		default:
			writeError(w, ledger.Validationf("unknown navigator action %q", req.Action))
			return
		}

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
		return
	}

	view, err := srv.navigatorView(ctx, state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// --- snapshot ---

type snapshotImportResponse struct {
	Digest string `json:"digest"`
	Bytes  int    `json:"bytes"`
}

// handleSnapshot handles GET/POST /api/snapshot.
// GET exports the ledger image; POST replaces the ledger with an uploaded image.
func (srv *server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		image, err := snapshot.Export(ctx, srv.stores.DB)
		if err != nil {
			internalError(w, err)
			return
		}
		digest := snapshot.Digest(image)
		etag := `"` + digest + `"`
		w.Header().Set("ETag", etag)
		w.Header().Set("X-Snapshot-Digest", digest)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", snapshot.MediaType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": "ledger.sqlite"}))
		w.Header().Set("Content-Length", strconv.Itoa(len(image)))
		w.Write(image)

	case http.MethodPost:
		image, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSnapshotBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "snapshot too large", http.StatusRequestEntityTooLarge)
				return
			}
			writeError(w, ledger.Validationf("read snapshot: %v", err))
			return
		}
		if err := snapshot.Replace(ctx, srv.stores.DB, image); err != nil {
			writeError(w, err)
			return
		}
		digest := snapshot.Digest(image)
		slog.Info("snapshot_event", "event", "snapshot_imported", "bytes", len(image), "digest", digest)
		writeJSON(w, http.StatusOK, snapshotImportResponse{Digest: digest, Bytes: len(image)})

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// --- reset ---

type resetRequest struct {
	Seed bool `json:"seed"`
}

type resetResponse struct {
	Seeded   bool         `json:"seeded"`
	Schedule *feeResponse `json:"schedule,omitempty"`
}

// handleReset handles POST /api/reset.
func (srv *server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req resetRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		writeError(w, err)
		return
	}

	res, err := orchestrators.ExecuteResetStore(r.Context(), orchestrators.ResetStoreInput{Seed: req.Seed}, orchestrators.ResetStoreDeps{
		Reset:    func(context.Context) error { return storage.ResetDB(srv.stores.DB) },
		FeeStore: srv.stores.FeeStore,
		Now:      srv.clock.Now,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	out := resetResponse{Seeded: res.Seeded}
	if res.Seeded {
		fr := newFeeResponse(res.Schedule, true)
		out.Schedule = &fr
	}
	writeJSON(w, http.StatusOK, out)
}

// --- years / perf ---

type yearsResponse struct {
	Years   []int `json:"years"`
	Current int   `json:"current"`
}

// handleYears handles GET /api/years.
func (srv *server) handleYears(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	now := srv.clock.Now()
	writeJSON(w, http.StatusOK, yearsResponse{Years: period.YearOptions(now), Current: now.Year()})
}

// handlePerf handles GET /api/perf?top=N.
func (srv *server) handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	top := defaultPerfTop
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, ledger.Validationf("top %q is not a number", raw))
			return
		}
		top = n
	}
	writeJSON(w, http.StatusOK, srv.perf.Snapshot(top))
}
