package web

import (
	"crypto/rand"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/itbasis/go-clock"

	"badminton/internal/adapters/http/middleware"
	"badminton/internal/adapters/http/perf"
	attendanceStore "badminton/internal/adapters/storage/attendance"
	feeStore "badminton/internal/adapters/storage/fee"
	playerStore "badminton/internal/adapters/storage/player"
	weekLabelStore "badminton/internal/adapters/storage/weeklabel"
	"badminton/internal/domain/navigator"
)

// Stores holds all storage dependencies.
type Stores struct {
	// DB is the raw ledger handle, used for snapshots and resets.
	DB              *sql.DB
	PlayerStore     playerStore.Store
	FeeStore        feeStore.Store
	AttendanceStore attendanceStore.Store
	WeekLabelStore  weekLabelStore.Store
}

// Options configures the middleware chain.
type Options struct {
	CSRFKey        []byte // 32 bytes; random per start when empty
	Secure         bool
	TrustedOrigins []string
	RateLimit      int // requests per second per client, 0 disables
	SlowRequest    time.Duration
	Clock          clock.Clock
}

// server carries the dependencies every handler reads.
type server struct {
	stores *Stores
	nav    *navigator.Navigator
	perf   *perf.Collector
	clock  clock.Clock
}

// NewMux wires HTTP handlers for the ledger API.
// PRE: s holds open stores; nav is non-nil
// POST: Returns a handler with Timing -> RateLimit -> SecurityHeaders -> CSRF -> Mux
func NewMux(s *Stores, nav *navigator.Navigator, collector *perf.Collector, opts Options) http.Handler {
	srv := &server{stores: s, nav: nav, perf: collector, clock: opts.Clock}
	if srv.clock == nil {
		srv.clock = clock.New()
	}

	mux := http.NewServeMux()
	srv.registerRoutes(mux)

	var limiter *middleware.RateLimiter
	if opts.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(opts.RateLimit, time.Second)
	}

	return middleware.Chain(mux,
		middleware.CSRF(middleware.CSRFOptions{
			Key:            csrfKey(opts.CSRFKey),
			Secure:         opts.Secure,
			TrustedOrigins: opts.TrustedOrigins,
		}),
		middleware.SecurityHeaders,
		middleware.RateLimit(limiter),
		middleware.Timing(collector, opts.SlowRequest),
	)
}

// csrfKey returns key, or a random one when none was configured.
func csrfKey(key []byte) []byte {
	if len(key) > 0 {
		return key
	}
	key = make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("csrf: failed to generate key: " + err.Error())
	}
	slog.Warn("csrf_event", "event", "random_key", "hint", "set BADMINTON_CSRF_KEY so form tokens survive restarts")
	return key
}

// registerRoutes binds every API path.
func (srv *server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/getPlayers", srv.handleGetPlayers)
	mux.HandleFunc("/api/addPlayer", srv.handleAddPlayer)
	mux.HandleFunc("/api/removePlayer", srv.handleRemovePlayer)
	mux.HandleFunc("/api/players/attendance", srv.handlePlayerAttendance)
	mux.HandleFunc("/api/fees", srv.handleFees)
	mux.HandleFunc("/api/fees/history", srv.handleFeeHistory)
	mux.HandleFunc("/api/attendance", srv.handleAttendance)
	mux.HandleFunc("/api/attendance/sheet", srv.handleAttendanceSheet)
	mux.HandleFunc("/api/weekLabels", srv.handleWeekLabels)
	mux.HandleFunc("/api/summary", srv.handleSummary)
	mux.HandleFunc("/api/bills/statement", srv.handleBillStatement)
	mux.HandleFunc("/api/bills/export", srv.handleBillExport)
	mux.HandleFunc("/api/navigator", srv.handleNavigator)
	mux.HandleFunc("/api/snapshot", srv.handleSnapshot)
	mux.HandleFunc("/api/reset", srv.handleReset)
	mux.HandleFunc("/api/years", srv.handleYears)
	mux.HandleFunc("/api/perf", srv.handlePerf)
}
