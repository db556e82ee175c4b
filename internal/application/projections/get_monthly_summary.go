package projections

import (
	"context"
	"log/slog"

	"badminton/internal/domain/billing"
	"badminton/internal/domain/ledger"
	"badminton/internal/domain/period"
)

// MonthlySummaryQuery carries query parameters.
type MonthlySummaryQuery struct {
	Period string
	// RequireFeeSchedule turns an unconfigured period into ledger.ErrNotFound.
	RequireFeeSchedule bool
}

// SummaryRow is one billed player.
type SummaryRow struct {
	Player        string       `json:"player"`
	MonthName     string       `json:"month"`
	AttendedCount int          `json:"attendedCount"`
	Tier          billing.Tier `json:"tier"`
	Rate          float64      `json:"rate"`
	Amount        float64      `json:"amount"`
}

// MonthlySummary carries the query result.
type MonthlySummary struct {
	Period        string       `json:"period"`
	MonthName     string       `json:"month"`
	Rows          []SummaryRow `json:"rows"`
	TotalRevenue  float64      `json:"totalRevenue"`
	FeeConfigured bool         `json:"feeConfigured"`
	RegularRate   float64      `json:"regularRate"`
	CasualRate    float64      `json:"casualRate"`
}

// MonthlySummaryDeps holds dependencies for MonthlySummary.
type MonthlySummaryDeps struct {
	PlayerStore     PlayerStore
	FeeStore        FeeStore
	AttendanceStore AttendanceStore
}

// QueryMonthlySummary classifies and prices every player's attendance for a period.
// PRE: Period in YYYY-MM form
// POST: Rows follow roster order; players with zero attended weeks are omitted
// INVARIANT: TotalRevenue equals the sum of row amounts; Amount = AttendedCount × Rate
func QueryMonthlySummary(ctx context.Context, query MonthlySummaryQuery, deps MonthlySummaryDeps) (MonthlySummary, error) {
	p, err := period.Parse(query.Period)
	if err != nil {
		return MonthlySummary{}, err
	}

	sched, err := lookupSchedule(ctx, deps.FeeStore, p)
	if err != nil {
		return MonthlySummary{}, err
	}
	if !sched.Configured {
		if query.RequireFeeSchedule {
			return MonthlySummary{}, ledger.NotFoundf("no fee schedule for %s", p)
		}
		slog.Warn("fee_schedule_missing", "period", p.String())
	}

	players, err := deps.PlayerStore.List(ctx)
	if err != nil {
		return MonthlySummary{}, err
	}
	counts, err := deps.AttendanceStore.CountAttendedByPeriod(ctx, p)
	if err != nil {
		return MonthlySummary{}, err
	}

	summary := MonthlySummary{
		Period:        p.String(),
		MonthName:     p.MonthName(),
		Rows:          []SummaryRow{},
		FeeConfigured: sched.Configured,
		RegularRate:   sched.Schedule.RegularRate,
		CasualRate:    sched.Schedule.CasualRate,
	}
	for _, pl := range players {
		count := counts[pl.Name]
		if count == 0 {
			continue
		}
		tier := billing.Classify(count)
		rate := billing.RateFor(sched.Schedule, tier)
		row := SummaryRow{
			Player:        pl.Name,
			MonthName:     summary.MonthName,
			AttendedCount: count,
			Tier:          tier,
			Rate:          rate,
			Amount:        billing.Amount(count, rate),
		}
		summary.Rows = append(summary.Rows, row)
		summary.TotalRevenue += row.Amount
	}
	return summary, nil
}
