package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"badminton/internal/domain/ledger"
)

// RemovePlayerInput carries input for the orchestrator.
type RemovePlayerInput struct {
	Name string
}

// RemovePlayerResult reports what a removal deleted.
type RemovePlayerResult struct {
	Name              string
	AttendanceRemoved int
}

// RemovePlayerDeps holds dependencies for RemovePlayer.
type RemovePlayerDeps struct {
	PlayerStore PlayerStore
}

// ExecuteRemovePlayer removes a player together with all of its attendance.
// PRE: Name is non-empty
// POST: Player and its attendance rows are gone, or nothing changed
// INVARIANT: No attendance row references a removed player
func ExecuteRemovePlayer(ctx context.Context, input RemovePlayerInput, deps RemovePlayerDeps) (RemovePlayerResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return RemovePlayerResult{}, ledger.Validationf("player name is required")
	}

	removed, err := deps.PlayerStore.DeleteWithAttendance(ctx, name)
	if err != nil {
		return RemovePlayerResult{}, err
	}

	slog.Info("player_event", "event", "player_removed", "name", name, "attendance_removed", removed)
	return RemovePlayerResult{Name: name, AttendanceRemoved: removed}, nil
}
