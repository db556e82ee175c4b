package orchestrators

import (
	"context"
	"log/slog"

	"badminton/internal/domain/player"
)

// PlayerStore defines the player persistence needed by roster commands.
type PlayerStore interface {
	Insert(ctx context.Context, p player.Player) (player.Player, error)
	Exists(ctx context.Context, name string) (bool, error)
	DeleteWithAttendance(ctx context.Context, name string) (int, error)
}

// AddPlayerInput carries input for the orchestrator.
type AddPlayerInput struct {
	Name    string
	Contact string
}

// AddPlayerDeps holds dependencies for AddPlayer.
type AddPlayerDeps struct {
	PlayerStore PlayerStore
}

// ExecuteAddPlayer adds a player to the end of the roster.
// PRE: none
// POST: Player stored with trimmed name and normalized contact
// INVARIANT: Names are unique (enforced by store, ledger.ErrDuplicateKey)
func ExecuteAddPlayer(ctx context.Context, input AddPlayerInput, deps AddPlayerDeps) (player.Player, error) {
	p, err := player.New(input.Name, input.Contact)
	if err != nil {
		return player.Player{}, err
	}

	p, err = deps.PlayerStore.Insert(ctx, p)
	if err != nil {
		return player.Player{}, err
	}

	slog.Info("player_event", "event", "player_added", "name", p.Name, "position", p.Position, "has_contact", p.HasContact())
	return p, nil
}
