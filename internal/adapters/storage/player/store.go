package player

import (
	"context"

	domain "badminton/internal/domain/player"
)

// Store persists Player state.
type Store interface {
	Insert(ctx context.Context, p domain.Player) (domain.Player, error)
	GetByName(ctx context.Context, name string) (domain.Player, error)
	Exists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]domain.Player, error)
	Delete(ctx context.Context, name string) error
	DeleteWithAttendance(ctx context.Context, name string) (int, error)
}
