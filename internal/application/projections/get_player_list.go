package projections

import "context"

// PlayerListQuery carries query parameters.
type PlayerListQuery struct{}

// PlayerView is a roster entry as shown to clients.
type PlayerView struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// PlayerListResult carries the query result.
type PlayerListResult struct {
	Players []PlayerView
}

// PlayerListDeps holds dependencies for PlayerList.
type PlayerListDeps struct {
	PlayerStore PlayerStore
}

// QueryPlayerList returns the roster.
// POST: Players in insertion order; never nil
func QueryPlayerList(ctx context.Context, _ PlayerListQuery, deps PlayerListDeps) (PlayerListResult, error) {
	players, err := deps.PlayerStore.List(ctx)
	if err != nil {
		return PlayerListResult{}, err
	}

	views := make([]PlayerView, 0, len(players))
	for _, p := range players {
		views = append(views, PlayerView{Name: p.Name, Contact: p.Contact})
	}
	return PlayerListResult{Players: views}, nil
}
