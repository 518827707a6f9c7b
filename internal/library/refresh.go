package library

import (
	"fmt"

	"github.com/avrillon/steamworth/internal/errors"
	"github.com/avrillon/steamworth/internal/steam"
)

// RefreshGame re-enriches a single cached game by name and writes the
// updated snapshot back. Playtime always comes from the live listing, not
// the cache. When the name has vanished from the live listing the cached
// snapshot is left untouched and a GameNotFoundError is returned.
//
// Lookup is by display name; libraries with duplicate names refresh the
// first match. The enrichment itself keys on the cached entry's app ID.
func (s *Session) RefreshGame(store SnapshotStore, name string) (Game, error) {
	games, err := store.ReadSnapshot(s.Account)
	if err != nil {
		return Game{}, err
	}

	idx := -1
	for i := range games {
		if games[i].Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Game{}, errors.NewGameNotFoundError(name)
	}

	owned, err := s.Catalog.GetOwnedGames(s.Account.SteamID)
	if err != nil {
		return Game{}, fmt.Errorf("failed to list owned games: %w", err)
	}

	livePlaytime := -1
	for _, og := range owned {
		if og.Name == name {
			livePlaytime = og.PlaytimeForever
			break
		}
	}
	if livePlaytime < 0 {
		return Game{}, errors.NewGameNotFoundError(name)
	}

	refreshed, err := s.Enrich(steam.OwnedGame{
		AppID:           games[idx].AppID,
		Name:            name,
		PlaytimeForever: livePlaytime,
	})
	if err != nil {
		return Game{}, err
	}

	games[idx] = refreshed
	if err := store.WriteSnapshot(s.Account, games); err != nil {
		return Game{}, err
	}
	return refreshed, nil
}
