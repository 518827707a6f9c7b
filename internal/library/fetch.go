package library

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avrillon/steamworth/internal/ratelimit"
)

// ProgressFunc is called before each game is enriched, with the zero-based
// index, the total count, and the name of the game being processed.
type ProgressFunc func(current, total int, name string)

// FetchLibrary lists all owned games for the session's account and enriches
// them in listing order. Any fatal enrichment error aborts the fetch and the
// partial result is discarded; the caller must not persist anything then.
func (s *Session) FetchLibrary(ctx context.Context, progress ProgressFunc) ([]Game, error) {
	owned, err := s.Catalog.GetOwnedGames(s.Account.SteamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned games: %w", err)
	}

	limiter := s.pacingLimiter(len(owned))
	if limiter != nil {
		slog.Info("Large library, pacing store requests",
			"games", len(owned), "interval", s.PacingInterval)
	}

	games := make([]Game, 0, len(owned))
	for i, og := range owned {
		if progress != nil {
			progress(i, len(owned), og.Name)
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		slog.Debug("Enriching game", "game", og.Name, "appid", og.AppID)
		game, err := s.Enrich(og)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	return games, nil
}

// pacingLimiter returns the limiter used between store requests, or nil when
// the library is small enough to fetch unpaced.
func (s *Session) pacingLimiter(total int) *ratelimit.Limiter {
	if total <= s.PacingThreshold {
		return nil
	}
	return ratelimit.NewEvery("steam-store", s.PacingInterval)
}
