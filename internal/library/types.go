// Package library implements the fetch and enrichment pipeline: listing a
// user's owned games, attaching store prices, and refreshing single entries.
package library

import (
	"regexp"

	"github.com/avrillon/steamworth/internal/steam"
)

// Per-game enrichment failure reasons, stored verbatim in the snapshot.
const (
	ErrNoStorePage   = "No store page"
	ErrNotStandalone = "Not standalone"
)

// Game is an owned game enriched with pricing data. Exactly one of Price and
// Error is set once enrichment completes: Price (0 means free-to-play) on
// success, Error with one of the reason constants otherwise.
type Game struct {
	steam.OwnedGame
	Price *float64 `json:"price,omitempty"` // in the target currency
	Error string   `json:"error,omitempty"`
}

// HasPrice reports whether enrichment produced a price for this game.
func (g Game) HasPrice() bool {
	return g.Price != nil
}

// IsFree reports whether the game is priced at zero.
func (g Game) IsFree() bool {
	return g.Price != nil && *g.Price == 0
}

// Ratio returns playtime minutes per currency unit. Only meaningful for
// played paid games; callers must exclude free and unpriced games first.
func (g Game) Ratio() float64 {
	return float64(g.PlaytimeForever) / *g.Price
}

var steamIDPattern = regexp.MustCompile(`^\d{17}$`)

// Account identifies one Steam user: a free-form display name and a
// 17-digit SteamID64.
type Account struct {
	DisplayName string `json:"display_name"`
	SteamID     string `json:"steam_id"`
}

// Key returns the cache directory name for this account.
func (a Account) Key() string {
	return a.DisplayName + "_" + a.SteamID
}

// ValidSteamID reports whether s looks like a SteamID64.
func ValidSteamID(s string) bool {
	return steamIDPattern.MatchString(s)
}

// SnapshotStore persists the enriched game list for an account.
type SnapshotStore interface {
	ReadSnapshot(account Account) ([]Game, error)
	WriteSnapshot(account Account, games []Game) error
}
