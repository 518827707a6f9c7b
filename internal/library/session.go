package library

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avrillon/steamworth/internal/config"
	"github.com/avrillon/steamworth/internal/steam"
)

// Catalog lists owned games and fetches per-game store details.
// *steam.Client implements it.
type Catalog interface {
	GetOwnedGames(steamID string) ([]steam.OwnedGame, error)
	GetAppDetails(appID int, country string) (*steam.AppDetails, error)
}

// Converter converts a monetary amount between currency codes.
// *fx.Converter implements it.
type Converter interface {
	Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// Session carries everything one account's pipeline run needs: the account,
// the API clients, and the fetch tuning knobs. It replaces any notion of
// process-global account state; all pipeline entry points hang off it.
type Session struct {
	Account   Account
	Catalog   Catalog
	Converter Converter

	Country        string
	TargetCurrency string

	Retries         int           // extra attempts after a nil details response
	Backoff         time.Duration // pause before each retry
	PacingThreshold int           // library size above which fetches are paced
	PacingInterval  time.Duration // minimum duration per item when pacing

	sleep func(time.Duration) // injectable for tests
}

// NewSession creates a Session for the account with tuning taken from the
// loaded configuration.
func NewSession(account Account, catalog Catalog, converter Converter) *Session {
	return &Session{
		Account:         account,
		Catalog:         catalog,
		Converter:       converter,
		Country:         config.Country(),
		TargetCurrency:  config.TargetCurrency(),
		Retries:         config.FetchRetries(),
		Backoff:         config.FetchBackoff(),
		PacingThreshold: config.PacingThreshold(),
		PacingInterval:  config.PacingInterval(),
		sleep:           time.Sleep,
	}
}
