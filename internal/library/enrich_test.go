package library

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avrillon/steamworth/internal/errors"
	"github.com/avrillon/steamworth/internal/fx"
	"github.com/avrillon/steamworth/internal/steam"
)

// fakeCatalog serves canned responses. details maps app ID to a queue of
// responses so tests can simulate nil-then-success sequences.
type fakeCatalog struct {
	owned      []steam.OwnedGame
	ownedErr   error
	details    map[int][]*steam.AppDetails
	detailsErr error
	calls      int
}

func (f *fakeCatalog) GetOwnedGames(steamID string) ([]steam.OwnedGame, error) {
	return f.owned, f.ownedErr
}

func (f *fakeCatalog) GetAppDetails(appID int, country string) (*steam.AppDetails, error) {
	f.calls++
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	queue := f.details[appID]
	if len(queue) == 0 {
		return nil, nil
	}
	next := queue[0]
	f.details[appID] = queue[1:]
	return next, nil
}

func paidDetails(currency string, initial int64) *steam.AppDetails {
	return &steam.AppDetails{
		Success: true,
		Data: &steam.AppData{
			IsFree:        false,
			PriceOverview: &steam.PriceOverview{Currency: currency, Initial: initial},
		},
	}
}

func freeDetails() *steam.AppDetails {
	return &steam.AppDetails{Success: true, Data: &steam.AppData{IsFree: true}}
}

func noPageDetails() *steam.AppDetails {
	return &steam.AppDetails{Success: false}
}

func notStandaloneDetails() *steam.AppDetails {
	return &steam.AppDetails{Success: true, Data: &steam.AppData{IsFree: false}}
}

func testSession(catalog Catalog) *Session {
	return &Session{
		Account:         Account{DisplayName: "alice", SteamID: "76561198000000001"},
		Catalog:         catalog,
		Converter:       fx.NewStaticConverter("EUR", map[string]decimal.Decimal{"USD": decimal.NewFromFloat(1.25)}),
		Country:         "FR",
		TargetCurrency:  "EUR",
		Retries:         1,
		Backoff:         time.Second,
		PacingThreshold: 200,
		PacingInterval:  2 * time.Second,
		sleep:           func(time.Duration) {},
	}
}

func TestEnrich_PaidGame(t *testing.T) {
	catalog := &fakeCatalog{details: map[int][]*steam.AppDetails{
		220: {paidDetails("EUR", 819)},
	}}
	s := testSession(catalog)

	game, err := s.Enrich(steam.OwnedGame{AppID: 220, Name: "Half-Life 2", PlaytimeForever: 1234})
	require.NoError(t, err)

	require.NotNil(t, game.Price)
	assert.InDelta(t, 8.19, *game.Price, 1e-9)
	assert.Empty(t, game.Error)
	assert.Equal(t, 1234, game.PlaytimeForever)
}

func TestEnrich_PaidGameConvertsCurrency(t *testing.T) {
	// 1000 USD cents at 1.25 USD per EUR is 8 EUR
	catalog := &fakeCatalog{details: map[int][]*steam.AppDetails{
		220: {paidDetails("USD", 1000)},
	}}
	s := testSession(catalog)

	game, err := s.Enrich(steam.OwnedGame{AppID: 220, Name: "Half-Life 2"})
	require.NoError(t, err)
	require.NotNil(t, game.Price)
	assert.InDelta(t, 8.0, *game.Price, 1e-9)
}

func TestEnrich_FreeGame(t *testing.T) {
	catalog := &fakeCatalog{details: map[int][]*steam.AppDetails{
		570: {freeDetails()},
	}}
	s := testSession(catalog)

	game, err := s.Enrich(steam.OwnedGame{AppID: 570, Name: "Dota 2"})
	require.NoError(t, err)
	require.NotNil(t, game.Price)
	assert.Equal(t, 0.0, *game.Price)
	assert.True(t, game.IsFree())
	assert.Empty(t, game.Error)
}

func TestEnrich_NoStorePage(t *testing.T) {
	catalog := &fakeCatalog{details: map[int][]*steam.AppDetails{
		99999: {noPageDetails()},
	}}
	s := testSession(catalog)

	game, err := s.Enrich(steam.OwnedGame{AppID: 99999, Name: "Delisted Game"})
	require.NoError(t, err)
	assert.Nil(t, game.Price)
	assert.Equal(t, ErrNoStorePage, game.Error)
}

func TestEnrich_NotStandalone(t *testing.T) {
	catalog := &fakeCatalog{details: map[int][]*steam.AppDetails{
		1234: {notStandaloneDetails()},
	}}
	s := testSession(catalog)

	game, err := s.Enrich(steam.OwnedGame{AppID: 1234, Name: "Some DLC"})
	require.NoError(t, err)
	assert.Nil(t, game.Price)
	assert.Equal(t, ErrNotStandalone, game.Error)
}

func TestEnrich_ExactlyOneOfPriceAndError(t *testing.T) {
	tests := []struct {
		name    string
		details *steam.AppDetails
	}{
		{"paid", paidDetails("EUR", 500)},
		{"free", freeDetails()},
		{"no store page", noPageDetails()},
		{"not standalone", notStandaloneDetails()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &fakeCatalog{details: map[int][]*steam.AppDetails{
				1: {tt.details},
			}}
			s := testSession(catalog)

			game, err := s.Enrich(steam.OwnedGame{AppID: 1, Name: "Game"})
			require.NoError(t, err)
			assert.True(t, game.HasPrice() != (game.Error != ""),
				"exactly one of price and error must be set: price=%v error=%q", game.Price, game.Error)
		})
	}
}

func TestEnrich_RetriesNilResponseOnce(t *testing.T) {
	catalog := &fakeCatalog{details: map[int][]*steam.AppDetails{
		220: {nil, paidDetails("EUR", 819)},
	}}
	s := testSession(catalog)

	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }

	game, err := s.Enrich(steam.OwnedGame{AppID: 220, Name: "Half-Life 2"})
	require.NoError(t, err)
	require.NotNil(t, game.Price)
	assert.Equal(t, 2, catalog.calls)
	assert.Equal(t, []time.Duration{time.Second}, slept)
}

func TestEnrich_RateLimitedAfterRetry(t *testing.T) {
	catalog := &fakeCatalog{details: map[int][]*steam.AppDetails{}}
	s := testSession(catalog)

	_, err := s.Enrich(steam.OwnedGame{AppID: 220, Name: "Half-Life 2"})
	require.Error(t, err)
	assert.True(t, errors.IsRateLimitError(err))
	assert.Equal(t, 2, catalog.calls, "one initial attempt plus one retry")
}

func TestEnrich_ConfigurableRetries(t *testing.T) {
	catalog := &fakeCatalog{details: map[int][]*steam.AppDetails{}}
	s := testSession(catalog)
	s.Retries = 3

	_, err := s.Enrich(steam.OwnedGame{AppID: 220, Name: "Half-Life 2"})
	require.Error(t, err)
	assert.True(t, errors.IsRateLimitError(err))
	assert.Equal(t, 4, catalog.calls)
}

func TestEnrich_ConversionFailureIsFatal(t *testing.T) {
	catalog := &fakeCatalog{details: map[int][]*steam.AppDetails{
		220: {paidDetails("JPY", 100000)},
	}}
	s := testSession(catalog)

	_, err := s.Enrich(steam.OwnedGame{AppID: 220, Name: "Imported Game"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to convert price")
}
