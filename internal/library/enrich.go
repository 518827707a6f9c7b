package library

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/avrillon/steamworth/internal/errors"
	"github.com/avrillon/steamworth/internal/steam"
)

var cents = decimal.NewFromInt(100)

// Enrich attaches pricing data to one owned game. Business failures (no
// store page, bundle-only apps) are recorded on the returned Game; an error
// return means the whole fetch must stop.
func (s *Session) Enrich(game steam.OwnedGame) (Game, error) {
	details, err := s.appDetailsWithRetry(game.AppID)
	if err != nil {
		return Game{}, err
	}

	enriched := Game{OwnedGame: game}

	if details.Data == nil {
		enriched.Error = ErrNoStorePage
		return enriched, nil
	}
	data := details.Data

	if data.IsFree {
		price := 0.0
		enriched.Price = &price
		return enriched, nil
	}

	if data.PriceOverview == nil {
		// Paid app without its own pricing block: DLC, soundtrack, or a
		// bundle-only entry.
		enriched.Error = ErrNotStandalone
		return enriched, nil
	}

	amount := decimal.NewFromInt(data.PriceOverview.Initial).Div(cents)
	converted, err := s.Converter.Convert(amount, data.PriceOverview.Currency, s.TargetCurrency)
	if err != nil {
		return Game{}, fmt.Errorf("failed to convert price for %q: %w", game.Name, err)
	}

	price := converted.InexactFloat64()
	enriched.Price = &price
	return enriched, nil
}

// appDetailsWithRetry fetches store details, retrying a bounded number of
// times when the storefront answers with nothing. A nil response after the
// final retry is treated as throttling and aborts the fetch.
func (s *Session) appDetailsWithRetry(appID int) (*steam.AppDetails, error) {
	details, err := s.Catalog.GetAppDetails(appID, s.Country)
	if err != nil {
		return nil, err
	}

	for attempt := 0; details == nil && attempt < s.Retries; attempt++ {
		s.sleep(s.Backoff)
		details, err = s.Catalog.GetAppDetails(appID, s.Country)
		if err != nil {
			return nil, err
		}
	}

	if details == nil {
		return nil, errors.NewRateLimitError(
			fmt.Sprintf("store API returned nothing for app %d after %d retries, probably rate limited", appID, s.Retries))
	}
	return details, nil
}
