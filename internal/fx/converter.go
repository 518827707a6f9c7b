// Package fx converts monetary amounts between currencies using a daily
// exchange rate table.
package fx

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Converter converts amounts between currency codes. The rate table is
// fetched lazily on first use and cached in memory for the process lifetime.
type Converter struct {
	ratesURL   string
	base       string
	httpClient *http.Client

	mu     sync.Mutex
	rates  map[string]decimal.Decimal
	loaded bool
}

// NewConverter creates a Converter backed by a frankfurter-style rates
// endpoint. Rates are quoted against the given base currency.
func NewConverter(ratesURL, base string) *Converter {
	return &Converter{
		ratesURL:   ratesURL,
		base:       base,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewStaticConverter creates a Converter with a fixed rate table, quoted
// against the given base currency. Used in tests and offline runs.
func NewStaticConverter(base string, rates map[string]decimal.Decimal) *Converter {
	return &Converter{
		base:   base,
		rates:  rates,
		loaded: true,
	}
}

// Convert converts amount from one currency code to another.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	if money.GetCurrency(from) == nil {
		return decimal.Zero, fmt.Errorf("unknown currency code %q", from)
	}
	if money.GetCurrency(to) == nil {
		return decimal.Zero, fmt.Errorf("unknown currency code %q", to)
	}

	if err := c.load(); err != nil {
		return decimal.Zero, err
	}

	inBase := amount
	if from != c.base {
		rate, ok := c.rates[from]
		if !ok || rate.IsZero() {
			return decimal.Zero, fmt.Errorf("no exchange rate for %s", from)
		}
		inBase = amount.Div(rate)
	}

	if to == c.base {
		return inBase, nil
	}
	rate, ok := c.rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("no exchange rate for %s", to)
	}
	return inBase.Mul(rate), nil
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

func (c *Converter) load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return nil
	}

	resp, err := c.httpClient.Get(fmt.Sprintf("%s?base=%s", c.ratesURL, c.base))
	if err != nil {
		return fmt.Errorf("failed to fetch exchange rates: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read rates response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rates API returned status code %d. Response: %s", resp.StatusCode, string(body))
	}

	var parsed ratesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to parse rates response: %w", err)
	}

	rates := make(map[string]decimal.Decimal, len(parsed.Rates))
	for code, rate := range parsed.Rates {
		rates[code] = decimal.NewFromFloat(rate)
	}
	c.rates = rates
	c.loaded = true
	return nil
}
