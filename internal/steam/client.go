// Package steam talks to the Steam Web API and the storefront API.
package steam

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avrillon/steamworth/internal/errors"
)

const (
	defaultAPIBaseURL   = "https://api.steampowered.com"
	defaultStoreBaseURL = "https://store.steampowered.com"
)

// Client performs Steam Web API and storefront requests for one API key.
type Client struct {
	apiKey       string
	apiBaseURL   string
	storeBaseURL string
	httpClient   *http.Client
}

// NewClient creates a Client using the given Steam Web API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:       apiKey,
		apiBaseURL:   defaultAPIBaseURL,
		storeBaseURL: defaultStoreBaseURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBaseURLs creates a Client pointing at alternative endpoints.
// Used by tests to inject httptest servers.
func NewClientWithBaseURLs(apiKey, apiBaseURL, storeBaseURL string) *Client {
	c := NewClient(apiKey)
	c.apiBaseURL = apiBaseURL
	c.storeBaseURL = storeBaseURL
	return c
}

// GetOwnedGames fetches the owned-games listing for a SteamID.
func (c *Client) GetOwnedGames(steamID string) ([]OwnedGame, error) {
	params := url.Values{}
	params.Add("key", c.apiKey)
	params.Add("steamid", steamID)
	params.Add("format", "json")
	params.Add("include_appinfo", "true")
	params.Add("include_played_free_games", "true")

	fullURL := c.apiBaseURL + "/IPlayerService/GetOwnedGames/v0001/?" + params.Encode()

	resp, err := c.httpClient.Get(fullURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch owned games: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, errors.NewProfileError(resp.StatusCode, string(body))
	default:
		return nil, fmt.Errorf("steam API returned status code %d. Response: %s", resp.StatusCode, string(body))
	}

	var ownedResp ownedGamesResponse
	if err := json.Unmarshal(body, &ownedResp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return ownedResp.Response.Games, nil
}

// GetAppDetails fetches storefront details for one app, filtered to basic and
// pricing fields and scoped to a country code.
//
// A nil result with a nil error means the storefront declined to answer,
// which in practice is throttling or a removed app. Callers decide whether
// to retry; this matches the storefront's habit of returning nothing rather
// than a proper error status.
func (c *Client) GetAppDetails(appID int, country string) (*AppDetails, error) {
	params := url.Values{}
	params.Add("appids", fmt.Sprintf("%d", appID))
	params.Add("cc", country)
	params.Add("filters", "basic,price_overview")

	fullURL := c.storeBaseURL + "/api/appdetails?" + params.Encode()

	resp, err := c.httpClient.Get(fullURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch app details: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("steam store API returned status code %d. Response: %s", resp.StatusCode, string(body))
	}

	// The storefront returns a map keyed by app ID as a string.
	var result map[string]AppDetails
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, nil
	}

	details, exists := result[fmt.Sprintf("%d", appID)]
	if !exists {
		return nil, nil
	}

	return &details, nil
}
