package steam

// OwnedGame is one entry of a user's library as reported by the
// owned-games listing endpoint. Immutable snapshot at fetch time.
type OwnedGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"` // Total playtime in minutes
}

type ownedGamesResponse struct {
	Response struct {
		Games []OwnedGame `json:"games"`
	} `json:"response"`
}

// PriceOverview is the storefront pricing block for a paid app.
// Initial is the undiscounted price in cents of Currency.
type PriceOverview struct {
	Currency string `json:"currency"`
	Initial  int64  `json:"initial"`
	Final    int64  `json:"final"`
}

// AppData holds the basic+pricing fields of a storefront details response.
type AppData struct {
	Name          string         `json:"name"`
	IsFree        bool           `json:"is_free"`
	PriceOverview *PriceOverview `json:"price_overview"`
}

// AppDetails is one storefront details entry. Data is nil when the app has
// no store page (success false or an empty details body).
type AppDetails struct {
	Success bool     `json:"success"`
	Data    *AppData `json:"data"`
}
