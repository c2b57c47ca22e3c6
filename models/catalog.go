package models

import (
	"encoding/json"
	"strconv"
)

// MediaType identifies which content category a catalog item came from.
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeSeries MediaType = "series"
)

// Year marshals as the integer year, or the string "Unknown" when the source
// release date was absent.
type Year int

func (y Year) MarshalJSON() ([]byte, error) {
	if y == 0 {
		return json.Marshal("Unknown")
	}
	return json.Marshal(int(y))
}

func (y *Year) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*y = Year(n)
		return nil
	}
	// Accept the "Unknown" sentinel (or any string) as the zero year.
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if parsed, err := strconv.Atoi(s); err == nil {
		*y = Year(parsed)
	} else {
		*y = 0
	}
	return nil
}

// CatalogItem is the normalized shape served to the front-end, regardless of
// whether the upstream record was a movie or a series.
type CatalogItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Rating      float64   `json:"rating"` // 0-5, upstream 0-10 score halved
	Genre       string    `json:"genre"`
	Year        Year      `json:"year"`
	Image       string    `json:"image"`
	Type        MediaType `json:"type"`
	ReleaseDate string    `json:"releaseDate"` // YYYY-MM-DD, "1900-01-01" when upstream omits it
}

// CatalogQuery is the decoded set of browse parameters for one request.
// Query holds free text or the reserved tokens "popular"/"upcoming".
type CatalogQuery struct {
	Query    string
	Type     string // all|movie|series|tv
	Provider string // watch-provider id, "all", or "-1" for latest releases
	Genre    string // genre id, "0" = unfiltered
	Page     int
	Limit    int
}

// CatalogPage is the response envelope for the list/search flow.
type CatalogPage struct {
	Results      []CatalogItem `json:"results"`
	TotalResults int           `json:"totalResults"`
	Page         int           `json:"page"`
	Limit        int           `json:"limit"`
}
