package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"streamdash/internal/metrics"
)

const (
	tmdbImageBaseURL = "https://image.tmdb.org/t/p/w500"

	// placeholderImage is served to the front-end when a title has no poster.
	placeholderImage = "/api/placeholder/300/400"
)

// tmdbClient issues authenticated GET requests against the TMDB v3 API and
// decodes the JSON payloads. It holds no state beyond its credentials.
type tmdbClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func newTMDBClient(apiKey, baseURL string, httpClient *http.Client) *tmdbClient {
	return &tmdbClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// tmdbListItem is one raw entry from a list, discover, or search response.
// Movies carry title/release_date; series carry name/first_air_date.
type tmdbListItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int   `json:"genre_ids"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
}

// tmdbListPage is one page of a list, discover, or search response. A missing
// results field decodes to nil and is treated as an empty page, not an error.
type tmdbListPage struct {
	Results []tmdbListItem `json:"results"`
}

// tmdbSeason holds the raw season objects from a show detail response. Each
// season is kept as raw JSON so the payload passes through unmodified; only
// season_number is peeked at for the specials filter.
type tmdbShowDetail struct {
	Seasons []json.RawMessage `json:"seasons"`
}

type tmdbSeasonDetail struct {
	Episodes []json.RawMessage `json:"episodes"`
}

// fetchPage retrieves one list/discover/search page from a fully-built URL.
func (c *tmdbClient) fetchPage(ctx context.Context, pageURL string) (*tmdbListPage, error) {
	var page tmdbListPage
	if err := c.getJSON(ctx, pageURL, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// seasonEpisodes fetches the episode list for one season of a show.
func (c *tmdbClient) seasonEpisodes(ctx context.Context, showID, season string) ([]json.RawMessage, error) {
	u := fmt.Sprintf("%s/tv/%s/season/%s?api_key=%s",
		c.baseURL, url.PathEscape(showID), url.PathEscape(season), c.apiKey)
	var detail tmdbSeasonDetail
	if err := c.getJSON(ctx, u, &detail); err != nil {
		return nil, err
	}
	return detail.Episodes, nil
}

// showSeasons fetches the season list from a show's detail record.
func (c *tmdbClient) showSeasons(ctx context.Context, showID string) ([]json.RawMessage, error) {
	u := fmt.Sprintf("%s/tv/%s?api_key=%s", c.baseURL, url.PathEscape(showID), c.apiKey)
	var detail tmdbShowDetail
	if err := c.getJSON(ctx, u, &detail); err != nil {
		return nil, err
	}
	return detail.Seasons, nil
}

func (c *tmdbClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.TMDBRequests.WithLabelValues("error").Inc()
		return fmt.Errorf("tmdb request %s: %w", redactKey(rawURL), err)
	}
	defer resp.Body.Close()

	metrics.TMDBRequests.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb request %s: unexpected status %s", redactKey(rawURL), resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

// redactKey strips the api_key query param from a URL so credentials never
// reach the logs.
func redactKey(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := parsed.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
		parsed.RawQuery = q.Encode()
	}
	return parsed.String()
}
