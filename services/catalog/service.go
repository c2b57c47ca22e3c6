package catalog

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/sourcegraph/conc/pool"

	"streamdash/models"
)

// defaultReleaseDate is substituted when upstream omits the release/air date.
// It sorts after every real date in the newest-first ordering.
const defaultReleaseDate = "1900-01-01"

// Service aggregates TMDB list, discover, and search endpoints into a single
// normalized catalog. It is stateless: every invocation is independent, and
// the only side effects are the outbound HTTP calls themselves.
type Service struct {
	tmdb *tmdbClient
	now  func() time.Time
}

func NewService(apiKey, baseURL string, httpClient *http.Client) *Service {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Service{
		tmdb: newTMDBClient(apiKey, baseURL, httpClient),
		now:  time.Now,
	}
}

// Browse executes the full list/search flow: plan the upstream calls, issue
// them concurrently, then merge, dedupe, sort, and truncate the combined
// results. A single upstream failure fails the whole request; there is no
// partial-result tolerance and in-flight calls are never cancelled early.
func (s *Service) Browse(ctx context.Context, q models.CatalogQuery) (*models.CatalogPage, error) {
	calls := s.plan(q, s.now())
	log.Printf("[catalog] browse query=%q type=%s provider=%s genre=%s page=%d limit=%d calls=%d",
		q.Query, q.Type, q.Provider, q.Genre, q.Page, q.Limit, len(calls))

	// One slot per call keeps the merge in plan order without any locking.
	pages := make([][]models.CatalogItem, len(calls))

	p := pool.New().WithErrors()
	for i, call := range calls {
		i, call := i, call
		p.Go(func() error {
			page, err := s.tmdb.fetchPage(ctx, call.url)
			if err != nil {
				return err
			}
			pages[i] = normalizeItems(page.Results, call.media)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		log.Printf("[catalog] browse fetch failed query=%q: %v", q.Query, err)
		return nil, err
	}

	merged := make([]models.CatalogItem, 0)
	for _, page := range pages {
		merged = append(merged, page...)
	}

	unique := dedupeByID(merged)

	// Search results stay in upstream relevance order; only the popular
	// listing is re-sorted newest first.
	if q.Query == "popular" {
		sort.SliceStable(unique, func(i, j int) bool {
			return unique[i].ReleaseDate > unique[j].ReleaseDate
		})
	}

	results := unique
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}

	return &models.CatalogPage{
		Results:      results,
		TotalResults: len(unique),
		Page:         q.Page,
		Limit:        q.Limit,
	}, nil
}

// SeasonEpisodes returns one season's episode list exactly as TMDB serves it.
func (s *Service) SeasonEpisodes(ctx context.Context, showID, season string) ([]json.RawMessage, error) {
	episodes, err := s.tmdb.seasonEpisodes(ctx, showID, season)
	if err != nil {
		log.Printf("[catalog] season episodes fetch failed id=%s season=%s: %v", showID, season, err)
		return nil, err
	}
	if episodes == nil {
		episodes = []json.RawMessage{}
	}
	return episodes, nil
}

// ShowSeasons returns a show's season list with the zero-indexed specials
// season removed. Each season object passes through unmodified.
func (s *Service) ShowSeasons(ctx context.Context, showID string) ([]json.RawMessage, error) {
	seasons, err := s.tmdb.showSeasons(ctx, showID)
	if err != nil {
		log.Printf("[catalog] show seasons fetch failed id=%s: %v", showID, err)
		return nil, err
	}

	filtered := make([]json.RawMessage, 0, len(seasons))
	for _, raw := range seasons {
		var peek struct {
			SeasonNumber int `json:"season_number"`
		}
		if err := json.Unmarshal(raw, &peek); err != nil {
			continue
		}
		if peek.SeasonNumber > 0 {
			filtered = append(filtered, raw)
		}
	}
	return filtered, nil
}

func normalizeItems(items []tmdbListItem, media models.MediaType) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		out = append(out, normalizeItem(item, media))
	}
	return out
}

// normalizeItem maps one raw TMDB entry to the front-end shape. Movies and
// series name their title and date fields differently upstream.
func normalizeItem(item tmdbListItem, media models.MediaType) models.CatalogItem {
	title := item.Title
	date := item.ReleaseDate
	if media == models.MediaTypeSeries {
		title = item.Name
		date = item.FirstAirDate
	}

	genre := "Unknown"
	if len(item.GenreIDs) > 0 {
		genre = GenreName(item.GenreIDs[0])
	}

	image := placeholderImage
	if item.PosterPath != "" {
		image = tmdbImageBaseURL + item.PosterPath
	}

	releaseDate := date
	if releaseDate == "" {
		releaseDate = defaultReleaseDate
	}

	return models.CatalogItem{
		ID:          strconv.FormatInt(item.ID, 10),
		Title:       title,
		Description: item.Overview,
		Rating:      item.VoteAverage / 2,
		Genre:       genre,
		Year:        releaseYear(date),
		Image:       image,
		Type:        media,
		ReleaseDate: releaseDate,
	}
}

// releaseYear extracts the year from a YYYY-MM-DD date. An absent or
// unparseable date yields the zero year, which serializes as "Unknown".
func releaseYear(date string) models.Year {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return models.Year(year)
}

// dedupeByID keeps the first occurrence of each id, preserving relative
// order. Identity is the normalized id string only, never the media type.
func dedupeByID(items []models.CatalogItem) []models.CatalogItem {
	seen := make(map[string]struct{}, len(items))
	unique := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}
