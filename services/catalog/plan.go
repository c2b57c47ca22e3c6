package catalog

import (
	"fmt"
	"net/url"
	"time"

	"streamdash/models"
)

// maxUpstreamPage caps how deep pagination reaches into the upstream lists.
const maxUpstreamPage = 5

// category describes one TMDB content kind and the endpoint paths / date
// fields specific to it. Movies and series use different date field names in
// both discover filters and sort keys.
type category struct {
	media        models.MediaType
	popularPath  string // plain popularity list
	latestPath   string // now playing / airing today
	discoverPath string
	searchPath   string
	sortField    string // date field used for provider-filtered discover sort
	windowField  string // date field used for the upcoming release window
}

var (
	movieCategory = category{
		media:        models.MediaTypeMovie,
		popularPath:  "movie/popular",
		latestPath:   "movie/now_playing",
		discoverPath: "discover/movie",
		searchPath:   "search/movie",
		sortField:    "release_date",
		windowField:  "primary_release_date",
	}
	seriesCategory = category{
		media:        models.MediaTypeSeries,
		popularPath:  "tv/popular",
		latestPath:   "tv/airing_today",
		discoverPath: "discover/tv",
		searchPath:   "search/tv",
		sortField:    "first_air_date",
		windowField:  "first_air_date",
	}
)

// upstreamCall is one planned outbound request, tagged with the category it
// belongs to so normalization can assign the right media type.
type upstreamCall struct {
	media models.MediaType
	url   string
}

// plan derives the full set of upstream URLs for a browse query: for each
// selected category, pages Page through min(Page+1, maxUpstreamPage). A page
// past the cap produces no calls for that category.
func (s *Service) plan(q models.CatalogQuery, now time.Time) []upstreamCall {
	var categories []category
	if q.Type == "all" || q.Type == "movie" {
		categories = append(categories, movieCategory)
	}
	if q.Type == "all" || q.Type == "series" || q.Type == "tv" {
		categories = append(categories, seriesCategory)
	}

	var calls []upstreamCall
	for _, cat := range categories {
		lastPage := q.Page + 1
		if lastPage > maxUpstreamPage {
			lastPage = maxUpstreamPage
		}
		for page := q.Page; page <= lastPage; page++ {
			calls = append(calls, upstreamCall{
				media: cat.media,
				url:   s.categoryURL(q, cat, page, now),
			})
		}
	}
	return calls
}

// categoryURL selects the upstream endpoint for one category and page.
// Precedence: popular list, latest list, provider discover, upcoming window,
// free-text search. Provider and genre filters apply only to the popular
// branch; the upcoming window deliberately ignores both.
func (s *Service) categoryURL(q models.CatalogQuery, cat category, page int, now time.Time) string {
	base := s.tmdb.baseURL
	key := s.tmdb.apiKey

	switch {
	case q.Query == "popular" && q.Provider == "all":
		return fmt.Sprintf("%s/%s?api_key=%s&page=%d", base, cat.popularPath, key, page)

	case q.Query == "popular" && q.Provider == "-1":
		return fmt.Sprintf("%s/%s?api_key=%s&page=%d", base, cat.latestPath, key, page)

	case q.Query == "popular":
		u := fmt.Sprintf("%s/%s?api_key=%s&with_watch_providers=%s&watch_region=US&sort_by=%s.desc&page=%d&with_original_language=en&region=US",
			base, cat.discoverPath, key, url.QueryEscape(q.Provider), cat.sortField, page)
		if q.Genre != "0" {
			u += "&with_genres=" + url.QueryEscape(q.Genre)
		}
		return u

	case q.Query == "upcoming":
		today := now.Format("2006-01-02")
		windowEnd := now.Add(30 * 24 * time.Hour).Format("2006-01-02")
		return fmt.Sprintf("%s/%s?api_key=%s&%s.gte=%s&%s.lte=%s&sort_by=%s.asc&page=%d&with_original_language=en&region=US",
			base, cat.discoverPath, key, cat.windowField, today, cat.windowField, windowEnd, cat.windowField, page)

	default:
		return fmt.Sprintf("%s/%s?api_key=%s&query=%s&page=%d",
			base, cat.searchPath, key, url.QueryEscape(q.Query), page)
	}
}
