package catalog

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"streamdash/models"
)

func planService() *Service {
	return NewService("k", "https://example.test/3", http.DefaultClient)
}

func browseQuery(query, mediaType, provider, genre string, page int) models.CatalogQuery {
	return models.CatalogQuery{Query: query, Type: mediaType, Provider: provider, Genre: genre, Page: page, Limit: 40}
}

func TestPlanEndpointPrecedence(t *testing.T) {
	svc := planService()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		query    models.CatalogQuery
		wantPath string
		wantIn   []string
		wantOut  []string
	}{
		{
			name:     "popular all providers uses the popular list",
			query:    browseQuery("popular", "movie", "all", "0", 1),
			wantPath: "/3/movie/popular",
		},
		{
			name:     "popular provider -1 uses now playing",
			query:    browseQuery("popular", "movie", "-1", "0", 1),
			wantPath: "/3/movie/now_playing",
		},
		{
			name:     "popular with provider uses discover",
			query:    browseQuery("popular", "movie", "8", "0", 1),
			wantPath: "/3/discover/movie",
			wantIn:   []string{"with_watch_providers=8", "watch_region=US", "sort_by=release_date.desc", "with_original_language=en", "region=US"},
			wantOut:  []string{"with_genres"},
		},
		{
			name:     "popular with provider and genre adds the genre filter",
			query:    browseQuery("popular", "movie", "8", "28", 1),
			wantPath: "/3/discover/movie",
			wantIn:   []string{"with_watch_providers=8", "with_genres=28"},
		},
		{
			name:     "upcoming uses the release window and ignores provider and genre",
			query:    browseQuery("upcoming", "movie", "8", "28", 1),
			wantPath: "/3/discover/movie",
			wantIn:   []string{"primary_release_date.gte=2024-06-01", "primary_release_date.lte=2024-07-01", "sort_by=primary_release_date.asc"},
			wantOut:  []string{"with_watch_providers", "with_genres"},
		},
		{
			name:     "anything else is a free-text search",
			query:    browseQuery("Matrix", "movie", "all", "0", 1),
			wantPath: "/3/search/movie",
			wantIn:   []string{"query=Matrix"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := svc.plan(tt.query, now)
			require.NotEmpty(t, calls)

			parsed, err := url.Parse(calls[0].url)
			require.NoError(t, err)
			require.Equal(t, tt.wantPath, parsed.Path)
			for _, fragment := range tt.wantIn {
				require.Contains(t, calls[0].url, fragment)
			}
			for _, fragment := range tt.wantOut {
				require.NotContains(t, calls[0].url, fragment)
			}
		})
	}
}

func TestPlanSeriesCategoryPaths(t *testing.T) {
	svc := planService()
	now := time.Now()

	calls := svc.plan(browseQuery("popular", "series", "all", "0", 1), now)
	require.Len(t, calls, 2)
	for _, call := range calls {
		require.Equal(t, models.MediaTypeSeries, call.media)
		require.Contains(t, call.url, "/tv/popular")
	}

	calls = svc.plan(browseQuery("popular", "tv", "-1", "0", 1), now)
	require.Len(t, calls, 2)
	require.Contains(t, calls[0].url, "/tv/airing_today")

	calls = svc.plan(browseQuery("popular", "tv", "8", "18", 1), now)
	require.Contains(t, calls[0].url, "/discover/tv")
	require.Contains(t, calls[0].url, "sort_by=first_air_date.desc")
	require.Contains(t, calls[0].url, "with_genres=18")
}

func TestPlanPageFanOut(t *testing.T) {
	svc := planService()
	now := time.Now()

	// Two categories, two pages each.
	calls := svc.plan(browseQuery("popular", "all", "all", "0", 1), now)
	require.Len(t, calls, 4)
	require.Contains(t, calls[0].url, "page=1")
	require.Contains(t, calls[1].url, "page=2")

	// The second page is capped at the upstream maximum.
	calls = svc.plan(browseQuery("popular", "movie", "all", "0", 5), now)
	require.Len(t, calls, 1)
	require.Contains(t, calls[0].url, "page=5")

	// Past the cap there is nothing to fetch.
	calls = svc.plan(browseQuery("popular", "movie", "all", "0", 6), now)
	require.Empty(t, calls)
}

func TestPlanSearchQueryIsEscaped(t *testing.T) {
	svc := planService()

	calls := svc.plan(browseQuery("spirited away & more", "movie", "all", "0", 1), time.Now())
	require.NotEmpty(t, calls)
	require.Contains(t, calls[0].url, "query="+url.QueryEscape("spirited away & more"))
	require.False(t, strings.Contains(calls[0].url, "query=spirited away"))
}
