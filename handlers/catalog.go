package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"streamdash/models"
	catalogpkg "streamdash/services/catalog"
)

const (
	defaultPage  = 1
	defaultLimit = 40
)

type catalogService interface {
	Browse(context.Context, models.CatalogQuery) (*models.CatalogPage, error)
	SeasonEpisodes(ctx context.Context, showID, season string) ([]json.RawMessage, error)
	ShowSeasons(ctx context.Context, showID string) ([]json.RawMessage, error)
}

var _ catalogService = (*catalogpkg.Service)(nil)

type CatalogHandler struct {
	Service catalogService
}

func NewCatalogHandler(s catalogService) *CatalogHandler {
	return &CatalogHandler{Service: s}
}

// Search serves the aggregation endpoint. With id and type=tv it short-circuits
// into the TV detail sub-modes before any of the list flow runs; otherwise it
// runs the full browse.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	id := strings.TrimSpace(params.Get("id"))
	mediaType := paramOr(params.Get("type"), "all")

	if id != "" && mediaType == "tv" {
		if season := strings.TrimSpace(params.Get("season")); season != "" {
			episodes, err := h.Service.SeasonEpisodes(r.Context(), id, season)
			if err != nil {
				writeFetchError(w)
				return
			}
			writeJSON(w, map[string][]json.RawMessage{"episodes": episodes})
			return
		}
		if strings.ToLower(strings.TrimSpace(params.Get("include_episodes"))) == "true" {
			seasons, err := h.Service.ShowSeasons(r.Context(), id)
			if err != nil {
				writeFetchError(w)
				return
			}
			writeJSON(w, map[string][]json.RawMessage{"seasons": seasons})
			return
		}
	}

	q := models.CatalogQuery{
		Query:    paramOr(params.Get("query"), "popular"),
		Type:     mediaType,
		Provider: paramOr(params.Get("provider"), "all"),
		Genre:    paramOr(params.Get("genre"), "0"),
		Page:     positiveIntOr(params.Get("page"), defaultPage),
		Limit:    positiveIntOr(params.Get("limit"), defaultLimit),
	}

	page, err := h.Service.Browse(r.Context(), q)
	if err != nil {
		writeFetchError(w)
		return
	}

	writeJSON(w, page)
}

func paramOr(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

// positiveIntOr parses a numeric query param, substituting the fallback for
// anything unparseable or non-positive.
func positiveIntOr(value string, fallback int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

// writeFetchError reports any upstream failure with a single generic message.
// The specific cause is already logged server-side and never reaches callers.
func writeFetchError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "Failed to fetch data"})
}
