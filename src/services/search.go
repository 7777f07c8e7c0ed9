package services

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/quantpulse/option-snapshot/src/models"
	"github.com/quantpulse/option-snapshot/src/utils"
)

const DefaultSearchURL = "https://groww.in/v1/api/search/v3/query/global/st_p_query"

var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

// SearchResolver resolves a free-text trading symbol to a venue-specific
// identifier via the venue's full-text search. Matching is heuristic
// best-effort; the result is advisory, not exact.
type SearchResolver struct {
	Client   *utils.Client
	URL      string
	PageSize int
}

func NewSearchResolver(client *utils.Client) *SearchResolver {
	return &SearchResolver{
		Client:   client,
		URL:      DefaultSearchURL,
		PageSize: 6,
	}
}

func normalizeSearchText(text string) string {
	return nonAlphanumericRegex.ReplaceAllString(strings.ToLower(text), "")
}

// scoreCandidate ranks a candidate against the normalized query: +100 for a
// substring match, +20 when a call query hits a "call" candidate, +20
// symmetric for puts.
func scoreCandidate(queryNorm string, candidate string) int {
	candidateNorm := normalizeSearchText(candidate)

	score := 0

	if strings.Contains(candidateNorm, queryNorm) {
		score += 100
	}

	if strings.Contains(candidateNorm, "call") && strings.Contains(queryNorm, "ce") {
		score += 20
	}

	if strings.Contains(candidateNorm, "put") && strings.Contains(queryNorm, "pe") {
		score += 20
	}

	return score
}

// Resolve issues one search query and picks the highest-scoring candidate,
// ties broken by first-seen order. Returns nil without error when the result
// set is empty.
func (r *SearchResolver) Resolve(ctx context.Context, tradingSymbol string) (*models.VenueIdentifier, error) {
	query := fmt.Sprintf("%s?page=0&size=%d&web=true&query=%s", r.URL, r.PageSize, url.QueryEscape(tradingSymbol))

	var dto models.SearchResponseDTO
	if err := r.Client.GetJSON(ctx, query, &dto); err != nil {
		return nil, fmt.Errorf("SearchResolver: Resolve: %w", err)
	}

	if len(dto.Data.Content) == 0 {
		return nil, nil
	}

	queryNorm := normalizeSearchText(tradingSymbol)

	var best *models.SearchContentDTO
	bestScore := -1

	for i := range dto.Data.Content {
		item := &dto.Data.Content[i]
		combined := fmt.Sprintf("%s %s", item.SearchID, item.Title)

		if score := scoreCandidate(queryNorm, combined); score > bestScore {
			best = item
			bestScore = score
		}
	}

	return &models.VenueIdentifier{
		ID:    best.ID,
		Title: best.Title,
	}, nil
}
