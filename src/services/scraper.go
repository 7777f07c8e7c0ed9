package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/quantpulse/option-snapshot/src/models"
	"github.com/quantpulse/option-snapshot/src/utils"
)

// expiry labels and strike values render inside nodes with this class
const chainTextSelector = ".bodyBaseHeavy"

var strikeRegex = regexp.MustCompile(`^\d{1,3}(,\d{3})+$`)

// Scraper extracts expiry labels and strike prices from an underlying's option
// chain page. The markup is an unstable best-effort source: tokens that do not
// match the expected lexical shapes are dropped, never surfaced as errors.
type Scraper struct {
	Client *utils.Client
	Retry  utils.RetryPolicy
}

func NewScraper(client *utils.Client) *Scraper {
	return &Scraper{
		Client: client,
		Retry:  utils.RetryPolicy{MaxAttempts: 3, Delay: 2 * time.Second},
	}
}

func (s *Scraper) fetchHTML(ctx context.Context, url string) (string, error) {
	var body []byte

	err := s.Retry.Do(fmt.Sprintf("fetchHTML %s", url), func() error {
		var fetchErr error
		body, fetchErr = s.Client.Get(ctx, url)
		return fetchErr
	})

	if err != nil {
		return "", fmt.Errorf("Scraper: fetchHTML: %w", err)
	}

	return string(body), nil
}

// extractTexts collects the trimmed text of every matching node in document
// order.
func extractTexts(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("extractTexts: failed to parse html: %w", err)
	}

	var texts []string

	doc.Find(chainTextSelector).Each(func(_ int, sel *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(sel.Text()))
	})

	return texts, nil
}

// DiscoverExpiries parses the underlying's page for two-token "day month"
// labels and returns them in first-seen order, deduplicated by display text.
// Labels with an unrecognized month token are silently dropped. The retention
// policy (sort, cap, recency window) is applied by the caller.
func (s *Scraper) DiscoverExpiries(ctx context.Context, cfg models.UnderlyingConfig, now time.Time) ([]*models.ExpiryDescriptor, error) {
	html, err := s.fetchHTML(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("Scraper: DiscoverExpiries: %s: %w", cfg.Name, err)
	}

	texts, err := extractTexts(html)
	if err != nil {
		return nil, fmt.Errorf("Scraper: DiscoverExpiries: %s: %w", cfg.Name, err)
	}

	seen := make(map[string]bool, len(texts))
	var expiries []*models.ExpiryDescriptor

	for _, text := range texts {
		if seen[text] {
			continue
		}

		seen[text] = true

		if exp, ok := models.ParseExpiryLabel(text, now); ok {
			expiries = append(expiries, exp)
		}
	}

	return expiries, nil
}

// DiscoverStrikes parses the expiry-specific page for thousands-grouped
// integer tokens (e.g. 24,350) and returns the distinct strikes sorted
// ascending.
func (s *Scraper) DiscoverStrikes(ctx context.Context, cfg models.UnderlyingConfig, expiryKey string) ([]int, error) {
	url := fmt.Sprintf("%s?expiry=%s", cfg.URL, expiryKey)

	html, err := s.fetchHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("Scraper: DiscoverStrikes: %s %s: %w", cfg.Name, expiryKey, err)
	}

	texts, err := extractTexts(html)
	if err != nil {
		return nil, fmt.Errorf("Scraper: DiscoverStrikes: %s %s: %w", cfg.Name, expiryKey, err)
	}

	set := make(map[int]bool)

	for _, text := range texts {
		if !strikeRegex.MatchString(text) {
			continue
		}

		strike, err := strconv.Atoi(strings.ReplaceAll(text, ",", ""))
		if err != nil {
			continue
		}

		set[strike] = true
	}

	strikes := make([]int, 0, len(set))
	for strike := range set {
		strikes = append(strikes, strike)
	}

	sort.Ints(strikes)

	return strikes, nil
}
