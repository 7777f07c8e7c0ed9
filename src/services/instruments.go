package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	log "github.com/sirupsen/logrus"

	"github.com/quantpulse/option-snapshot/src/models"
	"github.com/quantpulse/option-snapshot/src/utils"
)

const DefaultInstrumentsURL = "https://assets.upstox.com/market-quote/instruments/exchange/complete.json.gz"

// InstrumentCache downloads the bulk instrument dataset once per trading day
// and keeps the decompressed JSON on disk. Reruns on the same day read the
// cached file instead of re-downloading.
type InstrumentCache struct {
	URL     string
	Dir     string
	Timeout time.Duration
}

func NewInstrumentCache(dir string) *InstrumentCache {
	return &InstrumentCache{
		URL:     DefaultInstrumentsURL,
		Dir:     dir,
		Timeout: 60 * time.Second,
	}
}

// Fetch returns the day's instrument list, downloading and decompressing the
// dataset when no cache file exists for the date.
func (c *InstrumentCache) Fetch(ctx context.Context, now time.Time) ([]models.Instrument, error) {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("InstrumentCache: Fetch: failed to create %s: %w", c.Dir, err)
	}

	dateStr := now.In(utils.IST).Format("20060102")
	jsonPath := filepath.Join(c.Dir, fmt.Sprintf("complete_%s.json", dateStr))

	if _, err := os.Stat(jsonPath); err == nil {
		return c.readCached(jsonPath)
	}

	gzPath := jsonPath + ".gz"
	if err := c.download(ctx, gzPath); err != nil {
		return nil, fmt.Errorf("InstrumentCache: Fetch: %w", err)
	}

	instruments, err := c.extract(gzPath, jsonPath)
	if err != nil {
		return nil, fmt.Errorf("InstrumentCache: Fetch: %w", err)
	}

	return instruments, nil
}

func (c *InstrumentCache) readCached(jsonPath string) ([]models.Instrument, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("InstrumentCache: readCached: failed to read %s: %w", jsonPath, err)
	}

	var instruments []models.Instrument
	if err := json.Unmarshal(data, &instruments); err != nil {
		return nil, fmt.Errorf("InstrumentCache: readCached: failed to decode %s: %w", jsonPath, err)
	}

	log.Infof("loaded %d instruments from cache %s", len(instruments), jsonPath)

	return instruments, nil
}

func (c *InstrumentCache) download(ctx context.Context, gzPath string) error {
	// stale archive from an interrupted run
	if err := os.Remove(gzPath); err == nil {
		log.Warnf("removed stale archive %s", gzPath)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return fmt.Errorf("download: failed to create request: %w", err)
	}

	client := http.Client{Timeout: c.Timeout}

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download: request failed: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("download: http status %v", res.Status)
	}

	out, err := os.Create(gzPath)
	if err != nil {
		return fmt.Errorf("download: failed to create %s: %w", gzPath, err)
	}

	defer out.Close()

	if _, err := io.Copy(out, res.Body); err != nil {
		return fmt.Errorf("download: failed to write %s: %w", gzPath, err)
	}

	return nil
}

func (c *InstrumentCache) extract(gzPath string, jsonPath string) ([]models.Instrument, error) {
	in, err := os.Open(gzPath)
	if err != nil {
		return nil, fmt.Errorf("extract: failed to open %s: %w", gzPath, err)
	}

	defer in.Close()

	gz, err := gzip.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("extract: failed to open gzip stream: %w", err)
	}

	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("extract: failed to decompress %s: %w", gzPath, err)
	}

	var instruments []models.Instrument
	if err := json.Unmarshal(data, &instruments); err != nil {
		return nil, fmt.Errorf("extract: failed to decode instruments: %w", err)
	}

	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("extract: failed to write %s: %w", jsonPath, err)
	}

	if err := os.Remove(gzPath); err != nil {
		log.Warnf("failed to remove archive %s: %v", gzPath, err)
	}

	log.Infof("downloaded %d instruments to %s", len(instruments), jsonPath)

	return instruments, nil
}
