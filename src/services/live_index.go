package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/quantpulse/option-snapshot/src/models"
	"github.com/quantpulse/option-snapshot/src/utils"
)

const DefaultLiveIndexURL = "https://groww.in/v1/api/stocks_data/v1/tr_live_delayed/segment/CASH/latest_aggregated"

// LiveIndexService fetches current values for every configured index in one
// batched call per run.
type LiveIndexService struct {
	Client *utils.Client
	URL    string
}

func NewLiveIndexService(client *utils.Client) *LiveIndexService {
	return &LiveIndexService{
		Client: client,
		URL:    DefaultLiveIndexURL,
	}
}

// FetchAll requests every underlying's index code grouped by exchange segment
// and returns a flat index code -> value map.
func (s *LiveIndexService) FetchAll(ctx context.Context, underlyings []models.UnderlyingConfig) (map[string]float64, error) {
	reqMap := make(map[string]models.ExchangeAggRequestDTO)

	for _, cfg := range underlyings {
		entry, ok := reqMap[cfg.Exchange]
		if !ok {
			entry = models.ExchangeAggRequestDTO{
				PriceSymbolList: []string{},
				IndexSymbolList: []string{},
			}
		}

		entry.IndexSymbolList = append(entry.IndexSymbolList, cfg.IndexCode())
		reqMap[cfg.Exchange] = entry
	}

	payload := models.LiveIndexRequestDTO{ExchangeAggReqMap: reqMap}

	var dto models.LiveIndexResponseDTO
	if err := s.Client.PostJSON(ctx, s.URL, payload, &dto); err != nil {
		return nil, fmt.Errorf("LiveIndexService: FetchAll: %w", err)
	}

	out := make(map[string]float64)

	for _, exchange := range dto.ExchangeAggRespMap {
		for code, point := range exchange.IndexLivePointsMap {
			out[code] = point.Value
		}
	}

	log.Infof("fetched %d live index values", len(out))

	return out, nil
}
