package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type RapiraProvider struct {
	baseURL string
	client  *http.Client
}

type RapiraItem struct {
	Price  float64 `json:"price"`
	Amount float64 `json:"amount"`
}

type RapiraResponse struct {
	Ask struct {
		Direction    string       `json:"direction"`
		Symbol       string       `json:"symbol"`
		MaxAmount    float64      `json:"max_amount"`
		MinAmount    float64      `json:"min_amount"`
		HighestPrice float64      `json:"highest_price"`
		LowestPrice  float64      `json:"lowest_price"`
		Items        []RapiraItem `json:"items"`
	}
}

// orderBookDepth is how many top ask positions are averaged into the rate.
const orderBookDepth = 5

func NewRapiraProvider(baseURL string, timeout time.Duration) *RapiraProvider {
	return &RapiraProvider{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (r *RapiraProvider) Name() string {
	return "rapira"
}

func (r *RapiraProvider) GetRate(ctx context.Context, pair string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/market/exchange-plate-mini?symbol=%s", r.baseURL, pair)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get rates from Rapira: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rapira API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read response body: %w", err)
	}

	var rapiraResponse RapiraResponse
	if err := json.Unmarshal(body, &rapiraResponse); err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse Rapira response: %w", err)
	}

	return r.calculateAveragePrice(rapiraResponse.Ask.Items, orderBookDepth)
}

func (r *RapiraProvider) calculateAveragePrice(items []RapiraItem, depth int) (decimal.Decimal, error) {
	if len(items) == 0 {
		return decimal.Zero, fmt.Errorf("no items in order book")
	}

	if depth > len(items) {
		depth = len(items)
	}

	total := 0.0
	for i := 0; i < depth; i++ {
		total += items[i].Price
	}

	return decimal.NewFromFloat(total / float64(depth)), nil
}
