package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dataweaver-be/pkg/market"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// Client queries the SerpAPI google_shopping engine. A client without an API
// key is valid to construct; callers check HasCredential before searching.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

type shoppingItem struct {
	Title   any `json:"title"`
	Price   any `json:"price"`
	Rating  any `json:"rating"`
	Reviews any `json:"reviews"`
	Source  any `json:"source"`
}

type shoppingResponse struct {
	ShoppingResults []shoppingItem `json:"shopping_results"`
	Error           string         `json:"error"`
}

// SearchShopping issues a single shopping search bounded by maxResults.
// Transport errors, non-200 statuses, API-level errors and malformed bodies
// all come back as plain errors; there are no retries.
func (c *Client) SearchShopping(ctx context.Context, query string, maxResults int) ([]market.RawItem, error) {
	params := url.Values{}
	params.Add("engine", "google_shopping")
	params.Add("q", query)
	params.Add("api_key", c.apiKey)
	params.Add("num", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shopping search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shopping search status %d: %s", resp.StatusCode, string(body))
	}

	var result shoppingResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("shopping search api error: %s", result.Error)
	}

	items := make([]market.RawItem, 0, len(result.ShoppingResults))
	for _, it := range result.ShoppingResults {
		items = append(items, market.RawItem{
			Title:   it.Title,
			Price:   it.Price,
			Rating:  it.Rating,
			Reviews: it.Reviews,
			Source:  it.Source,
		})
	}
	return items, nil
}
