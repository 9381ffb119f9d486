package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/time/rate"

	"github.com/carver/wishforge/pkg/metrics"
)

const (
	defaultBaseURL     = "https://www.bungie.net/Platform"
	defaultContentURL  = "https://www.bungie.net"
	defaultHTTPTimeout = 120 * time.Second
	itemComponentName  = "DestinyInventoryItemDefinition"
)

// client talks to the catalog service. All requests carry the API key header
// and pass through the token-bucket limiter.
type client struct {
	hc         *http.Client
	apiKey     string
	baseURL    string
	contentURL string
	limiter    *rate.Limiter
}

func newClient(apiKey string, requestsPerSecond int) *client {
	return &client{
		hc:         &http.Client{Timeout: defaultHTTPTimeout},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		contentURL: defaultContentURL,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// manifestEnvelope is the interesting subset of /Destiny2/Manifest/.
type manifestEnvelope struct {
	Response struct {
		Version                        string                       `json:"version"`
		JSONWorldComponentContentPaths map[string]map[string]string `json:"jsonWorldComponentContentPaths"`
	} `json:"Response"`
}

// manifestItem is one raw entry of the item definition component.
type manifestItem struct {
	DisplayProperties struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"displayProperties"`
	ItemTypeDisplayName string `json:"itemTypeDisplayName"`
	ItemType            int    `json:"itemType"`
	ItemSubType         int    `json:"itemSubType"`
	Inventory           struct {
		TierTypeName string `json:"tierTypeName"`
	} `json:"inventory"`
}

// manifestInfo fetches the current manifest version and the URL path of the
// English item definition component.
func (c *client) manifestInfo(ctx context.Context) (version, componentPath string, err error) {
	body, err := c.get(ctx, c.baseURL+"/Destiny2/Manifest/")
	if err != nil {
		return "", "", err
	}

	var env manifestEnvelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return "", "", fmt.Errorf("decode manifest: %w", err)
	}

	path := env.Response.JSONWorldComponentContentPaths["en"][itemComponentName]
	if path == "" {
		return "", "", fmt.Errorf("manifest has no %s component path", itemComponentName)
	}
	return env.Response.Version, path, nil
}

// itemComponent downloads and decodes the full item definition component.
// The payload is large (hundreds of megabytes of JSON), hence sonic.
func (c *client) itemComponent(ctx context.Context, componentPath string) (map[string]manifestItem, error) {
	body, err := c.get(ctx, c.contentURL+componentPath)
	if err != nil {
		return nil, err
	}

	items := make(map[string]manifestItem)
	if err := sonic.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode item component: %w", err)
	}
	return items, nil
}

func (c *client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	defer func() {
		metrics.RecordCatalogRequestLatency(float64(time.Since(start).Milliseconds()))
	}()
	metrics.RecordCatalogRequest()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		metrics.RecordCatalogRequestError()
		return nil, err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		metrics.RecordCatalogRequestError()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordCatalogRequestError()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("catalog status %d for %s: %s", resp.StatusCode, url, string(b))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordCatalogRequestError()
		return nil, fmt.Errorf("read response from %s: %w", url, err)
	}
	return body, nil
}
