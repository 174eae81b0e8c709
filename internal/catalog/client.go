package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/farm2home/storefront-backend/pkg/config"
	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
)

const maxProductsBody = 4 << 20

// Client fetches the product list from the upstream catalog API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a catalog client from config.
func NewClient(cfg config.CatalogConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("catalog base url required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// FetchProducts returns the full active product list. A non-success status or a
// malformed body surfaces as a dependency error; the caller decides whether that
// degrades to "no products available".
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products/", nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch products")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog returned non-success status").
			WithDetails(map[string]any{"status": resp.StatusCode})
	}

	var products []Product
	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxProductsBody))
	if err := decoder.Decode(&products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode product list")
	}
	return products, nil
}
