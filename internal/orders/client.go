package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/farm2home/storefront-backend/pkg/config"
	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
)

const maxOrdersBody = 4 << 20

// Client fetches order history from the upstream orders API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds an orders client from config.
func NewClient(cfg config.OrdersConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("orders base url required")
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

// FetchOrders returns the customer's order history, newest first as the
// upstream serves it. The upstream answers 404 when the session is no longer
// recognized, so that status surfaces as an authorization failure rather than
// an empty history.
func (c *Client) FetchOrders(ctx context.Context, customerID string) ([]Order, error) {
	endpoint := c.baseURL + "/orders/?customer_id=" + url.QueryEscape(customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build orders request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch orders")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer session not recognized")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders returned non-success status").
			WithDetails(map[string]any{"status": resp.StatusCode})
	}

	var list []Order
	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxOrdersBody))
	if err := decoder.Decode(&list); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order list")
	}
	return list, nil
}
