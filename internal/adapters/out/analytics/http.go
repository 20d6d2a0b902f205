package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"checkout/internal/core/domain/model/order"
)

const defaultHTTPTimeout = 5 * time.Second

// HTTPAnalytics posts events as JSON to a collector endpoint.
type HTTPAnalytics struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewHTTPAnalytics uses a client with a 5s timeout when client is nil.
func NewHTTPAnalytics(endpoint string, client *http.Client, logger *slog.Logger) *HTTPAnalytics {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTPAnalytics{
		endpoint: endpoint,
		client:   client,
		logger:   logger.With("component", "http_analytics"),
	}
}

func (a *HTTPAnalytics) Track(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(orderDone(o))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build analytics request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("post analytics event: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post analytics event: unexpected status %d", resp.StatusCode)
	}

	a.logger.DebugContext(ctx, "Analytics event posted", "order_id", o.ID().String())
	return nil
}
