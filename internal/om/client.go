// Package om is the HTTP client for the external order-management service,
// the system of record for order fulfillment status.
package om

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/smartiq/pim-go/internal/domain/address"
	"github.com/smartiq/pim-go/internal/domain/order"
)

// StatusError indicates the order-management service answered with a
// non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("order-management service returned %d: %s", e.Code, e.Body)
}

// Client talks to the order-management service. All calls authenticate
// with the configured service token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a Client for the given base URL and service token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// CreateOrder notifies the order-management service of a newly created
// order. The payload is the body produced by EncodeCreatePayload, stored
// verbatim in the outbox at order creation time.
func (c *Client) CreateOrder(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.token)

	return c.do(req)
}

// CancelOrder notifies the order-management service of a cancelled order.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	url := c.baseURL + "/api/orders/cancel/" + strconv.FormatInt(orderID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Authorization", c.token)

	return c.do(req)
}

func (c *Client) do(req *http.Request) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "call order-management service")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return nil
}

// EncodeCreatePayload builds the {orderId, status, address} JSON body the
// order-management service expects.
func EncodeCreatePayload(o *order.Order, addr *address.Address) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("orderId", func(e *jx.Encoder) { e.Int64(o.ID) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(o.Status)) })
		e.Field("address", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("id", func(e *jx.Encoder) { e.Int64(addr.ID) })
				e.Field("name", func(e *jx.Encoder) { e.Str(addr.Name) })
				e.Field("city", func(e *jx.Encoder) { e.Str(addr.City) })
				e.Field("district", func(e *jx.Encoder) { e.Str(addr.District) })
				e.Field("details", func(e *jx.Encoder) { e.Str(addr.Details) })
			})
		})
	})
	return e.Bytes()
}
