package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/jsonschema-go/jsonschema"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/stylesphere/stylesphere/internal/log"
)

// Sentinel errors for catalog fetching. Check with errors.Is().
var (
	// ErrUnavailable indicates the catalog endpoint was unreachable or
	// returned a non-success status.
	ErrUnavailable = errors.New("catalog unavailable")

	// ErrDecode indicates the payload could not be decoded into the
	// Product shape.
	ErrDecode = errors.New("catalog payload malformed")
)

// maxBodyBytes caps the catalog response body (10 MB).
const maxBodyBytes = 10 * 1024 * 1024

// Client fetches the product list from a remote catalog endpoint.
type Client struct {
	url    string
	http   *http.Client
	schema *jsonschema.Resolved
	logger log.Logger
}

// NewClient creates a catalog client for the given endpoint URL.
//
// The HTTP transport is wrapped with otelhttp for trace propagation.
// No client-side timeout is set: cancellation is the caller's context.
func NewClient(url string, logger log.Logger) (*Client, error) {
	if url == "" {
		return nil, errors.New("catalog URL is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	// Product schema derived once; every fetched record is validated
	// against it so partial records fail loudly instead of decoding to
	// zero values.
	schema, err := jsonschema.For[Product](nil)
	if err != nil {
		return nil, fmt.Errorf("deriving product schema: %w", err)
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolving product schema: %w", err)
	}

	return &Client{
		url: url,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		schema: resolved,
		logger: logger,
	}, nil
}

// Fetch retrieves the product list. Single best-effort call: any
// transport failure or non-success status wraps ErrUnavailable, any
// body that does not decode into the Product shape wraps ErrDecode.
func (c *Client) Fetch(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrUnavailable, err)
	}

	products, err := c.decode(body)
	if err != nil {
		return nil, err
	}

	c.logger.Info("catalog fetched", "products", len(products))
	return products, nil
}

// decode parses and schema-validates the catalog payload.
func (c *Client) decode(body []byte) ([]Product, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: expected JSON array: %w", ErrDecode, err)
	}

	products := make([]Product, 0, len(raw))
	for i, rec := range raw {
		var instance any
		if err := json.Unmarshal(rec, &instance); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrDecode, i, err)
		}
		if err := c.schema.Validate(instance); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrDecode, i, err)
		}

		var p Product
		if err := json.Unmarshal(rec, &p); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrDecode, i, err)
		}
		products = append(products, p)
	}

	return products, nil
}
