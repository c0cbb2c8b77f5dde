// Package payorder is a client for the external payment-order provider. It
// creates payment orders, polls their state and captures final funds.
package payorder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoRedirect is returned when the provider accepts a payment order but
// omits the redirect operation the checkout flow needs.
var ErrNoRedirect = errors.New("payorder: response contains no redirect operation")

type Options struct {
	BaseURL string
	Token   string
	PayeeID string
	Timeout time.Duration
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	payeeID    string
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		token:      opts.Token,
		payeeID:    opts.PayeeID,
	}
}

func (c *Client) PayeeID() string {
	return c.payeeID
}

type URLs struct {
	CompleteURL string `json:"completeUrl"`
	CancelURL   string `json:"cancelUrl"`
	CallbackURL string `json:"callbackUrl"`
}

type PayeeInfo struct {
	PayeeID        string `json:"payeeId"`
	PayeeReference string `json:"payeeReference"`
}

// Request describes a new payment order. Amounts are in minor currency
// units.
type Request struct {
	Operation               string    `json:"operation"`
	Currency                string    `json:"currency"`
	Amount                  int64     `json:"amount"`
	VatAmount               int64     `json:"vatAmount"`
	Description             string    `json:"description"`
	GenerateRecurrenceToken bool      `json:"generateRecurrenceToken,omitempty"`
	URLs                    URLs      `json:"urls"`
	PayeeInfo               PayeeInfo `json:"payeeInfo"`
}

type Operation struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method"`
}

type envelope struct {
	PaymentOrder struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"paymentOrder"`
	Operations []Operation `json:"operations"`
}

type CreateResult struct {
	// ID is the provider's resource path for the payment order.
	ID          string
	RedirectURL string
}

// Create registers a payment order and returns its id and checkout redirect.
func (c *Client) Create(ctx context.Context, req Request) (*CreateResult, error) {
	if req.Operation == "" {
		req.Operation = "Purchase"
	}
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/psp/paymentorders", map[string]Request{"paymentorder": req}, &env); err != nil {
		return nil, err
	}

	result := &CreateResult{ID: env.PaymentOrder.ID}
	for _, op := range env.Operations {
		if op.Rel == "redirect-checkout" || op.Rel == "redirect-paymentorder" {
			result.RedirectURL = op.Href
			break
		}
	}
	if result.RedirectURL == "" {
		return nil, ErrNoRedirect
	}
	return result, nil
}

// GetStatus fetches the current state of a payment order by its resource
// path ("Initialized", "Paid", "Failed", ...).
func (c *Client) GetStatus(ctx context.Context, id string) (string, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, id, nil, &env); err != nil {
		return "", err
	}
	return env.PaymentOrder.Status, nil
}

// Capture draws the final funds of a tokenized payment order.
func (c *Client) Capture(ctx context.Context, id string, amount, vatAmount int64, payeeReference string) error {
	body := map[string]interface{}{
		"transaction": map[string]interface{}{
			"amount":         amount,
			"vatAmount":      vatAmount,
			"payeeReference": payeeReference,
			"description":    "Capture",
		},
	}
	return c.do(ctx, http.MethodPost, id+"/captures", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("payorder: %s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
