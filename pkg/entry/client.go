package entry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/pkg/apperror"
)

// Customer is the wire shape of a customer as this package sees it.
type Customer struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone *string   `json:"phone,omitempty"`
}

// Item is the wire shape of an inventory item.
type Item struct {
	ID       uuid.UUID `json:"id"`
	Quantity int       `json:"quantity"`
}

// API is the slice of the server this package talks to. The concrete Client
// implements it; tests substitute fakes.
type API interface {
	SearchCustomers(ctx context.Context, sess Session, query string, limit int) ([]Customer, error)
	FindOrCreateCustomer(ctx context.Context, sess Session, name string, phone *string) (*Customer, error)
	CreateTransaction(ctx context.Context, sess Session, req TransactionRequest) error
	GenerateQuotation(ctx context.Context, sess Session, req QuotationRequest) (*QuotationResult, error)
	AdjustItemQuantity(ctx context.Context, sess Session, itemID uuid.UUID, operation string, amount int) (*Item, error)
}

// TransactionRequest is the payload for recording a transaction.
type TransactionRequest struct {
	CustomerID    uuid.UUID `json:"customer_id"`
	Type          string    `json:"type"`
	TotalAmount   float64   `json:"total_amount"`
	Payable       float64   `json:"payable"`
	Receivable    float64   `json:"receivable"`
	Category      *string   `json:"category,omitempty"`
	PaymentMethod string    `json:"payment_method"`
	Description   *string   `json:"description,omitempty"`
	Date          string    `json:"date"`
	DueDate       *string   `json:"due_date,omitempty"`
}

// QuotationRequest is the payload for generating a quotation.
type QuotationRequest struct {
	CustomerID uuid.UUID              `json:"customer_id"`
	Lines      []QuotationLineRequest `json:"lines"`
}

// QuotationLineRequest is one line of a quotation request. The prices carry
// the form's values, cost and retail as pre-filled or edited, and SalePrice
// holding any manual override; the server validates them and derives the
// sale price itself when none is supplied.
type QuotationLineRequest struct {
	ProductID          uuid.UUID `json:"product_id"`
	Quantity           int       `json:"quantity"`
	CostPrice          float64   `json:"cost_price"`
	RetailPrice        float64   `json:"retail_price"`
	DiscountPercentage float64   `json:"discount_percentage"`
	SalePrice          *float64  `json:"sale_price,omitempty"`
}

// QuotationResult is what the server returns after generating a quotation.
type QuotationResult struct {
	URL      string   `json:"url"`
	Customer Customer `json:"customer"`
}

// Client is the HTTP implementation of API.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	token         string
	onAuthExpired func()
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithAuthExpiredHandler registers a callback invoked whenever the server
// reports the session expired. The failed call still returns its error; the
// handler is for routing the user back to login.
func WithAuthExpiredHandler(fn func()) ClientOption {
	return func(c *Client) { c.onAuthExpired = fn }
}

// NewClient creates an API client for the given base URL and access token.
func NewClient(baseURL, token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the access token after a refresh or re-login.
func (c *Client) SetToken(token string) {
	c.token = token
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, sess Session, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	if shopID, ok := sess.EffectiveShopID(); ok {
		req.Header.Set("X-Shop-ID", shopID.String())
	} else if sess.AllShops() {
		req.Header.Set("X-Shop-ID", "all")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var envelope apiEnvelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return fmt.Errorf("malformed response: %w", err)
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onAuthExpired != nil {
			c.onAuthExpired()
		}
		return apperror.NewRemoteError(resp.StatusCode, envelope.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperror.NewRemoteError(resp.StatusCode, envelope.Message)
	}

	if out != nil && envelope.Data != nil {
		return json.Unmarshal(envelope.Data, out)
	}
	return nil
}

type customerMatchWire struct {
	Customer Customer `json:"customer"`
	Distance int      `json:"distance"`
	Exact    bool     `json:"exact"`
}

// SearchCustomers queries the server's fuzzy customer search.
func (c *Client) SearchCustomers(ctx context.Context, sess Session, query string, limit int) ([]Customer, error) {
	if limit <= 0 {
		limit = 10
	}
	path := fmt.Sprintf("/api/v1/customers/search?name=%s&limit=%d", url.QueryEscape(query), limit)

	var matches []customerMatchWire
	if err := c.do(ctx, sess, http.MethodGet, path, nil, &matches); err != nil {
		return nil, err
	}

	customers := make([]Customer, 0, len(matches))
	for _, m := range matches {
		customers = append(customers, m.Customer)
	}
	return customers, nil
}

// FindOrCreateCustomer resolves a customer by name on the server, creating it
// when absent. The caller must hold a concrete shop scope.
func (c *Client) FindOrCreateCustomer(ctx context.Context, sess Session, name string, phone *string) (*Customer, error) {
	if _, ok := sess.EffectiveShopID(); !ok {
		return nil, apperror.ErrScopeRequired
	}

	body := map[string]interface{}{"name": name}
	if phone != nil {
		body["phone"] = *phone
	}

	var customer Customer
	if err := c.do(ctx, sess, http.MethodPost, "/api/v1/customers/find-or-create", body, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// CreateTransaction records a transaction.
func (c *Client) CreateTransaction(ctx context.Context, sess Session, req TransactionRequest) error {
	if _, ok := sess.EffectiveShopID(); !ok {
		return apperror.ErrScopeRequired
	}
	return c.do(ctx, sess, http.MethodPost, "/api/v1/transactions", req, nil)
}

// GenerateQuotation asks the server to price and persist a quotation.
func (c *Client) GenerateQuotation(ctx context.Context, sess Session, req QuotationRequest) (*QuotationResult, error) {
	if _, ok := sess.EffectiveShopID(); !ok {
		return nil, apperror.ErrScopeRequired
	}

	var result QuotationResult
	if err := c.do(ctx, sess, http.MethodPost, "/api/v1/quotation/generate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AdjustItemQuantity applies a bounded stock adjustment and returns the
// server's resulting item state.
func (c *Client) AdjustItemQuantity(ctx context.Context, sess Session, itemID uuid.UUID, operation string, amount int) (*Item, error) {
	if _, ok := sess.EffectiveShopID(); !ok {
		return nil, apperror.ErrScopeRequired
	}

	body := map[string]interface{}{"operation": operation, "amount": amount}
	path := "/api/v1/items/" + itemID.String() + "/quantity"

	var item Item
	if err := c.do(ctx, sess, http.MethodPatch, path, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
