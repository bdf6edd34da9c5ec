// Package client is a small Go client for the salespoint REST API, used by
// tooling and integration tests in place of the mobile and web frontends.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dilshanuk/salespoint/internal/domain/models"
	"github.com/dilshanuk/salespoint/internal/service/orders"
)

// Client talks to the salespoint API over HTTP.
type Client struct {
	httpClient *resty.Client
}

// New builds an API client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{httpClient: restyClient}
}

// apiError mirrors the API's error payload.
type apiError struct {
	Message string `json:"message"`
}

// Session is the authenticated response from login or register.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func checkResponse(resp *resty.Response, apiErr *apiError) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}
	message := ""
	if apiErr != nil {
		message = apiErr.Message
	}
	return fmt.Errorf("api error: status=%d, message=%s", resp.StatusCode(), message)
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, result any) error {
	apiErr := new(apiError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(result).
		SetError(apiErr).
		Get(path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	return checkResponse(resp, apiErr)
}

func (c *Client) send(ctx context.Context, method, path string, body, result any) error {
	apiErr := new(apiError)
	req := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(apiErr)

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", strings.ToLower(method), path, err)
	}
	return checkResponse(resp, apiErr)
}

// Login authenticates and stores the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	session := new(Session)
	body := map[string]string{"email": email, "password": password}
	if err := c.send(ctx, resty.MethodPost, "/api/auth/login", body, session); err != nil {
		return nil, err
	}
	c.httpClient.SetAuthToken(session.Token)
	return session, nil
}

// Register creates a representative account and stores its token.
func (c *Client) Register(ctx context.Context, username, email, password string) (*Session, error) {
	session := new(Session)
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.send(ctx, resty.MethodPost, "/api/auth/register", body, session); err != nil {
		return nil, err
	}
	c.httpClient.SetAuthToken(session.Token)
	return session, nil
}

// SetToken installs a previously obtained bearer token.
func (c *Client) SetToken(token string) {
	c.httpClient.SetAuthToken(token)
}

// SearchStock returns stock items matching the query; an empty query lists
// the whole catalogue.
func (c *Client) SearchStock(ctx context.Context, query string) ([]models.Stock, error) {
	var stocks []models.Stock
	params := map[string]string{}
	if query != "" {
		params["q"] = query
	}
	if err := c.get(ctx, "/api/stock", params, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

// GetStock returns a single stock item.
func (c *Client) GetStock(ctx context.Context, id string) (*models.Stock, error) {
	stock := new(models.Stock)
	if err := c.get(ctx, "/api/stock/"+id, nil, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// CreateOrder places a new order.
func (c *Client) CreateOrder(ctx context.Context, input orders.CreateInput) (*models.Order, error) {
	order := new(models.Order)
	if err := c.send(ctx, resty.MethodPost, "/api/orders", input, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Orders lists orders, optionally filtered by day (YYYY-MM-DD) and, for
// admins, by representative id.
func (c *Client) Orders(ctx context.Context, date, representativeID string) ([]models.Order, error) {
	var result []models.Order
	params := map[string]string{}
	if date != "" {
		params["date"] = date
	}
	if representativeID != "" {
		params["representativeId"] = representativeID
	}
	if err := c.get(ctx, "/api/orders", params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateOrderStatus moves an order to a new workflow state.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	order := new(models.Order)
	body := map[string]models.OrderStatus{"status": status}
	if err := c.send(ctx, resty.MethodPut, "/api/orders/"+id+"/status", body, order); err != nil {
		return nil, err
	}
	return order, nil
}

// SummaryStats returns the admin dashboard aggregates.
func (c *Client) SummaryStats(ctx context.Context) (*orders.Stats, error) {
	stats := new(orders.Stats)
	if err := c.get(ctx, "/api/orders/summary/stats", nil, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Customers lists customers visible to the authenticated user.
func (c *Client) Customers(ctx context.Context) ([]models.Customer, error) {
	var result []models.Customer
	if err := c.get(ctx, "/api/customers", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}
