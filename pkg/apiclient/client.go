// Package apiclient is a Go client for the product admin API. The bearer
// credential lives in an explicit Session value handed to every authenticated
// call; nothing is read from ambient state, and the composition root decides
// when to log in again.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/basciYusuf/e-commerce/internal/models"
	"github.com/basciYusuf/e-commerce/internal/transport"
)

type Session struct {
	Token string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var resp transport.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, transport.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: resp.AccessToken}, nil
}

type ListOptions struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

func (c *Client) ListProducts(ctx context.Context, opts ListOptions) (*transport.ProductPage, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.SortBy != "" {
		q.Set("sortBy", opts.SortBy)
	}
	if opts.SortOrder != "" {
		q.Set("sortOrder", opts.SortOrder)
	}

	path := "/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page transport.ProductPage
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var prod models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (c *Client) CreateProduct(ctx context.Context, sess Session, req transport.CreateProductRequest) (*models.Product, error) {
	var prod models.Product
	if err := c.do(ctx, http.MethodPost, "/products", &sess, req, &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (c *Client) UpdateProduct(ctx context.Context, sess Session, id int, req transport.UpdateProductRequest) (*models.Product, error) {
	var prod models.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), &sess, req, &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (c *Client) DeleteProduct(ctx context.Context, sess Session, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), &sess, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, sess *Session, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &apiErr)
		if apiErr.Message == "" {
			apiErr.Message = string(data)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
