package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookreviews/internal/common"
)

// APIClient talks to the book review HTTP API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *APIClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *APIClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

type authResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

func (c *APIClient) Register(ctx context.Context, userName, email string, password []byte) (*User, error) {
	var out authResponse
	body := map[string]string{"username": userName, "email": email, "password": string(password)}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", false, body, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out.User, nil
}

func (c *APIClient) Login(ctx context.Context, email string, password []byte) (*User, error) {
	var out authResponse
	body := map[string]string{"email": email, "password": string(password)}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", false, body, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out.User, nil
}

func (c *APIClient) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount deletes the logged-in account and forgets the token.
func (c *APIClient) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/auth/me", true, nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *APIClient) ListBooks(ctx context.Context, q BookQuery) (*BookList, error) {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Genre != "" {
		v.Set("genre", q.Genre)
	}
	if q.Author != "" {
		v.Set("author", q.Author)
	}
	path := "/api/books"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}

	var out BookList
	if err := c.do(ctx, http.MethodGet, path, true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) AddBook(ctx context.Context, title, author, genre string) (*Book, error) {
	var out struct {
		Book Book `json:"book"`
	}
	body := map[string]string{"title": title, "author": author, "genre": genre}
	if err := c.do(ctx, http.MethodPost, "/api/books", true, body, &out); err != nil {
		return nil, err
	}
	return &out.Book, nil
}

func (c *APIClient) GetBook(ctx context.Context, id string) (*BookDetails, error) {
	var out BookDetails
	if err := c.do(ctx, http.MethodGet, "/api/books/"+url.PathEscape(id), true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), true, nil, nil)
}

type reviewResponse struct {
	Review Review `json:"review"`
}

func (c *APIClient) AddReview(ctx context.Context, bookID, text string, rating int) (*Review, error) {
	var out reviewResponse
	body := map[string]any{"review_text": text, "rating": rating}
	if err := c.do(ctx, http.MethodPost, "/api/books/"+url.PathEscape(bookID)+"/reviews", true, body, &out); err != nil {
		return nil, err
	}
	return &out.Review, nil
}

func (c *APIClient) UpdateReview(ctx context.Context, id string, patch ReviewPatch) (*Review, error) {
	var out reviewResponse
	if err := c.do(ctx, http.MethodPut, "/api/reviews/"+url.PathEscape(id), true, patch, &out); err != nil {
		return nil, err
	}
	return &out.Review, nil
}

func (c *APIClient) DeleteReview(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/reviews/"+url.PathEscape(id), true, nil, nil)
}

func (c *APIClient) do(ctx context.Context, method, path string, authed bool, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token := c.Token()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
