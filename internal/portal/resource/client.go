// Package resource is the typed REST client behind every portal page. One
// Client talks to one collection, e.g. /api/rent, and converts records with
// that collection's Mapper.
package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Mapper converts one record type to and from a collection's wire JSON.
// Encode writes a create/update body and never includes the id.
type Mapper[T any] interface {
	Decode(raw json.RawMessage) (T, error)
	Encode(v T) ([]byte, error)
}

// TokenSource supplies the bearer token for the current session, or "".
type TokenSource interface {
	Token() string
}

// Config is shared by every client of one portal.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
}

type Client[T any] struct {
	url    string
	mapper Mapper[T]
	http   *http.Client
	tokens TokenSource
}

// New returns a client for the collection at path, e.g. "/api/rent".
func New[T any](cfg Config, path string, mapper Mapper[T]) *Client[T] {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client[T]{
		url:    strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.Trim(path, "/"),
		mapper: mapper,
		http:   httpClient,
		tokens: cfg.Tokens,
	}
}

// URL is the collection's absolute address.
func (c *Client[T]) URL() string { return c.url }

func (c *Client[T]) List(ctx context.Context) ([]T, error) {
	return c.list(ctx, c.url)
}

// ListBy lists the records owned by one employee: GET P/employee/{id}.
func (c *Client[T]) ListBy(ctx context.Context, parentID string) ([]T, error) {
	return c.list(ctx, c.at("employee/"+url.PathEscape(parentID)))
}

// ListAt lists from a sub-collection such as "hr/all".
func (c *Client[T]) ListAt(ctx context.Context, subpath string) ([]T, error) {
	return c.list(ctx, c.at(subpath))
}

func (c *Client[T]) Create(ctx context.Context, v T) (T, error) {
	return c.send(ctx, http.MethodPost, c.url, v)
}

// CreateAt posts to a sub-path such as "employee" or "mark".
func (c *Client[T]) CreateAt(ctx context.Context, subpath string, v T) (T, error) {
	return c.send(ctx, http.MethodPost, c.at(subpath), v)
}

func (c *Client[T]) Update(ctx context.Context, id int64, v T) (T, error) {
	return c.send(ctx, http.MethodPut, c.at(strconv.FormatInt(id, 10)), v)
}

// Call sends an arbitrary JSON body and decodes a single record, for
// endpoints whose request is not a T (status changes, logins).
func (c *Client[T]) Call(ctx context.Context, method, subpath string, body any) (T, error) {
	var zero T
	target := c.at(subpath)
	raw, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("encode %s %s: %w", method, target, err)
	}
	resp, err := c.do(ctx, method, target, raw)
	if err != nil {
		return zero, err
	}
	return c.decodeOne(method, target, resp)
}

// Remove deletes one record. Any 2xx is success and the body is ignored.
func (c *Client[T]) Remove(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, c.at(strconv.FormatInt(id, 10)), nil)
	return err
}

// Download copies a binary response, such as a PDF export, to w.
func (c *Client[T]) Download(ctx context.Context, subpath string, w io.Writer) error {
	target := c.at(subpath)
	req, err := c.request(ctx, http.MethodGet, target, nil, "")
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Method: http.MethodGet, URL: target, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return readHTTPError(http.MethodGet, target, resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return &NetworkError{Method: http.MethodGet, URL: target, Err: err}
	}
	return nil
}

// Upload posts one file as multipart form data under field and decodes
// the record the server answers with.
func (c *Client[T]) Upload(ctx context.Context, subpath, field, fileName string, content io.Reader) (T, error) {
	var zero T
	target := c.at(subpath)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, fileName)
	if err != nil {
		return zero, fmt.Errorf("encode %s %s: %w", http.MethodPost, target, err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return zero, fmt.Errorf("read %s: %w", fileName, err)
	}
	if err := mw.Close(); err != nil {
		return zero, fmt.Errorf("encode %s %s: %w", http.MethodPost, target, err)
	}
	body, err := c.doWith(ctx, http.MethodPost, target, buf.Bytes(), mw.FormDataContentType())
	if err != nil {
		return zero, err
	}
	return c.decodeOne(http.MethodPost, target, body)
}

func (c *Client[T]) at(subpath string) string {
	subpath = strings.TrimLeft(subpath, "/")
	if subpath == "" {
		return c.url
	}
	return c.url + "/" + subpath
}

func (c *Client[T]) list(ctx context.Context, target string) ([]T, error) {
	body, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, &ParseError{Method: http.MethodGet, URL: target, Err: err}
	}
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		v, err := c.mapper.Decode(raw)
		if err != nil {
			return nil, &ParseError{Method: http.MethodGet, URL: target, Err: fmt.Errorf("item %d: %w", i, err)}
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Client[T]) send(ctx context.Context, method, target string, v T) (T, error) {
	var zero T
	raw, err := c.mapper.Encode(v)
	if err != nil {
		return zero, fmt.Errorf("encode %s %s: %w", method, target, err)
	}
	body, err := c.do(ctx, method, target, raw)
	if err != nil {
		return zero, err
	}
	return c.decodeOne(method, target, body)
}

func (c *Client[T]) decodeOne(method, target string, body []byte) (T, error) {
	v, err := c.mapper.Decode(body)
	if err != nil {
		var zero T
		return zero, &ParseError{Method: method, URL: target, Err: err}
	}
	return v, nil
}

func (c *Client[T]) request(ctx context.Context, method, target string, body []byte, contentType string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client[T]) do(ctx context.Context, method, target string, body []byte) ([]byte, error) {
	return c.doWith(ctx, method, target, body, "application/json")
}

func (c *Client[T]) doWith(ctx context.Context, method, target string, body []byte, contentType string) ([]byte, error) {
	req, err := c.request(ctx, method, target, body, contentType)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, readHTTPError(method, target, resp)
	}
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: target, Err: err}
	}
	return out, nil
}

func readHTTPError(method, target string, resp *http.Response) error {
	const maxBody = 4096
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	out := &HTTPError{Method: method, URL: target, StatusCode: resp.StatusCode}
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(b, &env); err == nil && env.Error.Message != "" {
		out.Code = env.Error.Code
		out.Message = env.Error.Message
		return out
	}
	out.Message = strings.TrimSpace(string(b))
	return out
}
