package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

type noteMapper struct{}

func (noteMapper) Decode(raw json.RawMessage) (note, error) {
	var n note
	err := json.Unmarshal(raw, &n)
	return n, err
}

func (noteMapper) Encode(n note) ([]byte, error) {
	return json.Marshal(map[string]string{"text": n.Text})
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

type recorded struct {
	method, path, auth, body string
}

type fakeBackend struct {
	mu       sync.Mutex
	requests []recorded
	handler  http.HandlerFunc
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{r.Method, r.URL.RequestURI(), r.Header.Get("Authorization"), string(body)})
	f.mu.Unlock()
	f.handler(w, r)
}

func newClient(t *testing.T, handler http.HandlerFunc) (*Client[note], *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{handler: handler}
	ts := httptest.NewServer(backend)
	t.Cleanup(ts.Close)
	return New[note](Config{BaseURL: ts.URL + "/", Tokens: staticToken("tok")}, "/api/notes", noteMapper{}), backend
}

func TestClientRoutesAndBodies(t *testing.T) {
	client, backend := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"id":1,"text":"a"},{"id":2,"text":"b"}]`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			_, _ = w.Write([]byte(`{"id":9,"text":"saved"}`))
		}
	})
	ctx := context.Background()

	items, err := client.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []note{{1, "a"}, {2, "b"}}, items)

	_, err = client.ListBy(ctx, "E1")
	require.NoError(t, err)
	_, err = client.ListAt(ctx, "hr/all")
	require.NoError(t, err)

	created, err := client.Create(ctx, note{ID: 77, Text: "new"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)

	_, err = client.CreateAt(ctx, "mark", note{Text: "x"})
	require.NoError(t, err)
	_, err = client.Update(ctx, 4, note{Text: "edit"})
	require.NoError(t, err)
	_, err = client.Call(ctx, http.MethodPut, "4/status", map[string]string{"status": "approved"})
	require.NoError(t, err)
	require.NoError(t, client.Remove(ctx, 4))

	want := []recorded{
		{http.MethodGet, "/api/notes", "Bearer tok", ""},
		{http.MethodGet, "/api/notes/employee/E1", "Bearer tok", ""},
		{http.MethodGet, "/api/notes/hr/all", "Bearer tok", ""},
		{http.MethodPost, "/api/notes", "Bearer tok", `{"text":"new"}`},
		{http.MethodPost, "/api/notes/mark", "Bearer tok", `{"text":"x"}`},
		{http.MethodPut, "/api/notes/4", "Bearer tok", `{"text":"edit"}`},
		{http.MethodPut, "/api/notes/4/status", "Bearer tok", `{"status":"approved"}`},
		{http.MethodDelete, "/api/notes/4", "Bearer tok", ""},
	}
	assert.Equal(t, want, backend.requests)
}

func TestListByEscapesEmployeeID(t *testing.T) {
	client, backend := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	_, err := client.ListBy(context.Background(), "E 1/2")
	require.NoError(t, err)
	require.Len(t, backend.requests, 1)
	assert.Equal(t, "/api/notes/employee/E%201%2F2", backend.requests[0].path)
}

func TestClientHTTPErrorCarriesEnvelopeMessage(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"not_found","message":"Rent entry not found"}}`))
	})

	err := client.Remove(context.Background(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "not_found", httpErr.Code)
	assert.Equal(t, "Rent entry not found", Message(err))
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}

func TestClientParseError(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	})
	_, err := client.List(context.Background())
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestClientNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	client := New[note](Config{BaseURL: url}, "/api/notes", noteMapper{})
	_, err := client.List(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, ErrFetch)
	assert.True(t, strings.HasPrefix(Message(err), "Network error"))
}

func TestClientWithoutTokenSendsNoAuthorization(t *testing.T) {
	backend := &fakeBackend{handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`[]`)) }}
	ts := httptest.NewServer(backend)
	defer ts.Close()

	client := New[note](Config{BaseURL: ts.URL, Tokens: staticToken("")}, "api/notes", noteMapper{})
	items, err := client.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, "", backend.requests[0].auth)
}

func TestDownload(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.3 fake"))
	})
	var buf bytes.Buffer
	require.NoError(t, client.Download(context.Background(), "export/pdf", &buf))
	assert.Equal(t, "%PDF-1.3 fake", buf.String())
}

func TestUploadSendsMultipartFile(t *testing.T) {
	var name, content, token string
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		token = r.Header.Get("Authorization")
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		raw, _ := io.ReadAll(file)
		name, content = header.Filename, string(raw)
		_, _ = w.Write([]byte(`{"id":3,"text":"stored"}`))
	})
	got, err := client.Upload(context.Background(), "upload/resume/E1", "file", "cv.pdf", strings.NewReader("%PDF-1.4 cv"))
	require.NoError(t, err)
	assert.Equal(t, note{3, "stored"}, got)
	assert.Equal(t, "cv.pdf", name)
	assert.Equal(t, "%PDF-1.4 cv", content)
	assert.Equal(t, "Bearer tok", token)
}

func TestUploadHTTPError(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"payload_too_large","message":"file too large"}}`))
	})
	_, err := client.Upload(context.Background(), "upload/resume/E1", "file", "big.pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, StatusCode(err))
	assert.Equal(t, "file too large", Message(err))
}

func TestErrorsAreDistinct(t *testing.T) {
	err := error(&HTTPError{StatusCode: 500})
	var netErr *NetworkError
	assert.False(t, errors.As(err, &netErr))
	assert.Equal(t, 0, StatusCode(errors.New("plain")))
}
