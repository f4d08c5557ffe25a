// Package portaltest runs the IDMS backend in-process on the memory store
// for portal tests.
package portaltest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"idms/internal/app/server"
	"idms/internal/platform/config"
	"idms/internal/portal/resource"
	"idms/internal/portal/session"
)

const (
	AdminEmail    = "admin@test.local"
	AdminPassword = "ChangeMe123!"
)

// Config is a memory-driver backend with a seeded admin.
func Config() config.Config {
	return config.Config{
		Environment:        "test",
		StoreDriver:        config.StoreDriverMemory,
		JWTSecret:          "portal-test-secret",
		TokenTTL:           time.Hour,
		RunSeed:            true,
		SeedAdminEmail:     AdminEmail,
		SeedAdminPassword:  AdminPassword,
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 10000,
		CORSAllowedOrigins: []string{"*"},
		ReportCurrency:     "INR",
	}
}

// Backend is a running server plus a counter of the requests it received
// through Client.
type Backend struct {
	URL      string
	Requests *Counter
	client   *http.Client
}

func Start(t testing.TB) *Backend {
	t.Helper()
	app, err := server.New(context.Background(), Config())
	if err != nil {
		t.Fatalf("start backend: %v", err)
	}
	ts := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		ts.Close()
		app.Close()
	})
	counter := &Counter{next: ts.Client().Transport, counts: map[string]int{}}
	return &Backend{URL: ts.URL, Requests: counter, client: &http.Client{Transport: counter}}
}

// ClientConfig points resource clients at the backend through the counter.
func (b *Backend) ClientConfig(tokens resource.TokenSource) resource.Config {
	return resource.Config{BaseURL: b.URL, HTTPClient: b.client, Tokens: tokens}
}

// Login signs into a fresh in-memory session.
func (b *Backend) Login(t testing.TB, email, password string) *session.Service {
	t.Helper()
	sess := session.InMemory()
	if _, err := session.NewAuthenticator(b.ClientConfig(nil), sess).Login(context.Background(), email, password); err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return sess
}

func (b *Backend) LoginAdmin(t testing.TB) *session.Service {
	t.Helper()
	return b.Login(t, AdminEmail, AdminPassword)
}

// User is an account created through the admin-only register endpoint.
type User struct {
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	FullName   string   `json:"fullName,omitempty"`
	Roles      []string `json:"roles"`
	EmployeeID string   `json:"employeeId,omitempty"`
	Department string   `json:"department,omitempty"`
}

type profile struct {
	ID int64 `json:"id"`
}

type profileJSON struct{}

func (profileJSON) Decode(raw json.RawMessage) (profile, error) {
	var p profile
	err := json.Unmarshal(raw, &p)
	return p, err
}

func (profileJSON) Encode(p profile) ([]byte, error) { return json.Marshal(p) }

// Register creates u with admin's token and signs it in.
func (b *Backend) Register(t testing.TB, admin *session.Service, u User) *session.Service {
	t.Helper()
	client := resource.New[profile](b.ClientConfig(admin), "/api/auth", profileJSON{})
	if _, err := client.Call(context.Background(), http.MethodPost, "register", u); err != nil {
		t.Fatalf("register %s: %v", u.Email, err)
	}
	return b.Login(t, u.Email, u.Password)
}

// Counter is an http.RoundTripper that counts requests by "METHOD /path".
type Counter struct {
	next   http.RoundTripper
	mu     sync.Mutex
	counts map[string]int
	total  int
}

func (c *Counter) RoundTrip(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	c.counts[req.Method+" "+req.URL.Path]++
	c.total++
	c.mu.Unlock()
	return c.next.RoundTrip(req)
}

func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Count returns the requests whose "METHOD /path" starts with prefix.
func (c *Counter) Count(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for key, v := range c.counts {
		if strings.HasPrefix(key, prefix) {
			n += v
		}
	}
	return n
}

// Notifier records toasts.
type Notifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *Notifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *Notifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *Notifier) Successes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.successes...)
}

func (n *Notifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}
