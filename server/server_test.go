package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-inventory-server/internal/config"
	"github.com/jrsteele09/go-inventory-server/server"
	"github.com/jrsteele09/go-inventory-server/sheets"
	"github.com/jrsteele09/go-inventory-server/users"
	fakeuserrepo "github.com/jrsteele09/go-inventory-server/users/repofake"
)

const testSessionSecret = "test-session-secret"

// testConfig overrides the env-backed values the tests depend on
type testConfig struct {
	config.Config
}

func (testConfig) GetSessionSecret() string { return testSessionSecret }
func (testConfig) GetEnv() string           { return "TEST" }

type fakeInventory struct {
	items     []sheets.Item
	listErr   error
	appendErr error
	appended  []sheets.Item
}

func (f *fakeInventory) ListItems(ctx context.Context) ([]sheets.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeInventory) AppendItem(ctx context.Context, item sheets.Item) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, item)
	return nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Send(ctx context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

type fakeReporter struct {
	report string
	err    error
}

func (f *fakeReporter) Generate(ctx context.Context, items []sheets.Item) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.report, nil
}

type testFixture struct {
	server    *server.Server
	repo      *fakeuserrepo.FakeUserRepo
	inventory *fakeInventory
	notifier  *fakeNotifier
	reporter  *fakeReporter
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	repo := fakeuserrepo.NewFakeUserRepo()
	for email, role := range map[string]users.RoleType{
		"admin@company.com":   users.RoleAdmin,
		"manager@company.com": users.RoleManager,
		"staff@company.com":   users.RoleStaff,
	} {
		hash, err := users.HashPassword("Secret123")
		require.NoError(t, err)
		repo.Add(&users.User{Email: email, Role: role, PasswordHash: hash})
	}

	inventory := &fakeInventory{items: []sheets.Item{
		{SKU: "SKU-001", Name: "Widget", Quantity: 42, Location: "Aisle 3"},
	}}
	notifier := &fakeNotifier{}
	reporter := &fakeReporter{report: "All stock levels are healthy."}

	srv, err := server.New(testConfig{config.New()}, repo, inventory, notifier, reporter)
	require.NoError(t, err)

	return &testFixture{
		server:    srv,
		repo:      repo,
		inventory: inventory,
		notifier:  notifier,
		reporter:  reporter,
	}
}

func (f *testFixture) request(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

// login authenticates against the running handler stack and returns the
// issued session token
func (f *testFixture) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := f.request(t, http.MethodPost, server.RouteAuthLogin, "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestServerNewRequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := server.New(config.New(), fakeuserrepo.NewFakeUserRepo(), &fakeInventory{}, &fakeNotifier{}, &fakeReporter{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "session secret")
}

func TestHealthz(t *testing.T) {
	f := newTestFixture(t)
	rec := f.request(t, http.MethodGet, server.RouteHealthz, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
