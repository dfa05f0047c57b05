package sheets_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-inventory-server/sheets"
)

type staticTokenSource struct {
	token string
}

func (s staticTokenSource) Token(ctx context.Context) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: s.token, TokenType: "Bearer"}, nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *sheets.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return sheets.NewClient("sheet-123", staticTokenSource{token: "delegated-abc"}, ts.Client()).WithBaseURL(ts.URL)
}

func TestListItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "Bearer delegated-abc", r.Header.Get("Authorization"))
		require.Contains(t, r.URL.Path, "sheet-123")
		require.Contains(t, r.URL.Path, "Inventory")

		_, _ = w.Write([]byte(`{
			"range": "Inventory!A2:D",
			"values": [
				["SKU-001", "Widget", "42", "Aisle 3"],
				["SKU-002", "Gadget", "7"]
			]
		}`))
	})

	items, err := client.ListItems(context.Background())
	require.NoError(t, err)
	require.Equal(t, []sheets.Item{
		{SKU: "SKU-001", Name: "Widget", Quantity: 42, Location: "Aisle 3"},
		{SKU: "SKU-002", Name: "Gadget", Quantity: 7},
	}, items)
}

func TestListItemsBadQuantity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"values": [["SKU-001", "Widget", "lots"]]}`))
	})

	_, err := client.ListItems(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a number")
}

func TestListItemsBackendFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusServiceUnavailable)
	})

	_, err := client.ListItems(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}

func TestAppendItem(t *testing.T) {
	var gotBody []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer delegated-abc", r.Header.Get("Authorization"))
		require.True(t, strings.HasSuffix(r.URL.Path, ":append"))
		require.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = body
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	})

	err := client.AppendItem(context.Background(), sheets.Item{SKU: "SKU-003", Name: "Sprocket", Quantity: 12, Location: "Bin 9"})
	require.NoError(t, err)

	var payload struct {
		Values [][]string `json:"values"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	require.Equal(t, [][]string{{"SKU-003", "Sprocket", "12", "Bin 9"}}, payload.Values)
}
