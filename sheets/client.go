// Package sheets is a thin wrapper around the spreadsheet backend. It maps
// sheet rows to and from domain objects and attaches a delegated access
// token to every call; the hard work of obtaining that token lives in the
// token package.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/oauth2"
)

// DefaultBaseURL is the spreadsheet values API root
const DefaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

const (
	defaultInventoryRange = "Inventory!A2:D"
	defaultUsersRange     = "Users!A2:C"
)

// TokenSource supplies the delegated access token attached to backend calls
type TokenSource interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// Item is one inventory row
type Item struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Location string `json:"location,omitempty"`
}

type Client struct {
	baseURL       string
	spreadsheetID string
	tokens        TokenSource
	httpClient    *http.Client
}

func NewClient(spreadsheetID string, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:       DefaultBaseURL,
		spreadsheetID: spreadsheetID,
		tokens:        tokens,
		httpClient:    httpClient,
	}
}

// WithBaseURL points the client at a different API root (used in tests)
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// valueRange mirrors the backend's values payload
type valueRange struct {
	Range  string     `json:"range,omitempty"`
	Values [][]string `json:"values"`
}

// ListItems reads the inventory range and maps rows to Items
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	vr, err := c.readRange(ctx, defaultInventoryRange)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(vr.Values))
	for _, row := range vr.Values {
		item, err := rowToItem(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// AppendItem appends one inventory row
func (c *Client) AppendItem(ctx context.Context, item Item) error {
	return c.appendRange(ctx, defaultInventoryRange, itemToRow(item))
}

func rowToItem(row []string) (Item, error) {
	if len(row) < 3 {
		return Item{}, fmt.Errorf("inventory row has %d columns, want at least 3", len(row))
	}
	quantity, err := strconv.Atoi(row[2])
	if err != nil {
		return Item{}, fmt.Errorf("inventory row quantity %q is not a number", row[2])
	}
	item := Item{
		SKU:      row[0],
		Name:     row[1],
		Quantity: quantity,
	}
	if len(row) > 3 {
		item.Location = row[3]
	}
	return item, nil
}

func itemToRow(item Item) []string {
	return []string{item.SKU, item.Name, strconv.Itoa(item.Quantity), item.Location}
}

func (c *Client) readRange(ctx context.Context, rng string) (*valueRange, error) {
	endpoint := fmt.Sprintf("%s/%s/values/%s", c.baseURL, c.spreadsheetID, url.PathEscape(rng))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build read request: %w", err)
	}
	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var vr valueRange
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("decode values response: %w", err)
	}
	return &vr, nil
}

func (c *Client) appendRange(ctx context.Context, rng string, row []string) error {
	payload, err := json.Marshal(valueRange{Values: [][]string{row}})
	if err != nil {
		return fmt.Errorf("encode values payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=RAW", c.baseURL, c.spreadsheetID, url.PathEscape(rng))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build append request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	_, err = c.do(ctx, req)
	return err
}

// do attaches a delegated access token and runs the request
func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	tok.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet backend response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("spreadsheet backend returned status %d", resp.StatusCode)
	}
	return body, nil
}
