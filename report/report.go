// Package report builds the AI stock-report prompt and fetches a
// completion for it. Prompt construction is deliberately simple string
// assembly; the interesting engineering lives elsewhere.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-inventory-server/sheets"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// BuildPrompt renders the inventory as a plain-text table prefixed with
// the report instruction
func BuildPrompt(items []sheets.Item) string {
	var sb strings.Builder
	sb.WriteString("Summarise the current stock position, flagging items that look low:\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "- %s (%s): %d", item.Name, item.SKU, item.Quantity)
		if item.Location != "" {
			fmt.Fprintf(&sb, " @ %s", item.Location)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

type completionRequest struct {
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Text string `json:"text"`
}

// Generate requests a completion for the inventory report prompt
func (c *Client) Generate(ctx context.Context, items []sheets.Item) (string, error) {
	payload, err := json.Marshal(completionRequest{Prompt: BuildPrompt(items)})
	if err != nil {
		return "", fmt.Errorf("encode report request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("report request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("report endpoint returned status %d", resp.StatusCode)
	}

	var cr completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode report response: %w", err)
	}
	return cr.Text, nil
}
