package token

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	apperrors "github.com/jrsteele09/go-inventory-server/internal/errors"
)

// JWTBearerGrantType is the grant_type value for the assertion exchange (RFC 7523)
const JWTBearerGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// refreshMargin is how much remaining validity a cached delegated token
// must have before it is reused rather than refreshed.
const refreshMargin = 60 * time.Second

// ExchangeClient trades a signed assertion for a delegated access token at
// the external authorization endpoint. The baseline is one fresh assertion
// plus one exchange per delegated-access need; the small per-instance cache
// is a best-effort optimization only and is not correctness-bearing.
type ExchangeClient struct {
	endpoint   string
	assertions *AssertionSigner
	httpClient *http.Client

	mu     sync.Mutex
	cached *oauth2.Token
}

// NewExchangeClient creates an exchange client against the given token
// endpoint. A nil httpClient falls back to http.DefaultClient.
func NewExchangeClient(endpoint string, assertions *AssertionSigner, httpClient *http.Client) *ExchangeClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ExchangeClient{
		endpoint:   endpoint,
		assertions: assertions,
		httpClient: httpClient,
	}
}

// tokenResponse is the subset of the token endpoint's JSON body we consume
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Token returns a delegated access token, signing and exchanging a fresh
// assertion unless a cached token still has more than refreshMargin of
// life left.
func (c *ExchangeClient) Token(ctx context.Context) (*oauth2.Token, error) {
	c.mu.Lock()
	if c.cached != nil && !c.cached.Expiry.IsZero() && NowTimeFunc().Add(refreshMargin).Before(c.cached.Expiry) {
		cached := c.cached
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	assertion, err := c.assertions.Sign()
	if err != nil {
		return nil, err
	}

	tok, err := c.ExchangeAssertion(ctx, assertion)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cached = tok
	c.mu.Unlock()
	return tok, nil
}

// ExchangeAssertion performs the form-encoded jwt-bearer POST and returns
// the delegated access token. A non-success HTTP status surfaces as an
// UpstreamAuthError carrying the status code.
func (c *ExchangeClient) ExchangeAssertion(ctx context.Context, assertion string) (*oauth2.Token, error) {
	form := url.Values{
		"grant_type": {JWTBearerGrantType},
		"assertion":  {assertion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperrors.Wrapf(err, "build token exchange request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(err, "token exchange request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrapf(err, "read token exchange response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apperrors.UpstreamAuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, apperrors.Wrapf(err, "decode token exchange response")
	}
	if tr.AccessToken == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "token exchange response missing access_token")
	}

	tok := &oauth2.Token{
		AccessToken: tr.AccessToken,
		TokenType:   tr.TokenType,
	}
	if tr.ExpiresIn > 0 {
		tok.Expiry = NowTimeFunc().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return tok, nil
}
