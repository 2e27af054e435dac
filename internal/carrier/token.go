package carrier

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token exchanges the credential pair for an Authorization header value.
// Tokens are fetched per call and never cached.
func (c *Client) Token(ctx context.Context) (string, error) {
	header := http.Header{}
	header.Set("Authorization", "Basic "+basicAuth(c.credentials.Username, c.credentials.Password))

	resp, err := c.send(ctx, http.MethodGet, c.credentials.TokenURL, nil, header)
	if err != nil {
		return "", &Error{
			Kind:    KindAuthentication,
			Message: "Could not authenticate with the carrier",
			Err:     err,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{
			Kind:    KindAuthentication,
			Status:  resp.StatusCode,
			Message: "Could not authenticate with the carrier: " + http.StatusText(resp.StatusCode),
		}
	}

	var tr tokenResponse
	if err := json.Unmarshal(resp.Body, &tr); err != nil || strings.TrimSpace(tr.AccessToken) == "" {
		return "", &Error{
			Kind:    KindAuthentication,
			Status:  resp.StatusCode,
			Message: "Could not authenticate with the carrier: token response has no access token",
			Err:     err,
		}
	}

	tokenType := strings.TrimSpace(tr.TokenType)
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return tokenType + " " + tr.AccessToken, nil
}

func basicAuth(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}
