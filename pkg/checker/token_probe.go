package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mynaparrot/azure-speech-check/pkg/config"
)

const TokenProbeName = "sts-token"

const tokenEndpointFormat = "https://%s.api.cognitive.microsoft.com/sts/v1.0/issueToken"

// TokenProbe verifies a key against the live service by requesting a
// short-lived authorization token from the region's STS endpoint. This
// is the same request the speech clients send before opening a
// recognition session, so a 200 here means the key and region are valid.
type TokenProbe struct {
	client         *http.Client
	endpointFormat string
}

func NewTokenProbe(client *http.Client) *TokenProbe {
	if client == nil {
		client = http.DefaultClient
	}
	return &TokenProbe{
		client:         client,
		endpointFormat: tokenEndpointFormat,
	}
}

func (p *TokenProbe) Name() string {
	return TokenProbeName
}

// Applicable is false for endpoint-override keys, the STS host can only
// be derived from a region.
func (p *TokenProbe) Applicable(key *config.AzureSubscriptionKey) bool {
	return key.Endpoint == "" && key.ServiceRegion != ""
}

func (p *TokenProbe) Check(ctx context.Context, key *config.AzureSubscriptionKey) error {
	url := fmt.Sprintf(p.endpointFormat, key.ServiceRegion)
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader([]byte("{}")))
	if err != nil {
		return err
	}
	r.Header.Set("Ocp-Apim-Subscription-Key", key.SubscriptionKey)
	r.Header.Set("content-type", "application/json")

	resp, err := p.client.Do(r)
	if err != nil {
		return fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read token response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		if len(body) == 0 {
			return errors.New("token endpoint returned an empty token")
		}
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("subscription key rejected: %s", resp.Status)
	default:
		return fmt.Errorf("unexpected response from token endpoint: %s", resp.Status)
	}
}
