package checker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mynaparrot/azure-speech-check/pkg/config"
)

func newTokenProbeAgainst(srv *httptest.Server) *TokenProbe {
	p := NewTokenProbe(srv.Client())
	// route the region placeholder at the test server
	p.endpointFormat = srv.URL + "/%s/sts/v1.0/issueToken"
	return p
}

func TestTokenProbe_ValidKey(t *testing.T) {
	var gotKey, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotMethod = r.Method
		_, _ = w.Write([]byte("eyJhbGciOiJFUzI1NiJ9.fake.token"))
	}))
	defer srv.Close()

	p := newTokenProbeAgainst(srv)
	key := &config.AzureSubscriptionKey{
		Id:              "k",
		SubscriptionKey: "abcdef0123456789",
		ServiceRegion:   "eastus",
	}

	if err := p.Check(context.Background(), key); err != nil {
		t.Fatal(err)
	}
	if gotKey != "abcdef0123456789" {
		t.Errorf("expected subscription key header, got %q", gotKey)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
}

func TestTokenProbe_StatusClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{name: "ok", status: http.StatusOK, body: "token", wantErr: false},
		{name: "empty token", status: http.StatusOK, body: "", wantErr: true},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: true},
		{name: "forbidden", status: http.StatusForbidden, wantErr: true},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true},
		{name: "too many requests", status: http.StatusTooManyRequests, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := newTokenProbeAgainst(srv)
			key := &config.AzureSubscriptionKey{
				SubscriptionKey: "abcdef0123456789",
				ServiceRegion:   "eastus",
			}

			err := p.Check(context.Background(), key)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestTokenProbe_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	p := newTokenProbeAgainst(srv)
	key := &config.AzureSubscriptionKey{
		SubscriptionKey: "abcdef0123456789",
		ServiceRegion:   "eastus",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := p.Check(ctx, key); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestTokenProbe_Applicable(t *testing.T) {
	p := NewTokenProbe(nil)

	regionKey := &config.AzureSubscriptionKey{SubscriptionKey: "abc", ServiceRegion: "eastus"}
	if !p.Applicable(regionKey) {
		t.Error("expected probe to be applicable for a region key")
	}

	endpointKey := &config.AzureSubscriptionKey{SubscriptionKey: "abc", Endpoint: "https://custom.example.com/"}
	if p.Applicable(endpointKey) {
		t.Error("expected probe to be skipped for an endpoint override key")
	}
}
