package config

import (
	"errors"
	"os"
)

// Environment variables recognized for a single-key check, matching what
// the Azure portal samples export.
const (
	EnvSpeechKey    = "AZURE_SPEECH_KEY"
	EnvSpeechRegion = "AZURE_SPEECH_REGION"
	EnvEndpoint     = "AZURE_ENDPOINT"
)

var ErrMissingCredentials = errors.New("please set AZURE_SPEECH_KEY and AZURE_SPEECH_REGION environment variables")

// KeyFromEnv builds a subscription key from the process environment.
// It returns ErrMissingCredentials without attempting anything further
// when the key is absent, or when the region is absent and no endpoint
// override compensates for it.
func KeyFromEnv() (*AzureSubscriptionKey, error) {
	k := &AzureSubscriptionKey{
		Id:              "env",
		SubscriptionKey: os.Getenv(EnvSpeechKey),
		ServiceRegion:   os.Getenv(EnvSpeechRegion),
		Endpoint:        os.Getenv(EnvEndpoint),
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}
