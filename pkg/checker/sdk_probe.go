package checker

import (
	"context"
	"fmt"

	"github.com/Microsoft/cognitive-services-speech-sdk-go/audio"
	"github.com/Microsoft/cognitive-services-speech-sdk-go/speech"
	"github.com/mynaparrot/azure-speech-check/pkg/config"
)

const SDKProbeName = "sdk-init"

// SDKProbe constructs the Azure Speech SDK object chain for a key:
// speech config, push audio input stream, audio config and recognizer.
// A malformed key or region fails at construction time, so a successful
// build is a cheap offline sanity check. Recognition is never started.
type SDKProbe struct{}

func NewSDKProbe() *SDKProbe {
	return &SDKProbe{}
}

func (p *SDKProbe) Name() string {
	return SDKProbeName
}

func (p *SDKProbe) Applicable(_ *config.AzureSubscriptionKey) bool {
	return true
}

func (p *SDKProbe) Check(_ context.Context, key *config.AzureSubscriptionKey) error {
	var (
		cnf *speech.SpeechConfig
		err error
	)
	if key.Endpoint != "" {
		cnf, err = speech.NewSpeechConfigFromEndpointWithSubscription(key.Endpoint, key.SubscriptionKey)
	} else {
		cnf, err = speech.NewSpeechConfigFromSubscription(key.SubscriptionKey, key.ServiceRegion)
	}
	if err != nil {
		return fmt.Errorf("could not create speech config: %w", err)
	}
	defer cnf.Close()

	audioFormat, err := audio.GetWaveFormatPCM(16000, 16, 1)
	if err != nil {
		return fmt.Errorf("could not create audio format: %w", err)
	}

	inputStream, err := audio.CreatePushAudioInputStreamFromFormat(audioFormat)
	if err != nil {
		return fmt.Errorf("could not create push audio input stream: %w", err)
	}
	defer inputStream.Close()

	audioConfig, err := audio.NewAudioConfigFromStreamInput(inputStream)
	if err != nil {
		return fmt.Errorf("could not create audio config from input stream: %w", err)
	}
	defer audioConfig.Close()

	recognizer, err := speech.NewSpeechRecognizerFromConfig(cnf, audioConfig)
	if err != nil {
		return fmt.Errorf("could not create speech recognizer: %w", err)
	}
	recognizer.Close()

	return nil
}
