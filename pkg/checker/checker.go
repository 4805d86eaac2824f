package checker

import (
	"context"
	"strings"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/google/uuid"
	"github.com/mynaparrot/azure-speech-check/pkg/config"
	"github.com/sirupsen/logrus"
)

// Probe validates one subscription key in a specific way.
type Probe interface {
	Name() string
	// Applicable reports whether this probe can say anything useful
	// about the given key.
	Applicable(key *config.AzureSubscriptionKey) bool
	Check(ctx context.Context, key *config.AzureSubscriptionKey) error
}

// Checker runs every configured probe against every configured
// subscription key and aggregates the outcome into a Report.
type Checker struct {
	keys    []config.AzureSubscriptionKey
	probes  []Probe
	timeout time.Duration
	workers int
	log     *logrus.Entry
}

func New(appCnf *config.AppConfig, logger *logrus.Logger) *Checker {
	probes := []Probe{NewSDKProbe()}
	if !appCnf.CheckSettings.SkipTokenProbe {
		probes = append(probes, NewTokenProbe(nil))
	}

	return &Checker{
		keys:    appCnf.AzureCognitiveServicesSpeech.SubscriptionKeys,
		probes:  probes,
		timeout: *appCnf.CheckSettings.Timeout,
		workers: appCnf.CheckSettings.MaxConcurrency,
		log:     logger.WithField("component", "checker"),
	}
}

// Run checks all keys concurrently through a bounded worker pool and
// blocks until every probe has finished.
func (c *Checker) Run(ctx context.Context) *Report {
	results := make([]KeyResult, len(c.keys))

	wp := workerpool.New(c.workers)
	for i := range c.keys {
		key := c.keys[i]
		wp.Submit(func() {
			results[i] = c.checkKey(ctx, &key)
		})
	}
	wp.StopWait()

	report := &Report{
		RunId:     uuid.NewString(),
		CheckedAt: time.Now().UTC(),
		Ok:        true,
		Keys:      results,
	}
	for _, kr := range results {
		if !kr.Ok {
			report.Ok = false
			break
		}
	}
	return report
}

func (c *Checker) checkKey(ctx context.Context, key *config.AzureSubscriptionKey) KeyResult {
	log := c.log.WithFields(logrus.Fields{
		"keyId": key.Id,
		"key":   MaskKey(key.SubscriptionKey),
	})

	res := KeyResult{
		KeyId:         key.Id,
		Key:           MaskKey(key.SubscriptionKey),
		ServiceRegion: key.ServiceRegion,
		Endpoint:      key.Endpoint,
		Ok:            true,
	}

	for _, p := range c.probes {
		// a skipped probe neither passes nor fails the key, so it
		// keeps Ok true alongside the skipped marker
		pr := ProbeResult{Probe: p.Name(), Ok: true}
		if !p.Applicable(key) {
			pr.Skipped = true
			res.Probes = append(res.Probes, pr)
			log.Debugf("%s probe skipped", p.Name())
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := p.Check(probeCtx, key)
		cancel()

		if err != nil {
			pr.Ok = false
			pr.Error = err.Error()
			pr.Hint = InvalidCredentialsHint
			res.Ok = false
			log.WithError(err).Errorf("%s probe failed", p.Name())
		} else {
			log.Infof("%s probe succeeded", p.Name())
		}
		res.Probes = append(res.Probes, pr)
	}

	return res
}

// MaskKey hides all but the first 5 characters of a subscription key,
// the way the portal samples echo it back.
func MaskKey(key string) string {
	if len(key) <= 5 {
		return strings.Repeat("*", len(key))
	}
	return key[:5] + "..."
}
