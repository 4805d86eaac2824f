package checker

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

const InvalidCredentialsHint = "this likely indicates an issue with your speech key or service region"

type ProbeResult struct {
	Probe string `json:"probe"`
	Ok    bool   `json:"ok"`
	// Skipped probes keep Ok true; they make no claim about the key.
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

type KeyResult struct {
	KeyId string `json:"key_id"`
	// Key is masked, only the first few characters are kept.
	Key           string        `json:"key"`
	ServiceRegion string        `json:"service_region,omitempty"`
	Endpoint      string        `json:"endpoint,omitempty"`
	Ok            bool          `json:"ok"`
	Probes        []ProbeResult `json:"probes"`
}

type Report struct {
	RunId     string      `json:"run_id"`
	CheckedAt time.Time   `json:"checked_at"`
	Ok        bool        `json:"ok"`
	Keys      []KeyResult `json:"keys"`
}

func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Summarize writes a human-readable digest of the run to the logger.
func (r *Report) Summarize(logger *logrus.Logger) {
	for _, kr := range r.Keys {
		log := logger.WithFields(logrus.Fields{
			"keyId": kr.KeyId,
			"key":   kr.Key,
		})
		if kr.Ok {
			log.Infoln("speech config and speech recognizer initialized successfully, credentials are likely valid")
			continue
		}
		for _, pr := range kr.Probes {
			if pr.Ok || pr.Skipped {
				continue
			}
			log.Errorf("%s probe: %s (%s)", pr.Probe, pr.Error, pr.Hint)
		}
	}

	if r.Ok {
		logger.Infoln("all subscription keys passed")
	} else {
		logger.Errorln("one or more subscription keys failed")
	}
}
