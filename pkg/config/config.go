package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

var appCnf *AppConfig

type AppConfig struct {
	Logger *logrus.Logger

	RootWorkingDir               string
	Client                       ClientInfo                   `yaml:"client"`
	LogSettings                  LogSettings                  `yaml:"log_settings"`
	AzureCognitiveServicesSpeech AzureCognitiveServicesSpeech `yaml:"azure_cognitive_services_speech"`
	CheckSettings                CheckSettings                `yaml:"check_settings"`
}

type ClientInfo struct {
	Port           int            `yaml:"port"`
	Debug          bool           `yaml:"debug"`
	PrometheusConf PrometheusConf `yaml:"prometheus"`
	ProxyHeader    string         `yaml:"proxy_header"`
}

type PrometheusConf struct {
	Enable      bool   `yaml:"enable"`
	MetricsPath string `yaml:"metrics_path"`
}

type LogSettings struct {
	LogLevel   *string `yaml:"log_level"`
	LogFile    string  `yaml:"log_file"`
	MaxSize    int     `yaml:"max_size"`
	MaxBackups int     `yaml:"max_backups"`
	MaxAge     int     `yaml:"max_age"`
}

type AzureCognitiveServicesSpeech struct {
	Enabled          bool                   `yaml:"enabled"`
	SubscriptionKeys []AzureSubscriptionKey `yaml:"subscription_keys"`
}

type AzureSubscriptionKey struct {
	Id              string `yaml:"id"`
	SubscriptionKey string `yaml:"subscription_key"`
	ServiceRegion   string `yaml:"service_region"`
	// Endpoint overrides the region-derived service host. When set, the
	// region is not required for SDK configuration.
	Endpoint string `yaml:"endpoint"`
}

type CheckSettings struct {
	Timeout        *time.Duration `yaml:"timeout"`
	SkipTokenProbe bool           `yaml:"skip_token_probe"`
	MaxConcurrency int            `yaml:"max_concurrency"`
}

// Validate reports whether the key carries enough information to attempt
// SDK configuration. The subscription key is always required; the region
// only when no custom endpoint compensates for it.
func (k *AzureSubscriptionKey) Validate() error {
	if k.SubscriptionKey == "" {
		return ErrMissingCredentials
	}
	if k.ServiceRegion == "" && k.Endpoint == "" {
		return ErrMissingCredentials
	}
	return nil
}

func New(cnf *AppConfig) (*AppConfig, error) {
	if len(cnf.AzureCognitiveServicesSpeech.SubscriptionKeys) == 0 {
		return nil, errors.New("no azure subscription keys to check")
	}
	for _, k := range cnf.AzureCognitiveServicesSpeech.SubscriptionKeys {
		if err := k.Validate(); err != nil {
			return nil, fmt.Errorf("subscription key %q: missing subscription_key, or service_region without an endpoint", k.Id)
		}
	}

	// set default values
	if cnf.CheckSettings.Timeout == nil || *cnf.CheckSettings.Timeout <= 0 {
		d := time.Second * 10
		cnf.CheckSettings.Timeout = &d
	}
	if cnf.CheckSettings.MaxConcurrency <= 0 {
		cnf.CheckSettings.MaxConcurrency = 4
	}
	if cnf.Client.Port == 0 {
		cnf.Client.Port = 8080
	}

	appCnf = cnf
	return cnf, nil
}

func GetConfig() *AppConfig {
	return appCnf
}
