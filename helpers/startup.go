package helpers

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/mynaparrot/azure-speech-check/pkg/config"
	"gopkg.in/yaml.v3"
)

// PrepareConfig assembles the application config from an optional yaml
// file and the process environment. A `.env` file is loaded first so
// that env-based credentials can live next to the binary. When the yaml
// file supplies no subscription keys, the environment key is used.
func PrepareConfig(cnfFile, envFile string) (*config.AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, err
		}
	} else {
		// a missing default .env file is not an error
		_ = godotenv.Load()
	}

	appCnf := new(config.AppConfig)
	if cnfFile != "" {
		var err error
		appCnf, err = readYaml(cnfFile)
		if err != nil {
			return nil, err
		}
	}

	if len(appCnf.AzureCognitiveServicesSpeech.SubscriptionKeys) == 0 {
		k, err := config.KeyFromEnv()
		if err != nil {
			return nil, err
		}
		appCnf.AzureCognitiveServicesSpeech.Enabled = true
		appCnf.AzureCognitiveServicesSpeech.SubscriptionKeys = []config.AzureSubscriptionKey{*k}
	}

	return config.New(appCnf)
}

func readYaml(filename string) (*config.AppConfig, error) {
	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	appCnf := new(config.AppConfig)
	err = yaml.Unmarshal(yamlFile, appCnf)
	if err != nil {
		return nil, err
	}

	// get current working dir
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	appCnf.RootWorkingDir = wd

	return appCnf, nil
}
