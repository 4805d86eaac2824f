package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mynaparrot/azure-speech-check/helpers"
	"github.com/mynaparrot/azure-speech-check/pkg/checker"
	"github.com/mynaparrot/azure-speech-check/pkg/config"
	"github.com/mynaparrot/azure-speech-check/pkg/controllers"
	"github.com/mynaparrot/azure-speech-check/pkg/logging"
	"github.com/mynaparrot/azure-speech-check/pkg/routers"
	"github.com/mynaparrot/azure-speech-check/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func main() {
	cli.VersionPrinter = func(c *cli.Command) {
		fmt.Printf("%s\n", c.Version)
	}

	app := &cli.Command{
		Name:        "azure-speech-check",
		Usage:       "Verify Azure Cognitive Services Speech credentials",
		Description: "without option will run a one-shot credential check",
		Flags: append(configFlags(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the report as JSON instead of a log summary",
			},
			&cli.BoolFlag{
				Name:  "skip-token-probe",
				Usage: "offline mode, only construct SDK objects",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "per-probe timeout, overrides check_settings.timeout",
			},
		),
		Action: runCheck,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "expose the credential check over HTTP",
				Flags:  configFlags(),
				Action: runServer,
			},
		},
		Version: version.Version,
	}
	err := app.Run(context.Background(), os.Args)
	if err != nil {
		logrus.Fatalln(err)
	}
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Configuration file; without it keys are read from the environment",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "dotenv file to load before reading the environment",
		},
	}
}

func prepare(c *cli.Command) (*config.AppConfig, error) {
	appCnf, err := helpers.PrepareConfig(c.String("config"), c.String("env-file"))
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(&appCnf.LogSettings)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to setup logger")
	}
	appCnf.Logger = logger

	return appCnf, nil
}

// applyCheckOverrides lets command line flags win over the yaml settings.
func applyCheckOverrides(appCnf *config.AppConfig, timeout time.Duration, skipTokenProbe bool) {
	if timeout > 0 {
		appCnf.CheckSettings.Timeout = &timeout
	}
	if skipTokenProbe {
		appCnf.CheckSettings.SkipTokenProbe = true
	}
}

func runCheck(ctx context.Context, c *cli.Command) error {
	appCnf, err := prepare(c)
	if err != nil {
		return err
	}
	applyCheckOverrides(appCnf, c.Duration("timeout"), c.Bool("skip-token-probe"))

	ck := checker.New(appCnf, appCnf.Logger)
	report := ck.Run(ctx)

	if c.Bool("json") {
		out, err := report.JSON()
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		report.Summarize(appCnf.Logger)
	}

	if !report.Ok {
		return errors.New("credential check failed")
	}
	return nil
}

func runServer(_ context.Context, c *cli.Command) error {
	appCnf, err := prepare(c)
	if err != nil {
		return err
	}
	logger := appCnf.Logger

	ctrl := controllers.NewCheckController(appCnf)
	rt := routers.New(appCnf, ctrl)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		sig := <-sigChan
		logger.Infoln("exit requested, shutting down", "signal", sig)
		_ = rt.Shutdown()
	}()

	err = rt.Listen(fmt.Sprintf(":%d", appCnf.Client.Port))
	if err != nil {
		logger.Fatalln(err)
	}
	return nil
}
