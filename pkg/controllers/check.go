package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mynaparrot/azure-speech-check/pkg/checker"
	"github.com/mynaparrot/azure-speech-check/pkg/config"
)

type CheckController struct {
	app *config.AppConfig
	ck  *checker.Checker
}

func NewCheckController(appCnf *config.AppConfig) *CheckController {
	return &CheckController{
		app: appCnf,
		ck:  checker.New(appCnf, appCnf.Logger),
	}
}

// HandleCheck runs the probes against every configured key and returns
// the report. A failing key turns the response into a 503 so that the
// endpoint can back a deployment health check.
func (cc *CheckController) HandleCheck(c *fiber.Ctx) error {
	report := cc.ck.Run(c.Context())

	status := fiber.StatusOK
	if !report.Ok {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(report)
}
