package monitor

import (
	"os"

	"github.com/stvp/rollbar"
)

// SuppressErrorReporting is a global flag to prevent the monitor from sending unhandled errors to
// Rollbar.  Data is anonymous and consists only of a stack trace to identify the source of the
// problem.
var SuppressErrorReporting bool

func init() {
	switch env := os.Getenv("ENTROPIC_ENV"); env {
	case "development":
		rollbar.Environment = "development"
	default:
		rollbar.Environment = "production"
	}
	rollbar.Token = os.Getenv("ENTROPIC_ROLLBAR_TOKEN")
}

// ReportError will send the result of an unexpected error to Rollbar.  Reporting is disabled when
// no token is configured or SuppressErrorReporting is set.
func ReportError(err error) {
	if SuppressErrorReporting || rollbar.Token == "" {
		return
	}
	rollbar.Error(rollbar.ERR, err)
}
