package logger

import (
	"github.com/rollbar/rollbar-go"
	"github.com/rs/zerolog"
)

// Reporter forwards log events to an external error tracker.
type Reporter interface {
	Report(level zerolog.Level, message string)
}

// ReportingHook is a zerolog hook that hands error-level events to a Reporter.
type ReportingHook struct {
	Reporter Reporter
}

// Run implements zerolog.Hook.
func (h ReportingHook) Run(_ *zerolog.Event, level zerolog.Level, message string) {
	if level < zerolog.ErrorLevel || h.Reporter == nil {
		return
	}
	h.Reporter.Report(level, message)
}

// RollbarReporter sends events to Rollbar.
type RollbarReporter struct{}

// NewRollbarReporter configures the global Rollbar client.
func NewRollbarReporter(token, environment, serverHost string) *RollbarReporter {
	rollbar.SetToken(token)
	rollbar.SetEnvironment(environment)
	rollbar.SetServerHost(serverHost)
	return &RollbarReporter{}
}

// Report implements Reporter.
func (r *RollbarReporter) Report(level zerolog.Level, message string) {
	if level >= zerolog.FatalLevel {
		rollbar.Critical(message)
		return
	}
	rollbar.Error(message)
}

// Flush blocks until queued Rollbar items are sent.
func (r *RollbarReporter) Flush() {
	rollbar.Wait()
}
