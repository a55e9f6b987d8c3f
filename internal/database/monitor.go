package database

import (
	"context"
	"time"

	"github.com/deppfellow/mongo-starter/internal/config"
	loggerPkg "github.com/deppfellow/mongo-starter/internal/logger"
	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
)

// newCommandMonitor builds the driver command monitor.
//
// Two monitors may apply:
//   - a local monitor that logs commands slower than the configured threshold
//   - New Relic's nrmongo monitor, which records datastore segments
//
// nrmongo wraps the monitor it is given, so both run when both are enabled.
// Returns nil when neither applies.
func newCommandMonitor(logger *zerolog.Logger, cfg *config.ObservabilityConfig, loggerService *loggerPkg.LoggerService) *event.CommandMonitor {
	var monitor *event.CommandMonitor

	if cfg != nil && cfg.Logging.SlowQueryThreshold > 0 {
		monitor = slowCommandMonitor(logger, cfg.Logging.SlowQueryThreshold)
	}

	if loggerService.GetApplication() != nil {
		monitor = nrmongo.NewCommandMonitor(monitor)
	}

	return monitor
}

// slowCommandMonitor logs successful commands above threshold at warn and
// every failed command at debug.
func slowCommandMonitor(logger *zerolog.Logger, threshold time.Duration) *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			duration := time.Duration(evt.DurationNanos)
			if duration < threshold {
				return
			}
			logger.Warn().
				Str("command", evt.CommandName).
				Int64("request_id", evt.RequestID).
				Dur("duration", duration).
				Msg("slow database command")
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			logger.Debug().
				Str("command", evt.CommandName).
				Int64("request_id", evt.RequestID).
				Dur("duration", time.Duration(evt.DurationNanos)).
				Str("failure", evt.Failure).
				Msg("database command failed")
		},
	}
}
