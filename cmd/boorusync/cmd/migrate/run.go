package migrate

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/boorusync"
	"github.com/agentstation/boorusync/internal/cmd/alerts"
	"github.com/agentstation/boorusync/internal/cmd/application"
	"github.com/agentstation/boorusync/internal/cmd/output"
	"github.com/agentstation/boorusync/internal/decode"
	"github.com/agentstation/boorusync/internal/providers/bakabooru"
	"github.com/agentstation/boorusync/internal/providers/oxibooru"
	"github.com/agentstation/boorusync/internal/runlock"
	"github.com/agentstation/boorusync/internal/transport"
	"github.com/agentstation/boorusync/pkg/logging"
)

// Run builds the clients from settings, runs one migration and writes the
// summary to w, followed by a status line to status when it is not nil.
// Both are written whenever the run started, including after a fail-fast
// abort or a fatal error.
func Run(ctx context.Context, logger *zerolog.Logger, settings *application.Settings, w io.Writer, status *alerts.Writer, format output.Format) error {
	opts := settings.MigrateOptions()

	// Reject bad settings before touching the network or the lock.
	if err := boorusync.Defaults().Apply(opts...).Validate(); err != nil {
		return err
	}

	target, err := bakabooru.NewClient(settings.BakabooruAPI, transport.WithTimeout(settings.Timeout))
	if err != nil {
		return err
	}
	origin, err := oxibooru.NewClient(settings.OxibooruAPI, settings.OxibooruAuthHeader, transport.WithTimeout(settings.Timeout))
	if err != nil {
		return err
	}

	migrator, err := boorusync.New(target, origin, decode.NewJXL(settings.DJXLPath), opts...)
	if err != nil {
		return err
	}

	// Dry runs never write, so they do not contend for the target.
	if !settings.DryRun {
		lock, err := runlock.Acquire(settings.LockDir, settings.BakabooruAPI)
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn().Err(err).Str("lock", lock.Path()).Msg("Failed to release run lock")
			}
		}()
		logger.Debug().Str("lock", lock.Path()).Msg("Acquired run lock")
	}

	ctx = logging.WithLogger(ctx, logger)
	result, runErr := migrator.Run(ctx)

	if err := output.WriteSummary(w, format, result); err != nil {
		logger.Error().Err(err).Msg("Failed to write summary")
		if runErr == nil {
			runErr = err
		}
	}
	if status != nil {
		if err := status.Write(statusAlert(result, settings.StartPage, runErr)); err != nil {
			logger.Debug().Err(err).Msg("Failed to write status")
		}
	}
	return runErr
}
