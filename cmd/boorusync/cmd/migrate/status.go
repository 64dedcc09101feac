package migrate

import (
	"fmt"

	"github.com/agentstation/boorusync"
	"github.com/agentstation/boorusync/internal/cmd/alerts"
	"github.com/agentstation/boorusync/pkg/errors"
)

// statusAlert describes how a run ended.
func statusAlert(result *boorusync.Result, startPage int, err error) *alerts.Alert {
	var a *alerts.Alert
	switch {
	case errors.IsAborted(err):
		a = alerts.NewError("Migration aborted").WithError(err)
		if result.Pages > 0 {
			a.WithDetails(fmt.Sprintf("resume with --start-page %d", startPage+result.Pages-1))
		}
	case err != nil:
		a = alerts.NewError("Migration failed").WithError(err)
	case result.HasFailures():
		a = alerts.NewWarning(fmt.Sprintf("Migration finished with %d failed posts", result.Failures)).
			WithDetails("failed posts are logged with their post_id")
	case result.Capped:
		a = alerts.NewInfo(fmt.Sprintf("Stopped after scanning %d posts", result.Scanned))
	default:
		a = alerts.NewSuccess(fmt.Sprintf("Migration complete: %d of %d posts matched", result.Matched, result.Processed))
	}

	if result.DryRun {
		a.WithDetails("dry run: nothing was written to Bakabooru")
	}
	return a
}
