// Package migrate provides the migrate command, which copies tags and
// sources from Oxibooru onto matching Bakabooru posts.
package migrate

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/boorusync/internal/cmd/alerts"
	"github.com/agentstation/boorusync/internal/cmd/application"
	"github.com/agentstation/boorusync/internal/cmd/output"
	"github.com/agentstation/boorusync/pkg/errors"
)

// NewCommand creates the migrate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy tags and sources from Oxibooru onto matching Bakabooru posts",
		Args:  cobra.NoArgs,
		Long: `Migrate pages through every Bakabooru post and reverse searches each image
on Oxibooru. JPEG XL posts are decoded to JPEG with djxl first; videos and
other media are skipped.

For an exact match, or the closest similar match within
--max-similar-distance, the command:
• Creates missing tag categories with Oxibooru's color and order
• Creates missing tags, and assigns a category to uncategorized ones
• Attaches every matched tag to the post
• Appends the match's sources the post does not have yet

Existing data is never removed. A failing post is logged and counted, and
the run moves on unless --fail-fast is set. A summary is printed at the end.`,
		Example: `  boorusync migrate --dry-run                 # Preview changes
  boorusync migrate --max-posts 50            # Try the first 50 posts
  boorusync migrate --start-page 20 -o json   # Resume from page 20, JSON summary
  boorusync migrate --bakabooru-username admin --bakabooru-password secret`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.Settings()
			if err != nil {
				return err
			}

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return errors.NewConfigError("format", err.Error(), err)
			}
			format = output.DetectFormat(string(format))

			status := alerts.NewWriter(cmd.ErrOrStderr(), app.NoColor())
			return Run(cmd.Context(), app.Logger(), settings, cmd.OutOrStdout(), status, format)
		},
	}

	addMigrateFlags(cmd, app.Viper())

	return cmd
}
