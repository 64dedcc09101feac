package migrate

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/boorusync/internal/cmd/application"
	"github.com/agentstation/boorusync/pkg/constants"
)

// flagKeys maps each migrate flag to the configuration key it overrides.
var flagKeys = map[string]string{
	"bakabooru-api":        application.KeyBakabooruAPI,
	"oxibooru-api":         application.KeyOxibooruAPI,
	"bakabooru-username":   application.KeyBakabooruUsername,
	"bakabooru-password":   application.KeyBakabooruPassword,
	"oxibooru-auth-header": application.KeyOxibooruAuthHeader,
	"page-size":            application.KeyPageSize,
	"start-page":           application.KeyStartPage,
	"max-posts":            application.KeyMaxPosts,
	"max-similar-distance": application.KeyMaxSimilarDistance,
	"dry-run":              application.KeyDryRun,
	"fail-fast":            application.KeyFailFast,
	"timeout":              application.KeyTimeout,
	"djxl-path":            application.KeyDJXLPath,
	"lock-dir":             application.KeyLockDir,
}

// addMigrateFlags defines the migrate flags and binds them to v, so a flag
// wins over the environment and config file only when it is set.
func addMigrateFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()

	flags.String("bakabooru-api", constants.DefaultBakabooruAPI, "Bakabooru API base URL (target)")
	flags.String("oxibooru-api", constants.DefaultOxibooruAPI, "Oxibooru API base URL (origin)")
	flags.String("bakabooru-username", "", "Bakabooru username (requires --bakabooru-password)")
	flags.String("bakabooru-password", "", "Bakabooru password (requires --bakabooru-username)")
	flags.String("oxibooru-auth-header", "", "raw Authorization header sent to Oxibooru")

	flags.Int("page-size", constants.DefaultPageSize, "Bakabooru posts requested per page")
	flags.Int("start-page", constants.DefaultStartPage, "first Bakabooru page to read (1-based)")
	flags.Int("max-posts", 0, "stop after scanning this many posts (0 = unlimited)")
	flags.Float64("max-similar-distance", constants.DefaultMaxSimilarDistance, "largest distance accepted for a similar match (0..1)")

	flags.Bool("dry-run", false, "log intended changes without writing to Bakabooru")
	flags.Bool("fail-fast", false, "stop at the first post that fails")
	flags.String("timeout", constants.DefaultHTTPTimeout.String(), "per-request HTTP timeout, a duration (90s) or plain seconds (60)")
	flags.String("djxl-path", constants.DefaultDJXLPath, "djxl binary used to decode JPEG XL posts")
	flags.String("lock-dir", "", "directory for the run lock file (default is the user cache dir)")

	for name, key := range flagKeys {
		// Every name above is defined, so binding cannot fail.
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
}
