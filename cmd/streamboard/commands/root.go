package commands

import (
	"streamboard/internal/config"
	"streamboard/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	dataSources []string
	aliasPath   string
)

var rootCmd = &cobra.Command{
	Use:   "streamboard",
	Short: "Streamboard renders portfolio BI dashboards from pre-computed JSON snapshots",
	Long: `A dashboard engine for content-portfolio analytics: it loads an immutable
JSON snapshot, folds franchise aliases into canonical entities, applies
date/title/platform filters, and derives a consistent set of KPIs, trend
series, and ranked tables for terminal or HTML output.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("streamboard starting")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringSliceVar(&dataSources, "data", nil, "snapshot path or URL (repeatable)")
	rootCmd.PersistentFlags().StringVar(&aliasPath, "aliases", "", "franchise alias map JSON (default: built-in)")
}

// sources resolves the snapshot locations: flags win over configuration.
func sources() []string {
	if len(dataSources) > 0 {
		return dataSources
	}
	return cfg.DataSources
}

// aliasSource resolves the franchise alias map path the same way: flag first,
// then configuration. Empty means the built-in alias set.
func aliasSource() string {
	if aliasPath != "" {
		return aliasPath
	}
	return cfg.AliasPath
}
