package commands

import (
	"os"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	exportOut  string
	exportOpen bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dashboard as a standalone HTML page",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, builder, err := buildState(cmd.Context())
		if err != nil {
			return err
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		if err := builder.WriteHTML(f, state.Filter()); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		log.Info().Str("path", exportOut).Msg("Dashboard exported")

		if exportOpen {
			if err := browser.OpenFile(exportOut); err != nil {
				log.Warn().Err(err).Msg("Could not open browser")
			}
		}
		return nil
	},
}

func init() {
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "dashboard.html", "output file path")
	exportCmd.Flags().BoolVar(&exportOpen, "open", false, "open the exported page in the default browser")
	rootCmd.AddCommand(exportCmd)
}
