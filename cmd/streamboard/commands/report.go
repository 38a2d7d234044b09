package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard report to the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, builder, err := buildState(cmd.Context())
		if err != nil {
			return err
		}

		md, err := builder.Markdown(state.Filter())
		if err != nil {
			return err
		}

		// Styled output only on a real terminal; raw markdown pipes cleanly.
		if isatty.IsTerminal(os.Stdout.Fd()) {
			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(110),
			)
			if err == nil {
				if styled, err := r.Render(md); err == nil {
					fmt.Print(styled)
					return nil
				}
			}
		}

		fmt.Println(md)
		return nil
	},
}

func init() {
	addFilterFlags(reportCmd)
	rootCmd.AddCommand(reportCmd)
}
