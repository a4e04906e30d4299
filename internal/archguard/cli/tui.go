package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/archguard/archguard/internal/archguard/config"
	"github.com/archguard/archguard/internal/archguard/policy"
	"github.com/archguard/archguard/internal/archguard/tui"
	"github.com/archguard/archguard/internal/archguard/validate"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [root]",
		Short: "Browse findings interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			logger := newLogger()

			cfg, err := config.LoadConfig(root)
			if err != nil {
				c := config.DefaultConfig
				cfg = &c
			}

			validator := validate.New(cfg, policy.NewCache(logger), logger)
			report, err := validator.Validate(cmd.Context(), root, validate.Options{})
			if err != nil {
				return err
			}

			p := tea.NewProgram(tui.NewModel(report), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
