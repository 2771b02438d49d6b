package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/hosttest/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered test binaries without running them",
		Long: `List shows the test binaries discovery would run for each target
architecture. Nothing is executed and no result documents are touched.`,
		Args: cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := configAdapter.Load(m.Path(configFlag))
			if err != nil {
				return err
			}

			var tests []m.TestBinary

			for _, arch := range cfg.Arches {
				found, err := discovery.Discover(cfg.ArchDir(arch), arch)
				if err != nil {
					return err
				}

				tests = append(tests, found...)
			}

			return ui.DisplayBinaries(tests)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
