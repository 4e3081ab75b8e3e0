package lazylink

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/icarus-itcs/lazylink/internal/platform"
	"github.com/icarus-itcs/lazylink/internal/ui"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that adb and simctl are installed and working",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := a.checker.Run(cmd.Context(), a.settings)
			ui.RenderPreflight(cmd.OutOrStdout(), results)

			if results.HasErrors {
				return errors.New("preflight checks failed")
			}
			if !results.Ready(platform.Android) && !results.Ready(platform.IOS) {
				return errors.New("neither adb nor simctl is usable")
			}
			return nil
		},
	}
}
