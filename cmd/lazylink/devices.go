package lazylink

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/icarus-itcs/lazylink/internal/device"
	"github.com/icarus-itcs/lazylink/internal/device/adb"
	"github.com/icarus-itcs/lazylink/internal/device/simctl"
	"github.com/icarus-itcs/lazylink/internal/platform"
	"github.com/icarus-itcs/lazylink/internal/settings"
	"github.com/icarus-itcs/lazylink/internal/ui"
)

type deviceLister interface {
	Devices(ctx context.Context) ([]device.Device, error)
}

func toolListers(s *settings.Settings) (android, ios deviceLister) {
	return adb.New(s.Android.ADB, s.Android.Serial), simctl.New(s.IOS.Xcrun, s.IOS.UDID)
}

func newDevicesCmd(a *app) *cobra.Command {
	sel := platform.Both

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List available simulators and emulators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			androidLister, iosLister := a.devices(a.settings)

			var all []device.Device
			var failed int
			for _, l := range []struct {
				platform platform.Selection
				lister   deviceLister
			}{
				{platform.Android, androidLister},
				{platform.IOS, iosLister},
			} {
				if !sel.Includes(l.platform) {
					continue
				}
				devices, err := l.lister.Devices(cmd.Context())
				if err != nil {
					failed++
					log.Warn().Err(err).Str("platform", l.platform.String()).Msg("could not list devices")
					continue
				}
				all = append(all, devices...)
			}

			// with Both, one missing toolchain is normal
			if failed > 0 && (sel != platform.Both || failed == 2) {
				return fmt.Errorf("could not list %s devices", sel.Label())
			}

			ui.RenderDevices(cmd.OutOrStdout(), all)
			return nil
		},
	}

	cmd.Flags().VarP(&sel, "platform", "p", "which devices to list: android, ios or both")

	return cmd
}
