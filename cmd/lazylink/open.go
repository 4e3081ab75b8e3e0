package lazylink

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/icarus-itcs/lazylink/internal/device/adb"
	"github.com/icarus-itcs/lazylink/internal/device/simctl"
	"github.com/icarus-itcs/lazylink/internal/dispatch"
	"github.com/icarus-itcs/lazylink/internal/platform"
	"github.com/icarus-itcs/lazylink/internal/settings"
	"github.com/icarus-itcs/lazylink/internal/ui"
)

var (
	errNoURL    = errors.New("no deeplink given: pass a URL or use --from-clipboard")
	errNoScheme = errors.New("deeplink has no scheme")
)

func toolProviders(s *settings.Settings) (android, ios dispatch.Provider) {
	return adb.New(s.Android.ADB, s.Android.Serial).Provider(),
		simctl.New(s.IOS.Xcrun, s.IOS.UDID).Provider()
}

func newOpenCmd(a *app) *cobra.Command {
	var (
		sel           platform.Selection
		fromClipboard bool
		timeout       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "open [url]",
		Short: "Open a deeplink on the simulator, the emulator, or both",
		Example: `  lazylink open myapp://orders/42
  lazylink open https://example.com/promo --platform ios
  lazylink open --from-clipboard`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("platform") {
				sel = a.settings.Platform
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = a.settings.Timeout
			}

			raw, err := readURL(args, fromClipboard, a.readClipboard)
			if err != nil {
				return err
			}
			u, err := parseURL(raw)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			logger := log.With().
				Str("dispatch_id", uuid.NewString()).
				Str("platform", sel.String()).
				Str("url", u.String()).
				Logger()
			logger.Debug().Dur("timeout", timeout).Msg("dispatching deeplink")

			androidProvider, iosProvider := a.providers(a.settings)
			d := dispatch.New(
				withLogging(logger, platform.Android, androidProvider),
				withLogging(logger, platform.IOS, iosProvider),
			)

			start := time.Now()
			err = d.Open(ctx, u, sel)
			logger.Debug().Dur("took", time.Since(start)).Err(err).Msg("dispatch finished")

			ui.RenderOutcomes(cmd.OutOrStdout(), u, ui.Outcomes(sel, err))
			if err != nil {
				return fmt.Errorf("could not open %s on %s", u, sel.Label())
			}
			return nil
		},
	}

	cmd.Flags().VarP(&sel, "platform", "p", "target platform: android, ios or both (default from settings)")
	cmd.Flags().BoolVar(&fromClipboard, "from-clipboard", false, "read the deeplink from the clipboard")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "give up after this long, e.g. 10s (default from settings)")

	return cmd
}

func readURL(args []string, fromClipboard bool, readClipboard func() (string, error)) (string, error) {
	if len(args) > 0 && fromClipboard {
		return "", errors.New("pass a URL or --from-clipboard, not both")
	}
	if len(args) > 0 {
		return args[0], nil
	}
	if !fromClipboard {
		return "", errNoURL
	}

	text, err := readClipboard()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("clipboard is empty")
	}
	return text, nil
}

// parseURL only checks that the link can reach a URL handler; the app decides the rest.
func parseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errNoURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid deeplink %q: %w", raw, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: %q", errNoScheme, raw)
	}
	return u, nil
}

// withLogging records each provider and opener call at debug level.
func withLogging(logger zerolog.Logger, p platform.Selection, provide dispatch.Provider) dispatch.Provider {
	if provide == nil {
		return nil
	}
	logger = logger.With().Str("target", p.String()).Logger()

	return func(ctx context.Context) (dispatch.Opener, error) {
		open, err := provide(ctx)
		if err != nil {
			logger.Debug().Err(err).Msg("device unavailable")
			return nil, err
		}
		if open == nil {
			return nil, nil
		}
		logger.Debug().Msg("device ready")

		return func(ctx context.Context, u *url.URL) error {
			err := open(ctx, u)
			if err != nil {
				logger.Debug().Err(err).Msg("open failed")
			} else {
				logger.Debug().Msg("opened")
			}
			return err
		}, nil
	}
}
