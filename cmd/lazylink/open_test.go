package lazylink

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icarus-itcs/lazylink/internal/device"
	"github.com/icarus-itcs/lazylink/internal/dispatch"
	"github.com/icarus-itcs/lazylink/internal/platform"
	"github.com/icarus-itcs/lazylink/internal/settings"
)

type recorder struct {
	provided int
	opened   []string
}

func (r *recorder) provider(provideErr, openErr error) dispatch.Provider {
	return func(context.Context) (dispatch.Opener, error) {
		r.provided++
		if provideErr != nil {
			return nil, provideErr
		}
		return func(_ context.Context, u *url.URL) error {
			r.opened = append(r.opened, u.String())
			return openErr
		}, nil
	}
}

func testApp(android, ios dispatch.Provider) *app {
	return &app{
		settings: settings.Default(),
		providers: func(*settings.Settings) (dispatch.Provider, dispatch.Provider) {
			return android, ios
		},
		readClipboard: func() (string, error) { return "myapp://from/clipboard", nil },
	}
}

func runOpen(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	cmd := newOpenCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOpenCmd_DefaultsToSettingsPlatform(t *testing.T) {
	var android, ios recorder
	a := testApp(android.provider(nil, nil), ios.provider(nil, nil))

	out, err := runOpen(t, a, "myapp://orders/42")
	require.NoError(t, err)

	assert.Equal(t, []string{"myapp://orders/42"}, android.opened)
	assert.Equal(t, []string{"myapp://orders/42"}, ios.opened)
	assert.Contains(t, out, "Android")
	assert.Contains(t, out, "iOS")
	assert.Contains(t, out, "opened myapp://orders/42")
}

func TestOpenCmd_PlatformFlag(t *testing.T) {
	var android, ios recorder
	a := testApp(android.provider(nil, nil), ios.provider(nil, nil))

	_, err := runOpen(t, a, "--platform", "ios", "myapp://home")
	require.NoError(t, err)

	assert.Zero(t, android.provided, "android must not be touched")
	assert.Equal(t, 1, ios.provided)
}

func TestOpenCmd_SettingsPlatform(t *testing.T) {
	var android, ios recorder
	a := testApp(android.provider(nil, nil), ios.provider(nil, nil))
	a.settings.Platform = platform.Android

	_, err := runOpen(t, a, "myapp://home")
	require.NoError(t, err)

	assert.Equal(t, 1, android.provided)
	assert.Zero(t, ios.provided)
}

func TestOpenCmd_BothFail(t *testing.T) {
	var android, ios recorder
	a := testApp(
		android.provider(device.Unavailable(platform.Android, errors.New("no-device")), nil),
		ios.provider(device.Unavailable(platform.IOS, errors.New("no-sim")), nil),
	)

	out, err := runOpen(t, a, "myapp://home")
	require.Error(t, err)
	assert.Equal(t, "could not open myapp://home on Both", err.Error())
	assert.Contains(t, out, "Android: provide: device unavailable: no-device")
	assert.Contains(t, out, "iOS: provide: device unavailable: no-sim")
}

func TestOpenCmd_OneFails(t *testing.T) {
	var android, ios recorder
	a := testApp(
		android.provider(nil, device.OpenFailed(platform.Android, errors.New("open-err"))),
		ios.provider(nil, nil),
	)

	out, err := runOpen(t, a, "myapp://home")
	require.Error(t, err)
	assert.Contains(t, out, "opened myapp://home")
	assert.Contains(t, out, "open-err")
	assert.Len(t, ios.opened, 1)
}

func TestOpenCmd_FromClipboard(t *testing.T) {
	var android, ios recorder
	a := testApp(android.provider(nil, nil), ios.provider(nil, nil))

	_, err := runOpen(t, a, "--from-clipboard", "-p", "android")
	require.NoError(t, err)
	assert.Equal(t, []string{"myapp://from/clipboard"}, android.opened)
}

func TestOpenCmd_BadInput(t *testing.T) {
	var android, ios recorder
	a := testApp(android.provider(nil, nil), ios.provider(nil, nil))

	_, err := runOpen(t, a)
	assert.ErrorIs(t, err, errNoURL)

	_, err = runOpen(t, a, "orders/42")
	assert.ErrorIs(t, err, errNoScheme)

	_, err = runOpen(t, a, "--platform", "web", "myapp://home")
	assert.Error(t, err)

	assert.Zero(t, android.provided+ios.provided, "nothing is dispatched for bad input")
}

func TestReadURL(t *testing.T) {
	clip := func(text string, err error) func() (string, error) {
		return func() (string, error) { return text, err }
	}

	got, err := readURL([]string{"myapp://a"}, false, nil)
	require.NoError(t, err)
	assert.Equal(t, "myapp://a", got)

	_, err = readURL([]string{"myapp://a"}, true, clip("myapp://b", nil))
	assert.Error(t, err)

	_, err = readURL(nil, true, clip("  \n", nil))
	assert.EqualError(t, err, "clipboard is empty")

	_, err = readURL(nil, true, clip("", errors.New("no xclip")))
	assert.EqualError(t, err, "failed to read clipboard: no xclip")
}

func TestParseURL(t *testing.T) {
	u, err := parseURL("  https://example.com/promo?code=SPRING \n")
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "code=SPRING", u.RawQuery)

	_, err = parseURL("%zz://bad")
	assert.Error(t, err)
}

func TestWithLogging_PassesResultsThrough(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)
	openErr := errors.New("open-err")
	var r recorder

	wrapped := withLogging(logger, platform.IOS, r.provider(nil, openErr))
	open, err := wrapped(context.Background())
	require.NoError(t, err)

	u, _ := url.Parse("myapp://x")
	assert.Same(t, openErr, open(context.Background(), u))
	assert.Contains(t, logs.String(), `"target":"ios"`)
	assert.Contains(t, logs.String(), "open failed")

	assert.Nil(t, withLogging(logger, platform.IOS, nil))
}

func TestRootCmd_Version(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("platform: ios\n"), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--config", cfg, "--no-color"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "lazylink dev")
}

func TestRootCmd_BadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("platform: windows\n"), 0o644))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"version", "--config", cfg})
	assert.ErrorContains(t, cmd.Execute(), "failed to load settings")
}
