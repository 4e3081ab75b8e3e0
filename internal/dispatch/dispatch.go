// Package dispatch delivers a deeplink to the Android emulator, the iOS
// simulator, or both, and folds the per-platform outcomes into one error.
//
// Device access is injected through Provider and Opener so every failure mode
// can be exercised without a real simulator or emulator.
package dispatch

import (
	"context"
	"errors"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/icarus-itcs/lazylink/internal/device"
	"github.com/icarus-itcs/lazylink/internal/platform"
)

var errNoProvider = errors.New("no provider configured")

// Opener delivers a URL to one ready device.
type Opener func(ctx context.Context, u *url.URL) error

// Provider obtains an Opener for a platform, or fails when no device is available.
type Provider func(ctx context.Context) (Opener, error)

// Dispatcher binds the two platform providers.
type Dispatcher struct {
	android Provider
	ios     Provider
}

// New creates a Dispatcher
func New(android, ios Provider) *Dispatcher {
	return &Dispatcher{android: android, ios: ios}
}

// Open delivers u to the platforms named by sel.
func (d *Dispatcher) Open(ctx context.Context, u *url.URL, sel platform.Selection) error {
	return Open(ctx, u, sel, d.android, d.ios)
}

// Open delivers u to the platforms named by sel and returns nil on success.
//
// For a single platform the provider or opener error is returned as is.
// For Both, the two platforms are attempted concurrently and unconditionally:
// if one fails its error is returned alone, and if both fail the result is an
// *AggregateError holding the iOS error followed by the Android error.
func Open(ctx context.Context, u *url.URL, sel platform.Selection, android, ios Provider) error {
	switch sel {
	case platform.Android:
		return openOn(ctx, u, platform.Android, android)
	case platform.IOS:
		return openOn(ctx, u, platform.IOS, ios)
	}

	var androidErr, iosErr error
	var g errgroup.Group
	g.Go(func() error {
		androidErr = openOn(ctx, u, platform.Android, android)
		return nil
	})
	g.Go(func() error {
		iosErr = openOn(ctx, u, platform.IOS, ios)
		return nil
	})
	_ = g.Wait()

	return combine(iosErr, androidErr)
}

func openOn(ctx context.Context, u *url.URL, p platform.Selection, provide Provider) error {
	if provide == nil {
		return device.Unavailable(p, errNoProvider)
	}
	open, err := provide(ctx)
	if err != nil {
		return err
	}
	if open == nil {
		return device.Unavailable(p, errNoProvider)
	}
	return open(ctx, u)
}

func combine(iosErr, androidErr error) error {
	switch {
	case iosErr == nil && androidErr == nil:
		return nil
	case iosErr != nil && androidErr != nil:
		return &AggregateError{Errors: []error{iosErr, androidErr}}
	case iosErr != nil:
		return iosErr
	default:
		return androidErr
	}
}
