// Package simctl talks to iOS simulators through `xcrun simctl`.
package simctl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/icarus-itcs/lazylink/internal/device"
	"github.com/icarus-itcs/lazylink/internal/dispatch"
	"github.com/icarus-itcs/lazylink/internal/platform"
)

const (
	defaultPath   = "xcrun"
	stateBooted   = "Booted"
	runtimePrefix = "com.apple.CoreSimulator.SimRuntime."
)

var errNoSimulator = errors.New("no booted simulator")

// Client wraps xcrun simctl.
type Client struct {
	Path   string // xcrun binary, "xcrun" when empty
	UDID   string // preferred simulator, optional
	Runner device.Runner
}

// New creates a Client using os/exec.
func New(path, udid string) *Client {
	return &Client{Path: path, UDID: udid, Runner: device.ExecRunner{}}
}

type simDevice struct {
	UDID        string `json:"udid"`
	Name        string `json:"name"`
	State       string `json:"state"`
	IsAvailable bool   `json:"isAvailable"`
}

type simDeviceList struct {
	Devices map[string][]simDevice `json:"devices"`
}

func (c *Client) bin() string {
	if c.Path == "" {
		return defaultPath
	}
	return c.Path
}

func (c *Client) runner() device.Runner {
	if c.Runner == nil {
		return device.ExecRunner{}
	}
	return c.Runner
}

// Devices lists available simulators. Booted ones are reported online.
func (c *Client) Devices(ctx context.Context) ([]device.Device, error) {
	out, err := c.runner().Run(ctx, c.bin(), "simctl", "list", "devices", "--json")
	if err != nil {
		return nil, err
	}
	return parseDevices(out)
}

func parseDevices(out []byte) ([]device.Device, error) {
	var list simDeviceList
	if err := json.Unmarshal(out, &list); err != nil {
		return nil, fmt.Errorf("failed to parse simctl output: %w", err)
	}

	// map iteration order is random; keep the listing stable
	runtimes := make([]string, 0, len(list.Devices))
	for rt := range list.Devices {
		runtimes = append(runtimes, rt)
	}
	sort.Strings(runtimes)

	var devices []device.Device
	for _, rt := range runtimes {
		version := runtimeVersion(rt)
		for _, sim := range list.Devices[rt] {
			if !sim.IsAvailable {
				continue
			}
			devices = append(devices, device.Device{
				ID:         sim.UDID,
				Name:       sim.Name,
				Platform:   platform.IOS,
				Online:     sim.State == stateBooted,
				IsEmulator: true,
				OSVersion:  version,
			})
		}
	}
	return devices, nil
}

// runtimeVersion turns "com.apple.CoreSimulator.SimRuntime.iOS-17-2" into "17.2".
func runtimeVersion(runtime string) string {
	id := strings.TrimPrefix(runtime, runtimePrefix)
	_, version, ok := strings.Cut(id, "-")
	if !ok {
		return id
	}
	return strings.ReplaceAll(version, "-", ".")
}

func pick(devices []device.Device, udid string) (device.Device, error) {
	for _, d := range devices {
		if udid != "" && d.ID != udid {
			continue
		}
		if d.Online {
			return d, nil
		}
		if udid != "" {
			return device.Device{}, fmt.Errorf("simulator %s is not booted", udid)
		}
	}
	if udid != "" {
		return device.Device{}, fmt.Errorf("simulator %s not found", udid)
	}
	return device.Device{}, errNoSimulator
}

// Provider resolves a booted simulator each time it is called.
func (c *Client) Provider() dispatch.Provider {
	return func(ctx context.Context) (dispatch.Opener, error) {
		devices, err := c.Devices(ctx)
		if err != nil {
			return nil, device.Unavailable(platform.IOS, err)
		}
		d, err := pick(devices, c.UDID)
		if err != nil {
			return nil, device.Unavailable(platform.IOS, err)
		}
		return c.Opener(d.ID), nil
	}
}

// Opener asks the simulator with the given UDID to open the URL.
func (c *Client) Opener(udid string) dispatch.Opener {
	return func(ctx context.Context, u *url.URL) error {
		if _, err := c.runner().Run(ctx, c.bin(), "simctl", "openurl", udid, u.String()); err != nil {
			return device.OpenFailed(platform.IOS, err)
		}
		return nil
	}
}
