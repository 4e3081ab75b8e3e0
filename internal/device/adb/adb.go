// Package adb talks to Android emulators through the adb command line tool.
package adb

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/icarus-itcs/lazylink/internal/device"
	"github.com/icarus-itcs/lazylink/internal/dispatch"
	"github.com/icarus-itcs/lazylink/internal/platform"
)

const defaultPath = "adb"

var errNoDevice = errors.New("no running emulator or attached device")

// Client wraps the adb binary.
type Client struct {
	Path   string // adb binary, "adb" when empty
	Serial string // preferred device serial, optional
	Runner device.Runner
}

// New creates a Client using os/exec.
func New(path, serial string) *Client {
	return &Client{Path: path, Serial: serial, Runner: device.ExecRunner{}}
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

// Devices lists everything adb knows about, online or not.
func (c *Client) Devices(ctx context.Context) ([]device.Device, error) {
	out, err := c.runner().Run(ctx, c.bin(), "devices", "-l")
	if err != nil {
		return nil, err
	}
	return parseDevices(out), nil
}

// parseDevices reads `adb devices -l` output:
//
//	List of devices attached
//	emulator-5554          device product:sdk_gphone64 model:sdk_gphone64_arm64 device:emu64a
func parseDevices(out []byte) []device.Device {
	var devices []device.Device
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		d := device.Device{
			ID:         fields[0],
			Name:       fields[0],
			Platform:   platform.Android,
			Online:     fields[1] == "device",
			IsEmulator: strings.HasPrefix(fields[0], "emulator-"),
		}
		for _, kv := range fields[2:] {
			key, val, ok := strings.Cut(kv, ":")
			if !ok {
				continue
			}
			switch key {
			case "model":
				d.Name = strings.ReplaceAll(val, "_", " ")
			}
		}
		devices = append(devices, d)
	}
	return devices
}

// pick prefers the configured serial, then an online emulator, then any online device.
func pick(devices []device.Device, serial string) (device.Device, error) {
	if serial != "" {
		for _, d := range devices {
			if d.ID == serial {
				if !d.Online {
					return device.Device{}, fmt.Errorf("device %s is not online", serial)
				}
				return d, nil
			}
		}
		return device.Device{}, fmt.Errorf("device %s not found", serial)
	}

	var fallback *device.Device
	for i := range devices {
		d := devices[i]
		if !d.Online {
			continue
		}
		if d.IsEmulator {
			return d, nil
		}
		if fallback == nil {
			fallback = &devices[i]
		}
	}
	if fallback != nil {
		return *fallback, nil
	}
	return device.Device{}, errNoDevice
}

// Provider resolves a device each time it is called.
func (c *Client) Provider() dispatch.Provider {
	return func(ctx context.Context) (dispatch.Opener, error) {
		devices, err := c.Devices(ctx)
		if err != nil {
			return nil, device.Unavailable(platform.Android, err)
		}
		d, err := pick(devices, c.Serial)
		if err != nil {
			return nil, device.Unavailable(platform.Android, err)
		}
		return c.Opener(d.ID), nil
	}
}

// Opener fires a VIEW intent for the URL on the device with the given serial.
func (c *Client) Opener(serial string) dispatch.Opener {
	return func(ctx context.Context, u *url.URL) error {
		out, err := c.runner().Run(ctx, c.bin(),
			"-s", serial,
			"shell", "am", "start", "-W",
			"-a", "android.intent.action.VIEW",
			"-d", shellQuote(u.String()),
		)
		if err != nil {
			return device.OpenFailed(platform.Android, err)
		}
		// am exits 0 even when no activity resolves the intent
		if msg := intentError(out); msg != "" {
			return device.OpenFailed(platform.Android, errors.New(msg))
		}
		return nil
	}
}

func intentError(out []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "Error:") || strings.HasPrefix(line, "Error type") {
			return line
		}
	}
	return ""
}

// shellQuote protects the URL from the device shell, which would otherwise split on & and ;.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
