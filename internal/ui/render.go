package ui

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/icarus-itcs/lazylink/internal/device"
	"github.com/icarus-itcs/lazylink/internal/dispatch"
	"github.com/icarus-itcs/lazylink/internal/platform"
	"github.com/icarus-itcs/lazylink/internal/preflight"
)

// Outcome is what happened on one platform.
type Outcome struct {
	Platform platform.Selection
	Err      error
}

// Outcomes splits the result of dispatch.Open back into per-platform outcomes.
// A single failure under Both is attributed by its *device.PlatformError; when
// the error carries no platform it is reported against Both.
func Outcomes(sel platform.Selection, err error) []Outcome {
	if sel != platform.Both {
		return []Outcome{{Platform: sel, Err: err}}
	}

	var agg *dispatch.AggregateError
	if errors.As(err, &agg) && len(agg.Errors) == 2 {
		return []Outcome{
			{Platform: platform.Android, Err: agg.Errors[1]},
			{Platform: platform.IOS, Err: agg.Errors[0]},
		}
	}

	out := []Outcome{{Platform: platform.Android}, {Platform: platform.IOS}}
	if err == nil {
		return out
	}

	var pe *device.PlatformError
	if errors.As(err, &pe) {
		for i := range out {
			if out[i].Platform == pe.Platform {
				out[i].Err = err
				return out
			}
		}
	}
	return []Outcome{{Platform: platform.Both, Err: err}}
}

// RenderOutcomes writes one line per platform.
func RenderOutcomes(w io.Writer, u *url.URL, outcomes []Outcome) {
	for _, o := range outcomes {
		badge := PlatformBadge(o.Platform) + strings.Repeat(" ", 8-len(o.Platform.Label()))
		if o.Err == nil {
			fmt.Fprintf(w, "%s %s opened %s\n", successStyle.Render("✓"), badge, urlStyle.Render(u.String()))
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", failedStyle.Render("✗"), badge, errorStyle.Render(o.Err.Error()))
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	return t
}

// RenderDevices writes a device table, or a hint when there is nothing to show.
func RenderDevices(w io.Writer, devices []device.Device) {
	if len(devices) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No simulators or emulators found"))
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"", "Platform", "Name", "ID", "Version"})
	for _, d := range devices {
		version := d.OSVersion
		if version == "" {
			version = d.APILevel
		}
		kind := ""
		if !d.IsEmulator {
			kind = mutedStyle.Render(" (device)")
		}
		t.AppendRow(table.Row{StatusDot(d.Online), PlatformBadge(d.Platform), d.Name + kind, d.ID, version})
	}
	t.Render()
}

// RenderPreflight writes the check table followed by the summary line.
func RenderPreflight(w io.Writer, r *preflight.Results) {
	fmt.Fprintln(w, titleStyle.Render("Preflight checks"))

	t := newTable(w)
	t.AppendHeader(table.Row{"", "Tool", "Platform", "Result", "Path"})
	for _, c := range r.Checks {
		t.AppendRow(table.Row{checkIcon(c.Status), c.Name, PlatformBadge(c.Platform), c.Message, mutedStyle.Render(c.Path)})
	}
	t.Render()

	summary := r.Summary()
	switch {
	case r.HasErrors:
		summary = errorStyle.Render(summary)
	case r.HasWarnings:
		summary = warnStyle.Render(summary)
	default:
		summary = successStyle.Render(summary)
	}
	fmt.Fprintln(w, summary)
}

func checkIcon(s preflight.Status) string {
	switch s {
	case preflight.StatusOK:
		return successStyle.Render("✓")
	case preflight.StatusWarning:
		return warnStyle.Render("!")
	default:
		return failedStyle.Render("✗")
	}
}
