package preflight

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/icarus-itcs/lazylink/internal/device"
	"github.com/icarus-itcs/lazylink/internal/platform"
	"github.com/icarus-itcs/lazylink/internal/settings"
)

// CheckResult represents the result of a single check
type CheckResult struct {
	Name     string
	Platform platform.Selection
	Status   Status
	Message  string
	Path     string
}

// Status represents the status of a check
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusError
)

// Results contains all preflight check results
type Results struct {
	Checks      []CheckResult
	HasErrors   bool
	HasWarnings bool
}

// RequiredTool defines a tool to check for
type RequiredTool struct {
	Name     string
	Command  []string
	Platform platform.Selection
	Required bool
	GOOS     string // "all", "darwin", "linux", "windows"
}

// Checker runs preflight checks. LookPath and Runner are swappable for tests.
type Checker struct {
	GOOS     string
	LookPath func(file string) (string, error)
	Runner   device.Runner
}

// NewChecker returns a Checker for the current machine
func NewChecker() *Checker {
	return &Checker{
		GOOS:     runtime.GOOS,
		LookPath: exec.LookPath,
		Runner:   device.ExecRunner{},
	}
}

// Tools returns the tools lazylink shells out to, using the configured binaries.
// None is required: either platform is useful on its own.
func Tools(s *settings.Settings) []RequiredTool {
	return []RequiredTool{
		// iOS tools (macOS only)
		{Name: "Xcode CLI", Command: []string{s.IOS.Xcrun}, Platform: platform.IOS, GOOS: "darwin"},
		{Name: "iOS Simulator", Command: []string{s.IOS.Xcrun, "simctl", "help"}, Platform: platform.IOS, GOOS: "darwin"},

		// Android tools
		{Name: "Android ADB", Command: []string{s.Android.ADB}, Platform: platform.Android, GOOS: "all"},
	}
}

// Run executes the checks for every tool that applies to c.GOOS
func (c *Checker) Run(ctx context.Context, s *settings.Settings) *Results {
	results := &Results{
		Checks: make([]CheckResult, 0),
	}

	for _, tool := range Tools(s) {
		// Skip platform-specific tools
		if tool.GOOS != "all" && tool.GOOS != c.GOOS {
			continue
		}

		result := c.checkTool(ctx, tool)
		results.Checks = append(results.Checks, result)

		switch result.Status {
		case StatusError:
			results.HasErrors = true
		case StatusWarning:
			results.HasWarnings = true
		}
	}

	return results
}

func (c *Checker) checkTool(ctx context.Context, tool RequiredTool) CheckResult {
	result := CheckResult{
		Name:     tool.Name,
		Platform: tool.Platform,
	}

	cmdName := tool.Command[0]
	path, err := c.LookPath(cmdName)
	if err != nil {
		if tool.Required {
			result.Status = StatusError
			result.Message = "Not found - required"
		} else {
			result.Status = StatusWarning
			result.Message = "Not found - optional"
		}
		return result
	}

	result.Path = path

	// If command has args, try to run it to verify it works
	if len(tool.Command) > 1 {
		if _, err := c.Runner.Run(ctx, path, tool.Command[1:]...); err != nil {
			result.Status = StatusWarning
			result.Message = fmt.Sprintf("Found but may not work: %v", err)
			return result
		}
	}

	if version := c.toolVersion(ctx, path, cmdName); version != "" {
		result.Message = version
	} else {
		result.Message = "OK"
	}
	result.Status = StatusOK

	return result
}

func (c *Checker) toolVersion(ctx context.Context, path, cmd string) string {
	var versionArgs []string

	switch base(cmd) {
	case "adb":
		versionArgs = []string{"version"}
	case "xcrun":
		// xcrun --version doesn't give useful output, skip
		return ""
	default:
		versionArgs = []string{"--version"}
	}

	out, err := c.Runner.Run(ctx, path, versionArgs...)
	if err != nil {
		return ""
	}

	version := strings.TrimSpace(string(out))
	// Clean up version string - take first line only
	if idx := strings.Index(version, "\n"); idx != -1 {
		version = version[:idx]
	}
	version = strings.TrimPrefix(version, "Android Debug Bridge version ")

	if len(version) > 30 {
		version = version[:30] + "..."
	}

	return version
}

func base(cmd string) string {
	if idx := strings.LastIndexAny(cmd, `/\`); idx != -1 {
		return cmd[idx+1:]
	}
	return cmd
}

// Summary returns a short summary of the results
func (r *Results) Summary() string {
	ok := 0
	warn := 0
	fail := 0

	for _, c := range r.Checks {
		switch c.Status {
		case StatusOK:
			ok++
		case StatusWarning:
			warn++
		case StatusError:
			fail++
		}
	}

	if fail > 0 {
		return fmt.Sprintf("%d errors, %d warnings", fail, warn)
	}
	if warn > 0 {
		return fmt.Sprintf("%d warnings", warn)
	}
	return fmt.Sprintf("%d checks passed", ok)
}

// Ready reports whether at least one tool for p passed.
func (r *Results) Ready(p platform.Selection) bool {
	for _, c := range r.Checks {
		if c.Platform == p && c.Status == StatusOK {
			return true
		}
	}
	return false
}
