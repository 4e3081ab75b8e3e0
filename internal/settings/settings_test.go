package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icarus-itcs/lazylink/internal/platform"
)

// chdir mirrors testing.T.Chdir (Go 1.24+): change the working directory
// for the duration of the test and restore it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	if filepath.IsAbs(dir) {
		t.Setenv("PWD", dir)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("chdir: restoring working directory: " + err.Error())
		}
	})
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
platform: ios
timeout: 30s
android:
  serial: emulator-5556
ios:
  xcrun: /usr/bin/xcrun
  udid: 0F3C2A10-5B5E-4C7B-9D43-2E0E9C7C1A11
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, platform.IOS, s.Platform)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, "adb", s.Android.ADB, "unset fields keep defaults")
	assert.Equal(t, "emulator-5556", s.Android.Serial)
	assert.Equal(t, "/usr/bin/xcrun", s.IOS.Xcrun)
	assert.Equal(t, "0F3C2A10-5B5E-4C7B-9D43-2E0E9C7C1A11", s.IOS.UDID)
	assert.Equal(t, path, s.Path)
}

func TestLoad_EmptyToolPathsFallBack(t *testing.T) {
	s, err := Load(writeFile(t, "android:\n  adb: \"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "adb", s.Android.ADB)
	assert.Equal(t, platform.Both, s.Platform)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown platform", content: "platform: windows\n"},
		{name: "malformed yaml", content: "platform: [ios\n"},
		{name: "bad duration", content: "timeout: soon\n"},
		{name: "negative timeout", content: "timeout: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_DefaultsWhenNothingFound(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("platform: android\n"), 0o644))
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, platform.Android, s.Platform)
	assert.Equal(t, FileName, s.Path)
}
