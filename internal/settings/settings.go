package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/icarus-itcs/lazylink/internal/platform"
)

// FileName is looked up in the working directory, then in the home directory.
const FileName = ".lazylink.yaml"

// Settings holds user configuration
type Settings struct {
	Platform platform.Selection `yaml:"platform"`
	Timeout  time.Duration      `yaml:"timeout"`
	Android  Android            `yaml:"android"`
	IOS      IOS                `yaml:"ios"`

	// Path is the file the settings were read from, empty for defaults.
	Path string `yaml:"-"`
}

// Android configures the adb side.
type Android struct {
	ADB    string `yaml:"adb"`
	Serial string `yaml:"serial"`
}

// IOS configures the simctl side.
type IOS struct {
	Xcrun string `yaml:"xcrun"`
	UDID  string `yaml:"udid"`
}

// Default returns the built-in settings
func Default() *Settings {
	return &Settings{
		Platform: platform.Both,
		Timeout:  15 * time.Second,
		Android:  Android{ADB: "adb"},
		IOS:      IOS{Xcrun: "xcrun"},
	}
}

// Load reads settings from path. With an empty path the default locations are
// searched and a missing file yields Default().
func Load(path string) (*Settings, error) {
	if path != "" {
		return loadFile(path)
	}

	for _, candidate := range candidates() {
		s, err := loadFile(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return s, err
	}
	return Default(), nil
}

func candidates() []string {
	paths := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, FileName))
	}
	return paths
}

func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("invalid settings file %s: %w", path, err)
	}
	if s.Timeout < 0 {
		return nil, fmt.Errorf("invalid settings file %s: timeout must not be negative", path)
	}
	if s.Android.ADB == "" {
		s.Android.ADB = "adb"
	}
	if s.IOS.Xcrun == "" {
		s.IOS.Xcrun = "xcrun"
	}
	s.Path = path
	return s, nil
}
