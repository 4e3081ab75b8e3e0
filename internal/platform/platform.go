package platform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSelection is returned by Parse for anything other than android, ios or both.
var ErrUnknownSelection = errors.New("unknown platform")

// Selection picks which targets a deeplink is delivered to.
// Android, IOS and Both are the only values; the zero value is Android.
type Selection struct {
	id selectionID
}

type selectionID uint8

const (
	androidID selectionID = iota
	iosID
	bothID
)

var (
	Android = Selection{id: androidID}
	IOS     = Selection{id: iosID}
	Both    = Selection{id: bothID}
)

// All returns every selection in display order.
func All() []Selection {
	return []Selection{Android, IOS, Both}
}

// Parse converts a flag or config value into a Selection
func Parse(s string) (Selection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "android":
		return Android, nil
	case "ios":
		return IOS, nil
	case "both":
		return Both, nil
	}
	return Android, fmt.Errorf("%w %q (want android, ios or both)", ErrUnknownSelection, s)
}

// String returns the lowercase name used on the command line and in config files.
func (s Selection) String() string {
	switch s.id {
	case iosID:
		return "ios"
	case bothID:
		return "both"
	default:
		return "android"
	}
}

// Label returns a human display name
func (s Selection) Label() string {
	switch s.id {
	case iosID:
		return "iOS"
	case bothID:
		return "Both"
	default:
		return "Android"
	}
}

// Includes reports whether s targets p. Both includes Android and IOS.
func (s Selection) Includes(p Selection) bool {
	return s == p || s == Both
}

// Set implements pflag.Value.
func (s *Selection) Set(v string) error {
	parsed, err := Parse(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *Selection) Type() string {
	return "platform"
}

// MarshalText implements encoding.TextMarshaler.
func (s Selection) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Selection) UnmarshalText(b []byte) error {
	return s.Set(string(b))
}
