package device

import "github.com/icarus-itcs/lazylink/internal/platform"

// Device represents a simulator, emulator or attached handset
type Device struct {
	ID         string
	Name       string
	Platform   platform.Selection // Android or IOS, never Both
	Online     bool
	IsEmulator bool
	APILevel   string // Android API level
	OSVersion  string // iOS runtime version
}

// String returns a display string for the device
func (d Device) String() string {
	status := "offline"
	if d.Online {
		status = "online"
	}
	name := d.Name
	if name == "" {
		name = d.ID
	}
	return name + " (" + d.Platform.Label() + ", " + status + ")"
}
