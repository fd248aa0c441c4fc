// internal/ua/ua.go
//
// User-Agent summary for request logs.
//
// This wrapper isolates github.com/avct/uasurfer so the rest of the
// codebase never sees its enums.  Request logs only need a coarse picture
// of who is filling in forms: browser family, OS family, device class, and
// whether the client is a bot.
package ua

import (
	"strings"

	surfer "github.com/avct/uasurfer"
)

// Info is the coarse UA summary.
//
// Example (Chrome on macOS):
//
//	Browser "Chrome"
//	OS      "MacOSX"
//	Device  "Desktop"
//	IsBot   false
type Info struct {
	Browser string
	OS      string
	Device  string // "Desktop", "Mobile", "Tablet", or "Other"
	IsBot   bool
}

// Parse converts a raw header into Info.  An empty header yields Unknown
// families and Device "Other".
func Parse(raw string) Info {
	u := surfer.Parse(raw)

	info := Info{
		Browser: strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		OS:      strings.TrimPrefix(u.OS.Name.String(), "OS"),
		IsBot:   u.IsBot(),
	}

	switch u.DeviceType {
	case surfer.DeviceComputer:
		info.Device = "Desktop"
	case surfer.DeviceTablet:
		info.Device = "Tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		info.Device = "Mobile"
	default:
		info.Device = "Other"
	}
	return info
}
