// Package oracle provides the device-backed capability oracle. The real
// implementation binds to the Vulkan loader and is compiled in with the
// "vulkan" build tag; without it a stub reports that no device is present.
package oracle

import (
	"errors"
	"log/slog"
	"strings"
)

// Device type labels.
const (
	DeviceTypeDiscrete   = "discrete"
	DeviceTypeIntegrated = "integrated"
	DeviceTypeVirtual    = "virtual"
	DeviceTypeCPU        = "cpu"
)

// ErrNoDevice means no usable Vulkan device was found (or Vulkan support
// is not compiled in).
var ErrNoDevice = errors.New("oracle: no usable Vulkan device")

// Device describes one enumerated physical device.
type Device struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	DeviceID      uint32 `json:"device_id"`
	VendorID      uint32 `json:"vendor_id"`
	DriverVersion string `json:"driver_version"`
	Available     bool   `json:"available"`
}

// SelectDevice picks a device by preference. "auto" (or empty) prefers an
// available discrete GPU, then integrated, then any available device; a
// non-auto preference matches by name, case-insensitively, falling back to
// auto-selection when nothing matches.
func SelectDevice(devices []Device, preference string) Device {
	autoSelect := preference == "auto" || preference == ""

	if !autoSelect {
		preferredLower := strings.ToLower(preference)
		for _, dev := range devices {
			if strings.Contains(strings.ToLower(dev.Name), preferredLower) && dev.Available {
				slog.Info("Selected preferred device", "device", dev.Name, "preferred", preference)
				return dev
			}
		}
		slog.Warn("Preferred Vulkan device not found, falling back to auto-selection",
			"preferred_device", preference,
		)
	}

	for _, dev := range devices {
		if dev.Available && dev.Type == DeviceTypeDiscrete {
			slog.Info("Auto-selected discrete GPU", "device", dev.Name)
			return dev
		}
	}
	for _, dev := range devices {
		if dev.Available && dev.Type == DeviceTypeIntegrated {
			slog.Info("Auto-selected integrated GPU", "device", dev.Name)
			return dev
		}
	}
	for _, dev := range devices {
		if dev.Available {
			slog.Info("Auto-selected available device", "device", dev.Name, "type", dev.Type)
			return dev
		}
	}

	if len(devices) > 0 {
		slog.Warn("No available devices found, using first device", "device", devices[0].Name)
		return devices[0]
	}
	return Device{}
}
