//go:build !vulkan

package oracle

import (
	"log/slog"

	"github.com/darkace1998/vkconform/internal/capability"
	"github.com/darkace1998/vkconform/internal/vkformat"
)

// VulkanOracle answers capability queries from a live Vulkan device.
// This is a stub implementation when Vulkan support is not compiled in.
type VulkanOracle struct{}

// Options configures oracle creation.
type Options struct {
	PreferredDevice  string // GPU name or "auto"
	EnableValidation bool
}

// Open reports that no device is available.
// This is a stub implementation when Vulkan support is not compiled in.
func Open(_ Options) (*VulkanOracle, error) {
	slog.Info("Vulkan support not compiled in, no device oracle available")
	return nil, ErrNoDevice
}

// EnumerateDevices returns no devices.
// This is a stub implementation when Vulkan support is not compiled in.
func EnumerateDevices() ([]Device, error) {
	slog.Info("Vulkan not available - returning empty device list")
	return nil, nil
}

// DeviceName returns an empty name.
func (o *VulkanOracle) DeviceName() string {
	return ""
}

// FormatProperties implements capability.Oracle.
func (o *VulkanOracle) FormatProperties(_ vkformat.Format) (capability.FormatProperties, error) {
	return capability.FormatProperties{}, ErrNoDevice
}

// ImageFormatProperties implements capability.Oracle.
func (o *VulkanOracle) ImageFormatProperties(_ vkformat.Format, _ capability.ImageType,
	_ capability.Tiling, _ capability.UsageFlags,
	_ capability.CreateFlags) (capability.ImageFormatProperties, capability.Result, error) {
	return capability.ImageFormatProperties{}, capability.QueryError, ErrNoDevice
}

// Limits implements capability.Oracle.
func (o *VulkanOracle) Limits() (capability.Limits, error) {
	return capability.Limits{}, ErrNoDevice
}

// Close releases the oracle.
func (o *VulkanOracle) Close() {}
