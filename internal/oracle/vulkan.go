//go:build vulkan

package oracle

import (
	"fmt"
	"log/slog"
	"strings"

	vk "github.com/darkace1998/golang-vulkan-api"

	"github.com/darkace1998/vkconform/internal/capability"
	"github.com/darkace1998/vkconform/internal/vkformat"
)

// VulkanValidationLayer is the standard Khronos validation layer
const VulkanValidationLayer = "VK_LAYER_KHRONOS_validation"

// VulkanOracle answers capability queries from a live Vulkan device.
type VulkanOracle struct {
	instance       vk.Instance
	physicalDevice vk.PhysicalDevice
	device         Device
	limits         capability.Limits
	limitsLoaded   bool
}

// Options configures oracle creation.
type Options struct {
	PreferredDevice  string // GPU name or "auto"
	EnableValidation bool
}

// Open creates a Vulkan instance, enumerates the physical devices and binds
// the oracle to the selected one.
func Open(opts Options) (*VulkanOracle, error) {
	appInfo := &vk.ApplicationInfo{
		ApplicationName:    "vkconform",
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		EngineName:         "No Engine",
		EngineVersion:      vk.MakeVersion(1, 0, 0),
		APIVersion:         vk.Version13,
	}

	instanceCreateInfo := &vk.InstanceCreateInfo{
		ApplicationInfo: appInfo,
	}

	if opts.EnableValidation {
		availableLayers, err := vk.EnumerateInstanceLayerProperties()
		if err == nil {
			for _, layer := range availableLayers {
				if layer.LayerName == VulkanValidationLayer {
					instanceCreateInfo.EnabledLayerNames = []string{VulkanValidationLayer}
					slog.Info("Vulkan validation layers enabled")
					break
				}
			}
		} else {
			slog.Warn("Failed to enumerate Vulkan layers", "error", err)
		}
	}

	instance, err := vk.CreateInstance(instanceCreateInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vulkan instance: %w", err)
	}

	o := &VulkanOracle{instance: instance}
	if err := o.bindDevice(opts.PreferredDevice); err != nil {
		vk.DestroyInstance(instance)
		return nil, err
	}
	return o, nil
}

func (o *VulkanOracle) bindDevice(preference string) error {
	physicalDevices, err := vk.EnumeratePhysicalDevices(o.instance)
	if err != nil {
		return fmt.Errorf("failed to enumerate physical devices: %w", err)
	}
	if len(physicalDevices) == 0 {
		return ErrNoDevice
	}

	devices := make([]Device, 0, len(physicalDevices))
	for _, physicalDevice := range physicalDevices {
		devices = append(devices, describeDevice(physicalDevice))
	}

	selected := SelectDevice(devices, preference)
	if !selected.Available {
		return ErrNoDevice
	}

	for _, physicalDevice := range physicalDevices {
		props := vk.GetPhysicalDeviceProperties(physicalDevice)
		if props.DeviceID == selected.DeviceID && props.VendorID == selected.VendorID {
			o.physicalDevice = physicalDevice
			o.device = selected
			slog.Info("Vulkan device bound",
				"name", selected.Name,
				"type", selected.Type,
				"driver_version", selected.DriverVersion,
			)
			return nil
		}
	}
	return ErrNoDevice
}

// EnumerateDevices lists the physical devices visible through a temporary
// instance. Used by the detect command.
func EnumerateDevices() ([]Device, error) {
	o, err := Open(Options{PreferredDevice: "auto"})
	if err != nil {
		return nil, err
	}
	defer o.Close()

	physicalDevices, err := vk.EnumeratePhysicalDevices(o.instance)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate physical devices: %w", err)
	}

	devices := make([]Device, 0, len(physicalDevices))
	for _, physicalDevice := range physicalDevices {
		devices = append(devices, describeDevice(physicalDevice))
	}
	return devices, nil
}

func describeDevice(physicalDevice vk.PhysicalDevice) Device {
	props := vk.GetPhysicalDeviceProperties(physicalDevice)

	// NVIDIA uses a vendor-specific encoding for driver version.
	var driverVersion string
	if props.VendorID == 0x10DE {
		major := (props.DriverVersion >> 22) & 0x3FF
		minor := (props.DriverVersion >> 14) & 0xFF
		patch := (props.DriverVersion >> 6) & 0xFF
		build := props.DriverVersion & 0x3F
		driverVersion = fmt.Sprintf("%d.%d.%d.%d", major, minor, patch, build)
	} else {
		driverVersion = fmt.Sprintf("%d.%d.%d",
			props.APIVersion.Major(),
			props.APIVersion.Minor(),
			props.APIVersion.Patch(),
		)
	}

	queueFamilies := vk.GetPhysicalDeviceQueueFamilyProperties(physicalDevice)
	hasGraphics := false
	for _, qf := range queueFamilies {
		if qf.QueueFlags&vk.QueueGraphicsBit != 0 {
			hasGraphics = true
			break
		}
	}

	return Device{
		Name:          props.DeviceName,
		Type:          mapDeviceType(props.DeviceType),
		DeviceID:      props.DeviceID,
		VendorID:      props.VendorID,
		DriverVersion: driverVersion,
		Available:     hasGraphics,
	}
}

func mapDeviceType(vkType vk.PhysicalDeviceType) string {
	switch vkType {
	case 1: // VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU
		return DeviceTypeDiscrete
	case 2: // VK_PHYSICAL_DEVICE_TYPE_INTEGRATED_GPU
		return DeviceTypeIntegrated
	case 3: // VK_PHYSICAL_DEVICE_TYPE_VIRTUAL_GPU
		return DeviceTypeVirtual
	case 4: // VK_PHYSICAL_DEVICE_TYPE_CPU
		return DeviceTypeCPU
	default:
		return DeviceTypeIntegrated
	}
}

// DeviceName returns the name of the bound device.
func (o *VulkanOracle) DeviceName() string {
	return o.device.Name
}

// FormatProperties implements capability.Oracle.
func (o *VulkanOracle) FormatProperties(format vkformat.Format) (capability.FormatProperties, error) {
	props, err := vk.GetPhysicalDeviceFormatProperties(o.physicalDevice, vk.Format(format))
	if err != nil {
		return capability.FormatProperties{}, fmt.Errorf("failed to query format properties: %w", err)
	}
	return capability.FormatProperties{
		OptimalTilingFeatures: capability.FormatFeatureFlags(props.OptimalTilingFeatures),
	}, nil
}

// ImageFormatProperties implements capability.Oracle.
func (o *VulkanOracle) ImageFormatProperties(format vkformat.Format, imageType capability.ImageType,
	tiling capability.Tiling, usage capability.UsageFlags,
	create capability.CreateFlags) (capability.ImageFormatProperties, capability.Result, error) {
	props, err := vk.GetPhysicalDeviceImageFormatProperties(o.physicalDevice,
		vk.Format(format), vk.ImageType(imageType), vk.ImageTiling(tiling),
		vk.ImageUsageFlags(usage), vk.ImageCreateFlags(create))
	if err != nil {
		if isFormatNotSupported(err) {
			return capability.ImageFormatProperties{}, capability.FormatNotSupported, nil
		}
		return capability.ImageFormatProperties{}, capability.QueryError, nil
	}
	return capability.ImageFormatProperties{
		SampleCounts: capability.SampleCountFlags(props.SampleCounts),
	}, capability.Supported, nil
}

// isFormatNotSupported distinguishes the VK_ERROR_FORMAT_NOT_SUPPORTED
// result from other query errors.
func isFormatNotSupported(err error) bool {
	return strings.Contains(err.Error(), "FORMAT_NOT_SUPPORTED")
}

// Limits implements capability.Oracle. The first seven limits come from the
// core device properties; the integer color attachment limit is a Vulkan
// 1.2 property.
func (o *VulkanOracle) Limits() (capability.Limits, error) {
	if o.limitsLoaded {
		return o.limits, nil
	}

	props := vk.GetPhysicalDeviceProperties(o.physicalDevice)
	limits := capability.Limits{
		FramebufferColorSampleCounts:    capability.SampleCountFlags(props.Limits.FramebufferColorSampleCounts),
		FramebufferDepthSampleCounts:    capability.SampleCountFlags(props.Limits.FramebufferDepthSampleCounts),
		FramebufferStencilSampleCounts:  capability.SampleCountFlags(props.Limits.FramebufferStencilSampleCounts),
		SampledImageColorSampleCounts:   capability.SampleCountFlags(props.Limits.SampledImageColorSampleCounts),
		SampledImageDepthSampleCounts:   capability.SampleCountFlags(props.Limits.SampledImageDepthSampleCounts),
		SampledImageIntegerSampleCounts: capability.SampleCountFlags(props.Limits.SampledImageIntegerSampleCounts),
		StorageImageSampleCounts:        capability.SampleCountFlags(props.Limits.StorageImageSampleCounts),
	}

	props12, err := vk.GetPhysicalDeviceVulkan12Properties(o.physicalDevice)
	if err != nil {
		return capability.Limits{}, fmt.Errorf("failed to query Vulkan 1.2 properties: %w", err)
	}
	limits.FramebufferIntegerColorSampleCounts = capability.SampleCountFlags(props12.FramebufferIntegerColorSampleCounts)

	o.limits = limits
	o.limitsLoaded = true
	return limits, nil
}

// Close releases the Vulkan instance.
func (o *VulkanOracle) Close() {
	vk.DestroyInstance(o.instance)
}
