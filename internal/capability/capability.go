// Package capability defines the device-capability surface consumed by the
// sample-count checks: sample-count sets, image configuration enums, the
// per-usage device limits, and the read-only Oracle interface that answers
// format and image-format queries for a device.
package capability

import (
	"strconv"
	"strings"

	"github.com/darkace1998/vkconform/internal/vkformat"
)

// SampleCountFlags is a bitmask of supported per-pixel sample counts.
// Each bit stands for a power-of-two count, matching VkSampleCountFlagBits.
type SampleCountFlags uint32

const (
	Count1  SampleCountFlags = 1 << 0
	Count2  SampleCountFlags = 1 << 1
	Count4  SampleCountFlags = 1 << 2
	Count8  SampleCountFlags = 1 << 3
	Count16 SampleCountFlags = 1 << 4
	Count32 SampleCountFlags = 1 << 5
	Count64 SampleCountFlags = 1 << 6
)

// String renders the set as the contained counts, e.g. "{1,4,8}".
func (s SampleCountFlags) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for bit := 0; bit < 7; bit++ {
		if s&(1<<bit) == 0 {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(1 << bit))
		first = false
	}
	b.WriteByte('}')
	return b.String()
}

// ImageType is the dimensionality of an image, matching VkImageType.
type ImageType uint32

const (
	Image1D ImageType = 0
	Image2D ImageType = 1
	Image3D ImageType = 2
)

func (t ImageType) String() string {
	switch t {
	case Image1D:
		return "1d"
	case Image2D:
		return "2d"
	case Image3D:
		return "3d"
	}
	return "unknown"
}

// Tiling is the memory layout mode of an image, matching VkImageTiling.
type Tiling uint32

const (
	TilingOptimal Tiling = 0
	TilingLinear  Tiling = 1
)

func (t Tiling) String() string {
	switch t {
	case TilingOptimal:
		return "optimal"
	case TilingLinear:
		return "linear"
	}
	return "unknown"
}

// UsageFlags is a bitmask of declared image usage intents, restricted to the
// four usages that carry their own sample-count limit. Values match the
// corresponding VkImageUsageFlagBits.
type UsageFlags uint32

const (
	UsageSampled                UsageFlags = 1 << 2
	UsageStorage                UsageFlags = 1 << 3
	UsageColorAttachment        UsageFlags = 1 << 4
	UsageDepthStencilAttachment UsageFlags = 1 << 5
)

// Mnemonic returns the fixed-order usage mnemonics appended to case names,
// e.g. "_COLOR_SAMPLED". Empty for zero usage.
func (u UsageFlags) Mnemonic() string {
	var b strings.Builder
	if u&UsageColorAttachment != 0 {
		b.WriteString("_COLOR")
	}
	if u&UsageDepthStencilAttachment != 0 {
		b.WriteString("_DEPTH")
	}
	if u&UsageSampled != 0 {
		b.WriteString("_SAMPLED")
	}
	if u&UsageStorage != 0 {
		b.WriteString("_STORAGE")
	}
	return b.String()
}

// FormatFeatureFlags is a bitmask of per-format capabilities, matching
// VkFormatFeatureFlagBits. Only the attachment bits matter to the checks.
type FormatFeatureFlags uint32

const (
	FeatureColorAttachment        FormatFeatureFlags = 1 << 7
	FeatureDepthStencilAttachment FormatFeatureFlags = 1 << 9
)

// CreateFlags is a bitmask of image create flags, matching
// VkImageCreateFlagBits.
type CreateFlags uint32

// CreateCubeCompatible marks a 2D image as usable for cube map views.
const CreateCubeCompatible CreateFlags = 1 << 4

// Limits holds the eight per-usage sample-count limits reported by the
// device. The first seven come from VkPhysicalDeviceLimits; the integer
// color attachment limit comes from VkPhysicalDeviceVulkan12Properties.
type Limits struct {
	FramebufferColorSampleCounts        SampleCountFlags
	FramebufferIntegerColorSampleCounts SampleCountFlags
	FramebufferDepthSampleCounts        SampleCountFlags
	FramebufferStencilSampleCounts      SampleCountFlags
	SampledImageColorSampleCounts       SampleCountFlags
	SampledImageDepthSampleCounts       SampleCountFlags
	SampledImageIntegerSampleCounts     SampleCountFlags
	StorageImageSampleCounts            SampleCountFlags
}

// FormatProperties is the per-format capability snapshot. Only the
// optimal-tiling feature subset is consumed by the checks.
type FormatProperties struct {
	OptimalTilingFeatures FormatFeatureFlags
}

// ImageFormatProperties is the capability snapshot for one exact image
// configuration.
type ImageFormatProperties struct {
	SampleCounts SampleCountFlags
}

// Result classifies the outcome of an image-format query.
type Result int

const (
	// Supported: the configuration is supported and the returned
	// properties are valid.
	Supported Result = iota
	// FormatNotSupported: the device rejects the configuration outright.
	// This is not a conformance failure.
	FormatNotSupported
	// QueryError: any other non-success result.
	QueryError
)

func (r Result) String() string {
	switch r {
	case Supported:
		return "supported"
	case FormatNotSupported:
		return "format-not-supported"
	case QueryError:
		return "query-error"
	}
	return "unknown"
}

// Oracle is the read-only device-capability interface the checks consume.
// Implementations must be safe for repeated queries; the checks never
// mutate device state through it.
type Oracle interface {
	// FormatProperties returns the feature flags for a format.
	FormatProperties(format vkformat.Format) (FormatProperties, error)

	// ImageFormatProperties probes one exact image configuration and, when
	// the Result is Supported, returns its capabilities.
	ImageFormatProperties(format vkformat.Format, imageType ImageType, tiling Tiling,
		usage UsageFlags, create CreateFlags) (ImageFormatProperties, Result, error)

	// Limits returns the per-usage sample-count limits of the device.
	Limits() (Limits, error)
}
