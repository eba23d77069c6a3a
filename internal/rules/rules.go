// Package rules derives the sample-count set the Vulkan specification
// requires a device to support for a given format and usage combination.
// Every function is pure: the expected set depends only on the format, the
// usage flags and the device limits snapshot.
package rules

import (
	"github.com/darkace1998/vkconform/internal/capability"
	"github.com/darkace1998/vkconform/internal/vkformat"
)

// ColorCounts returns the expected sample counts contributed by color
// attachment usage, or 0 when the format contributes no constraint.
func ColorCounts(format vkformat.Format, limits capability.Limits) capability.SampleCountFlags {
	if format.IsCompressed() {
		return 0
	}
	// Floating- and fixed-point color formats are bound by the framebuffer
	// color limit; integer formats by the extended integer color limit.
	if format.IsFloat() || format.IsSnorm() || format.IsUnorm() {
		return limits.FramebufferColorSampleCounts
	}
	if format.IsInteger() {
		return limits.FramebufferIntegerColorSampleCounts
	}
	return 0
}

// DepthStencilCounts returns the expected sample counts contributed by
// depth/stencil attachment usage. A depth aspect selects the depth limit;
// a stencil-only format selects the stencil limit.
func DepthStencilCounts(format vkformat.Format, limits capability.Limits) capability.SampleCountFlags {
	if format.IsCompressed() {
		return 0
	}
	if format.HasDepth() {
		return limits.FramebufferDepthSampleCounts
	}
	if format.HasStencil() {
		return limits.FramebufferStencilSampleCounts
	}
	return 0
}

// SampledCounts returns the expected sample counts contributed by sampled
// usage. A depth aspect selects the sampled depth limit; color-aspect
// formats select the sampled color limit. Integer-class formats then take
// the sampled-image integer limit outright, replacing whatever was selected
// before it. The combined depth/stencil formats carry no numeric class, so
// the override never displaces a depth limit.
func SampledCounts(format vkformat.Format, limits capability.Limits) capability.SampleCountFlags {
	if format.IsCompressed() || format.IsYCbCr() {
		return 0
	}

	var counts capability.SampleCountFlags
	if format.HasDepth() {
		counts = limits.SampledImageDepthSampleCounts
	} else if format.HasColor() {
		counts = limits.SampledImageColorSampleCounts
	}

	// Deliberately an override, not an intersection.
	if format.IsInteger() {
		counts = limits.SampledImageIntegerSampleCounts
	}
	return counts
}

// StorageCounts returns the expected sample counts contributed by storage
// usage. The storage limit applies to every format.
func StorageCounts(limits capability.Limits) capability.SampleCountFlags {
	return limits.StorageImageSampleCounts
}

// Combine derives the expected sample-count set for a usage combination.
// Each usage bit contributes its per-usage set; a configuration with several
// usages must satisfy all of them at once, so the contributions intersect.
// With no contributing usage the device only has to support one sample.
func Combine(format vkformat.Format, usage capability.UsageFlags, limits capability.Limits) capability.SampleCountFlags {
	var contributions []capability.SampleCountFlags

	if usage&capability.UsageColorAttachment != 0 {
		contributions = append(contributions, ColorCounts(format, limits))
	}
	if usage&capability.UsageDepthStencilAttachment != 0 {
		contributions = append(contributions, DepthStencilCounts(format, limits))
	}
	if usage&capability.UsageSampled != 0 {
		contributions = append(contributions, SampledCounts(format, limits))
	}
	if usage&capability.UsageStorage != 0 {
		contributions = append(contributions, StorageCounts(limits))
	}

	if len(contributions) == 0 {
		return capability.Count1
	}

	expected := contributions[0]
	for _, c := range contributions[1:] {
		expected &= c
	}
	return expected
}

// IsSuperset reports whether every bit of expected is present in actual.
func IsSuperset(actual, expected capability.SampleCountFlags) bool {
	return actual&expected == expected
}
