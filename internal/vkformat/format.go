// Package vkformat identifies Vulkan image formats and classifies them the
// way the sample-count rules need: compressed or not, chroma-subsampled or
// not, numeric class, and depth/stencil aspects. Format ids and names match
// the VkFormat enum.
package vkformat

import "strings"

// Format is a VkFormat enumerant value.
type Format uint32

// Bounds of the format families under test. Each family occupies a
// contiguous id range, so a pair of bounds covers every format in it.
const (
	// Core uncompressed and compressed formats.
	CoreFirst Format = 1   // R4G4_UNORM_PACK8
	CoreLast  Format = 184 // ASTC_12x12_SRGB_BLOCK

	// Sampler YCbCr conversion formats (promoted from VK_KHR_sampler_ycbcr_conversion).
	YCbCrFirst Format = 1000156000 // G8B8G8R8_422_UNORM
	YCbCrLast  Format = 1000156033 // G16_B16_R16_3PLANE_444_UNORM

	// 2-plane 4:4:4 formats (VK_EXT_ycbcr_2plane_444_formats).
	Plane444First Format = 1000330000 // G8_B8R8_2PLANE_444_UNORM
	Plane444Last  Format = 1000330003 // G16_B16R16_2PLANE_444_UNORM

	// 4-bit-alpha packed formats (VK_EXT_4444_formats).
	A4PackedFirst Format = 1000340000 // A4R4G4B4_UNORM_PACK16
	A4PackedLast  Format = 1000340001 // A4B4G4R4_UNORM_PACK16

	// HDR ASTC formats (VK_EXT_texture_compression_astc_hdr).
	ASTCSfloatFirst Format = 1000066000 // ASTC_4x4_SFLOAT_BLOCK
	ASTCSfloatLast  Format = 1000066013 // ASTC_12x12_SFLOAT_BLOCK

	// PVRTC formats (VK_IMG_format_pvrtc).
	PVRTCFirst Format = 1000054000 // PVRTC1_2BPP_UNORM_BLOCK_IMG
	PVRTCLast  Format = 1000054007 // PVRTC2_4BPP_SRGB_BLOCK_IMG
)

// Formats referenced individually by checks and tests.
const (
	R8G8B8A8Unorm        Format = 37
	R8G8B8A8Uint         Format = 41
	R16G16B16A16Sfloat   Format = 97
	R32Uint              Format = 98
	D16Unorm             Format = 124
	X8D24UnormPack32     Format = 125
	D32Sfloat            Format = 126
	S8Uint               Format = 127
	D16UnormS8Uint       Format = 128
	D24UnormS8Uint       Format = 129
	D32SfloatS8Uint      Format = 130
	BC1RGBUnormBlock     Format = 131
	ETC2R8G8B8UnormBlock Format = 147
)

// Range is an inclusive span of format ids.
type Range struct {
	First, Last Format
}

// TestRanges returns the six format families that make up the conformance
// grid, in enumeration order.
func TestRanges() []Range {
	return []Range{
		{CoreFirst, CoreLast},
		{YCbCrFirst, YCbCrLast},
		{Plane444First, Plane444Last},
		{A4PackedFirst, A4PackedLast},
		{ASTCSfloatFirst, ASTCSfloatLast},
		{PVRTCFirst, PVRTCLast},
	}
}

// Name returns the VkFormat enumerant name without the VK_FORMAT_ prefix,
// or "" for an id outside the known ranges.
func (f Format) Name() string {
	switch {
	case f >= CoreFirst && f <= CoreLast:
		return coreNames[f-CoreFirst]
	case f >= YCbCrFirst && f <= YCbCrLast:
		return ycbcrNames[f-YCbCrFirst]
	case f >= Plane444First && f <= Plane444Last:
		return plane444Names[f-Plane444First]
	case f >= A4PackedFirst && f <= A4PackedLast:
		return a4PackedNames[f-A4PackedFirst]
	case f >= ASTCSfloatFirst && f <= ASTCSfloatLast:
		return astcSfloatNames[f-ASTCSfloatFirst]
	case f >= PVRTCFirst && f <= PVRTCLast:
		return pvrtcNames[f-PVRTCFirst]
	}
	return ""
}

// Short returns the lowercase short name used in case identifiers.
func (f Format) Short() string {
	return strings.ToLower(f.Name())
}

// IsCompressed reports whether f is a block-compressed format
// (BC, ETC2, EAC, ASTC or PVRTC).
func (f Format) IsCompressed() bool {
	return strings.Contains(f.Name(), "_BLOCK")
}

// IsYCbCr reports whether f is a sampler-YCbCr-conversion format. These are
// restricted to a single sample per pixel regardless of usage.
func (f Format) IsYCbCr() bool {
	return (f >= YCbCrFirst && f <= YCbCrLast) || (f >= Plane444First && f <= Plane444Last)
}

// Numeric class predicates. The class is encoded in the enumerant name
// suffix, mirroring how the VkFormat enum is laid out. USCALED and SSCALED
// formats belong to none of these classes.

// classSuffix returns the name used for numeric-class parsing. The combined
// depth/stencil formats and X8_D24_UNORM_PACK32 pack channels of different
// types into one texel, so no single class applies and they yield "".
// Single-channel D16_UNORM, D32_SFLOAT and S8_UINT keep their class.
func (f Format) classSuffix() string {
	switch f {
	case X8D24UnormPack32, D16UnormS8Uint, D24UnormS8Uint, D32SfloatS8Uint:
		return ""
	}
	return f.Name()
}

// IsUnorm reports whether f stores unsigned normalized values. sRGB-encoded
// formats count as unsigned normalized.
func (f Format) IsUnorm() bool {
	n := f.classSuffix()
	return strings.Contains(n, "_UNORM") || strings.Contains(n, "_SRGB")
}

// IsSnorm reports whether f stores signed normalized values.
func (f Format) IsSnorm() bool {
	return strings.Contains(f.classSuffix(), "_SNORM")
}

// IsFloat reports whether f stores floating-point values.
func (f Format) IsFloat() bool {
	n := f.classSuffix()
	return strings.Contains(n, "_SFLOAT") || strings.Contains(n, "_UFLOAT")
}

// IsSint reports whether f stores signed integer values.
func (f Format) IsSint() bool {
	return strings.Contains(f.classSuffix(), "_SINT")
}

// IsUint reports whether f stores unsigned integer values. S8_UINT falls in
// this class through its single stencil channel.
func (f Format) IsUint() bool {
	return strings.Contains(f.classSuffix(), "_UINT")
}

// IsInteger reports whether f is a signed or unsigned integer format.
func (f Format) IsInteger() bool {
	return f.IsSint() || f.IsUint()
}

// HasDepth reports whether f has a depth aspect.
func (f Format) HasDepth() bool {
	switch f {
	case D16Unorm, X8D24UnormPack32, D32Sfloat, D16UnormS8Uint, D24UnormS8Uint, D32SfloatS8Uint:
		return true
	}
	return false
}

// HasStencil reports whether f has a stencil aspect.
func (f Format) HasStencil() bool {
	switch f {
	case S8Uint, D16UnormS8Uint, D24UnormS8Uint, D32SfloatS8Uint:
		return true
	}
	return false
}

// HasColor reports whether f has a color aspect.
func (f Format) HasColor() bool {
	return !f.HasDepth() && !f.HasStencil()
}
