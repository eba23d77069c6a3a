// Package cases enumerates the conformance case grid: every format in the
// test ranges crossed with image type, tiling, usage-flag subsets and the
// applicable check variants. Enumeration is a pure function of the static
// format ranges, so repeated calls yield the identical ordered grid.
package cases

import (
	"fmt"

	"github.com/darkace1998/vkconform/internal/capability"
	"github.com/darkace1998/vkconform/internal/vkformat"
)

// Subtest selects which check a case runs. Each case is tagged with exactly
// one variant at construction time.
type Subtest int

const (
	// SubtestLinearTilingOrNon2D: linear tiling or non-2D images must
	// report exactly one supported sample count.
	SubtestLinearTilingOrNon2D Subtest = iota
	// SubtestCubeCompatible: cube-compatible images must report exactly
	// one supported sample count.
	SubtestCubeCompatible
	// SubtestOptimalTilingFeatures: a format whose optimal-tiling features
	// include neither attachment bit must report exactly one sample count.
	SubtestOptimalTilingFeatures
	// SubtestYCbCrConversion: chroma-subsampled formats must report
	// exactly one supported sample count.
	SubtestYCbCrConversion
	// SubtestUsageFlags: the reported set must be a superset of the
	// limit-derived expected set for the usage combination.
	SubtestUsageFlags
	// SubtestOneSampleCountPresent: the reported set must include the
	// single-sample bit.
	SubtestOneSampleCountPresent
)

var subtestNames = map[Subtest]string{
	SubtestLinearTilingOrNon2D:   "LINEAR_TILING_AND_NOT_2D_IMAGE_TYPE",
	SubtestCubeCompatible:        "CUBE_COMPATIBLE",
	SubtestOptimalTilingFeatures: "OPTIMAL_TILING_FEATURES",
	SubtestYCbCrConversion:       "YCBCR_CONVERSION",
	SubtestUsageFlags:            "USAGE_FLAGS",
	SubtestOneSampleCountPresent: "ONE_SAMPLE_COUNT_PRESENT",
}

func (s Subtest) String() string {
	if name, ok := subtestNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseSubtest maps a variant tag back to its Subtest value.
func ParseSubtest(name string) (Subtest, error) {
	for s, n := range subtestNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown subtest %q", name)
}

// Case describes one image configuration under test. Cases are immutable
// values: built once during enumeration and consumed by a single check.
type Case struct {
	ID        string
	Format    vkformat.Format
	ImageType capability.ImageType
	Tiling    capability.Tiling
	Usage     capability.UsageFlags
	Subtest   Subtest
}

// usageBits is the fixed order in which usage subsets are enumerated and
// named: COLOR, DEPTH, SAMPLED, STORAGE.
var usageBits = [4]capability.UsageFlags{
	capability.UsageColorAttachment,
	capability.UsageDepthStencilAttachment,
	capability.UsageSampled,
	capability.UsageStorage,
}

// identifier builds the deterministic case name:
// <type>/<tiling>/<format-short>_<VARIANT><usage mnemonics>.
// Format short names are unique per id and the variant and mnemonic parts
// are fixed strings, so no two distinct cases collide.
func identifier(c Case) string {
	s := fmt.Sprintf("%s/%s/%s_%s", c.ImageType, c.Tiling, c.Format.Short(), c.Subtest)
	if c.Subtest == SubtestUsageFlags {
		s += c.Usage.Mnemonic()
	}
	return s
}

func newCase(format vkformat.Format, imageType capability.ImageType, tiling capability.Tiling,
	usage capability.UsageFlags, subtest Subtest) Case {
	c := Case{
		Format:    format,
		ImageType: imageType,
		Tiling:    tiling,
		Usage:     usage,
		Subtest:   subtest,
	}
	c.ID = identifier(c)
	return c
}

// appendUsageFlagCases emits one USAGE_FLAGS case per subset of the four
// usage bits, in subset-mask order (16 cases).
func appendUsageFlagCases(out []Case, format vkformat.Format, imageType capability.ImageType,
	tiling capability.Tiling) []Case {
	for combination := 0; combination < 1<<len(usageBits); combination++ {
		var usage capability.UsageFlags
		for i, bit := range usageBits {
			if combination>>i&1 != 0 {
				usage |= bit
			}
		}
		out = append(out, newCase(format, imageType, tiling, usage, SubtestUsageFlags))
	}
	return out
}

// Enumerate materializes the full case grid in deterministic order:
// image type, then tiling, then format range order. 2D optimal-tiling
// configurations get the full variant set; every other configuration gets a
// single exactly-one-sample check.
func Enumerate() []Case {
	imageTypes := [3]capability.ImageType{capability.Image1D, capability.Image2D, capability.Image3D}
	tilings := [2]capability.Tiling{capability.TilingOptimal, capability.TilingLinear}

	var out []Case
	for _, imageType := range imageTypes {
		for _, tiling := range tilings {
			for _, r := range vkformat.TestRanges() {
				for format := r.First; format <= r.Last; format++ {
					if imageType == capability.Image2D && tiling == capability.TilingOptimal {
						out = append(out, newCase(format, imageType, tiling, 0, SubtestCubeCompatible))
						out = append(out, newCase(format, imageType, tiling, 0, SubtestOptimalTilingFeatures))
						if format.IsYCbCr() {
							out = append(out, newCase(format, imageType, tiling, 0, SubtestYCbCrConversion))
						}
						out = appendUsageFlagCases(out, format, imageType, tiling)
						out = append(out, newCase(format, imageType, tiling, 0, SubtestOneSampleCountPresent))
					} else {
						out = append(out, newCase(format, imageType, tiling, 0, SubtestLinearTilingOrNon2D))
					}
				}
			}
		}
	}
	return out
}
