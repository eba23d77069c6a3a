package cases

import (
	"reflect"
	"strings"
	"testing"

	"github.com/darkace1998/vkconform/internal/capability"
	"github.com/darkace1998/vkconform/internal/vkformat"
)

func countFormats(t *testing.T) (total, ycbcr int) {
	t.Helper()
	for _, r := range vkformat.TestRanges() {
		for f := r.First; f <= r.Last; f++ {
			total++
			if f.IsYCbCr() {
				ycbcr++
			}
		}
	}
	return total, ycbcr
}

func TestEnumerateGridSize(t *testing.T) {
	total, ycbcr := countFormats(t)
	all := Enumerate()

	// 2D optimal: cube + optimal-features + 16 usage subsets + one-sample
	// per format, plus one YCbCr case per chroma-subsampled format. The
	// remaining five (type, tiling) combinations emit one case per format.
	want := total*19 + ycbcr + 5*total
	if len(all) != want {
		t.Fatalf("Enumerate() produced %d cases, want %d", len(all), want)
	}
}

func TestEnumerateIdentifiersUnique(t *testing.T) {
	all := Enumerate()
	seen := make(map[string]Case, len(all))
	for _, c := range all {
		if prev, dup := seen[c.ID]; dup {
			t.Fatalf("identifier %q produced by both %+v and %+v", c.ID, prev, c)
		}
		seen[c.ID] = c
	}
}

func TestEnumerateDeterministic(t *testing.T) {
	first := Enumerate()
	second := Enumerate()
	if !reflect.DeepEqual(first, second) {
		t.Fatal("Enumerate() is not deterministic across calls")
	}
}

func TestEnumerateVariantAssignment(t *testing.T) {
	for _, c := range Enumerate() {
		is2DOptimal := c.ImageType == capability.Image2D && c.Tiling == capability.TilingOptimal

		if !is2DOptimal {
			if c.Subtest != SubtestLinearTilingOrNon2D {
				t.Fatalf("case %s: non-2D-optimal configuration got subtest %v", c.ID, c.Subtest)
			}
			continue
		}

		switch c.Subtest {
		case SubtestLinearTilingOrNon2D:
			t.Fatalf("case %s: 2D optimal configuration got the linear/non-2D subtest", c.ID)
		case SubtestYCbCrConversion:
			if !c.Format.IsYCbCr() {
				t.Fatalf("case %s: YCbCr subtest on non-YCbCr format %s", c.ID, c.Format.Name())
			}
		case SubtestUsageFlags:
		default:
			if c.Usage != 0 {
				t.Fatalf("case %s: usage flags %v on non-usage subtest %v", c.ID, c.Usage, c.Subtest)
			}
		}
	}
}

func TestEnumerateUsageSubsets(t *testing.T) {
	// Every 2D optimal format must get all 16 usage subsets.
	subsets := make(map[vkformat.Format]map[capability.UsageFlags]bool)
	for _, c := range Enumerate() {
		if c.Subtest != SubtestUsageFlags {
			continue
		}
		if subsets[c.Format] == nil {
			subsets[c.Format] = make(map[capability.UsageFlags]bool)
		}
		subsets[c.Format][c.Usage] = true
	}

	total, _ := countFormats(t)
	if len(subsets) != total {
		t.Fatalf("usage subsets emitted for %d formats, want %d", len(subsets), total)
	}
	for format, usages := range subsets {
		if len(usages) != 16 {
			t.Fatalf("format %s has %d usage subsets, want 16", format.Name(), len(usages))
		}
	}
}

func TestIdentifierShape(t *testing.T) {
	c := newCase(vkformat.R8G8B8A8Unorm, capability.Image2D, capability.TilingOptimal,
		capability.UsageColorAttachment|capability.UsageStorage, SubtestUsageFlags)

	want := "2d/optimal/r8g8b8a8_unorm_USAGE_FLAGS_COLOR_STORAGE"
	if c.ID != want {
		t.Errorf("identifier = %q, want %q", c.ID, want)
	}

	c = newCase(vkformat.D16Unorm, capability.Image3D, capability.TilingLinear, 0, SubtestLinearTilingOrNon2D)
	want = "3d/linear/d16_unorm_LINEAR_TILING_AND_NOT_2D_IMAGE_TYPE"
	if c.ID != want {
		t.Errorf("identifier = %q, want %q", c.ID, want)
	}
}

// TestIdentifierMnemonicOrder checks the fixed COLOR, DEPTH, SAMPLED,
// STORAGE order regardless of bit values.
func TestIdentifierMnemonicOrder(t *testing.T) {
	usage := capability.UsageStorage | capability.UsageSampled |
		capability.UsageDepthStencilAttachment | capability.UsageColorAttachment
	c := newCase(vkformat.R8G8B8A8Unorm, capability.Image2D, capability.TilingOptimal, usage, SubtestUsageFlags)
	if !strings.HasSuffix(c.ID, "_USAGE_FLAGS_COLOR_DEPTH_SAMPLED_STORAGE") {
		t.Errorf("identifier %q does not end with the ordered mnemonics", c.ID)
	}
}

func TestParseSubtest(t *testing.T) {
	for s := SubtestLinearTilingOrNon2D; s <= SubtestOneSampleCountPresent; s++ {
		parsed, err := ParseSubtest(s.String())
		if err != nil {
			t.Fatalf("ParseSubtest(%q): %v", s.String(), err)
		}
		if parsed != s {
			t.Errorf("ParseSubtest(%q) = %v, want %v", s.String(), parsed, s)
		}
	}

	if _, err := ParseSubtest("NOT_A_SUBTEST"); err == nil {
		t.Error("ParseSubtest accepted an unknown tag")
	}
}
