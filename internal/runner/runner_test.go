package runner

import (
	"testing"

	"github.com/darkace1998/vkconform/internal/capability"
	"github.com/darkace1998/vkconform/internal/cases"
	"github.com/darkace1998/vkconform/internal/vkformat"
)

// fakeOracle answers every query from fixed values.
type fakeOracle struct {
	limits   capability.Limits
	features capability.FormatFeatureFlags
	counts   capability.SampleCountFlags
	result   capability.Result
}

func (f *fakeOracle) FormatProperties(vkformat.Format) (capability.FormatProperties, error) {
	return capability.FormatProperties{OptimalTilingFeatures: f.features}, nil
}

func (f *fakeOracle) ImageFormatProperties(vkformat.Format, capability.ImageType,
	capability.Tiling, capability.UsageFlags,
	capability.CreateFlags) (capability.ImageFormatProperties, capability.Result, error) {
	if f.result != capability.Supported {
		return capability.ImageFormatProperties{}, f.result, nil
	}
	return capability.ImageFormatProperties{SampleCounts: f.counts}, capability.Supported, nil
}

func (f *fakeOracle) Limits() (capability.Limits, error) {
	return f.limits, nil
}

func usageCase(format vkformat.Format, usage capability.UsageFlags) cases.Case {
	for _, c := range cases.Enumerate() {
		if c.Format == format && c.Subtest == cases.SubtestUsageFlags && c.Usage == usage &&
			c.ImageType == capability.Image2D && c.Tiling == capability.TilingOptimal {
			return c
		}
	}
	panic("case not found")
}

func variantCase(t *testing.T, subtest cases.Subtest) cases.Case {
	t.Helper()
	for _, c := range cases.Enumerate() {
		if c.Subtest == subtest {
			return c
		}
	}
	t.Fatalf("no case with subtest %v", subtest)
	return cases.Case{}
}

func TestUsageFlagsColorOnly(t *testing.T) {
	// 8-bit RGBA unorm, COLOR usage, color limit {1,2,4,8}.
	oracle := &fakeOracle{
		limits: capability.Limits{
			FramebufferColorSampleCounts: capability.Count1 | capability.Count2 | capability.Count4 | capability.Count8,
		},
		features: capability.FeatureColorAttachment,
		counts:   capability.Count1 | capability.Count2 | capability.Count4 | capability.Count8,
	}

	c := usageCase(vkformat.R8G8B8A8Unorm, capability.UsageColorAttachment)
	out := New(oracle).Evaluate(c)
	if out.Status != StatusPass {
		t.Fatalf("Evaluate = %v (%s), want pass", out.Status, out.Message)
	}
	if out.Expected != oracle.limits.FramebufferColorSampleCounts {
		t.Errorf("expected set = %v, want %v", out.Expected, oracle.limits.FramebufferColorSampleCounts)
	}
}

func TestUsageFlagsColorSampledIntersection(t *testing.T) {
	oracle := &fakeOracle{
		limits: capability.Limits{
			FramebufferColorSampleCounts:  capability.Count1 | capability.Count2 | capability.Count4 | capability.Count8,
			SampledImageColorSampleCounts: capability.Count1 | capability.Count2 | capability.Count4,
		},
		features: capability.FeatureColorAttachment,
	}
	c := usageCase(vkformat.R8G8B8A8Unorm, capability.UsageColorAttachment|capability.UsageSampled)
	wantExpected := capability.Count1 | capability.Count2 | capability.Count4

	oracle.counts = capability.Count1 | capability.Count2 | capability.Count4
	out := New(oracle).Evaluate(c)
	if out.Status != StatusPass {
		t.Fatalf("device reporting {1,2,4}: Evaluate = %v (%s), want pass", out.Status, out.Message)
	}
	if out.Expected != wantExpected {
		t.Errorf("expected set = %v, want %v", out.Expected, wantExpected)
	}

	oracle.counts = capability.Count1 | capability.Count2
	out = New(oracle).Evaluate(c)
	if out.Status != StatusFail {
		t.Fatalf("device reporting {1,2}: Evaluate = %v, want fail", out.Status)
	}
}

func TestUsageFlagsDegeneratesWithoutAttachmentFeatures(t *testing.T) {
	oracle := &fakeOracle{
		limits: capability.Limits{
			FramebufferColorSampleCounts: capability.Count1 | capability.Count4,
		},
		features: 0,
		counts:   capability.Count1,
	}
	c := usageCase(vkformat.R8G8B8A8Unorm, capability.UsageColorAttachment)

	out := New(oracle).Evaluate(c)
	if out.Status != StatusPass {
		t.Fatalf("exactly {1} without attachment features: Evaluate = %v (%s), want pass", out.Status, out.Message)
	}

	oracle.counts = capability.Count1 | capability.Count2
	out = New(oracle).Evaluate(c)
	if out.Status != StatusFail {
		t.Fatalf("{1,2} without attachment features: Evaluate = %v, want fail", out.Status)
	}
}

func TestOptimalTilingFeatures(t *testing.T) {
	c := variantCase(t, cases.SubtestOptimalTilingFeatures)

	tests := []struct {
		name         string
		features     capability.FormatFeatureFlags
		counts       capability.SampleCountFlags
		want         Status
		wantExpected capability.SampleCountFlags
	}{
		{"no attachment features, exactly one sample", 0, capability.Count1, StatusPass, capability.Count1},
		{"no attachment features, multisampled", 0, capability.Count1 | capability.Count2,
			StatusFail, capability.Count1},
		{"color attachment feature lifts the constraint", capability.FeatureColorAttachment,
			capability.Count1 | capability.Count2, StatusPass, 0},
		{"depth attachment feature lifts the constraint", capability.FeatureDepthStencilAttachment,
			capability.Count1 | capability.Count4, StatusPass, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &fakeOracle{features: tt.features, counts: tt.counts}
			out := New(oracle).Evaluate(c)
			if out.Status != tt.want {
				t.Errorf("Evaluate = %v (%s), want %v", out.Status, out.Message, tt.want)
			}
			if out.Expected != tt.wantExpected {
				t.Errorf("Expected set = %v, want %v", out.Expected, tt.wantExpected)
			}
		})
	}
}

func TestLinearTilingOrNon2D(t *testing.T) {
	c := variantCase(t, cases.SubtestLinearTilingOrNon2D)

	oracle := &fakeOracle{counts: capability.Count1}
	if out := New(oracle).Evaluate(c); out.Status != StatusPass {
		t.Fatalf("exactly {1}: Evaluate = %v (%s), want pass", out.Status, out.Message)
	}

	oracle.counts = capability.Count1 | capability.Count2
	if out := New(oracle).Evaluate(c); out.Status != StatusFail {
		t.Fatalf("{1,2}: Evaluate = %v, want fail", out.Status)
	}
}

func TestCubeCompatible(t *testing.T) {
	c := variantCase(t, cases.SubtestCubeCompatible)

	oracle := &fakeOracle{counts: capability.Count1}
	if out := New(oracle).Evaluate(c); out.Status != StatusPass {
		t.Fatalf("exactly {1}: Evaluate = %v (%s), want pass", out.Status, out.Message)
	}

	oracle.counts = capability.Count1 | capability.Count4
	if out := New(oracle).Evaluate(c); out.Status != StatusFail {
		t.Fatalf("{1,4}: Evaluate = %v, want fail", out.Status)
	}
}

func TestYCbCrConversion(t *testing.T) {
	c := variantCase(t, cases.SubtestYCbCrConversion)
	if !c.Format.IsYCbCr() {
		t.Fatalf("YCbCr case enumerated for non-YCbCr format %s", c.Format.Name())
	}

	oracle := &fakeOracle{counts: capability.Count1}
	if out := New(oracle).Evaluate(c); out.Status != StatusPass {
		t.Fatalf("exactly {1}: Evaluate = %v (%s), want pass", out.Status, out.Message)
	}

	oracle.counts = capability.Count1 | capability.Count2
	if out := New(oracle).Evaluate(c); out.Status != StatusFail {
		t.Fatalf("{1,2}: Evaluate = %v, want fail", out.Status)
	}
}

func TestOneSampleCountPresent(t *testing.T) {
	c := variantCase(t, cases.SubtestOneSampleCountPresent)

	oracle := &fakeOracle{counts: capability.Count2 | capability.Count4}
	if out := New(oracle).Evaluate(c); out.Status != StatusFail {
		t.Fatalf("{2,4} without the single-sample bit: Evaluate = %v, want fail", out.Status)
	}

	oracle.counts = capability.Count1 | capability.Count2 | capability.Count4
	if out := New(oracle).Evaluate(c); out.Status != StatusPass {
		t.Fatalf("{1,2,4}: Evaluate = %v (%s), want pass", out.Status, out.Message)
	}
}

func TestFormatNotSupportedSkips(t *testing.T) {
	oracle := &fakeOracle{result: capability.FormatNotSupported}
	r := New(oracle)

	c := variantCase(t, cases.SubtestUsageFlags)
	runnable, err := r.CheckSupport(c)
	if err != nil {
		t.Fatalf("CheckSupport: %v", err)
	}
	if runnable {
		t.Error("CheckSupport = runnable for an unsupported format")
	}

	if out := r.Evaluate(c); out.Status != StatusSkip {
		t.Errorf("Evaluate on unsupported format = %v, want skip", out.Status)
	}
}

func TestQueryErrorFails(t *testing.T) {
	oracle := &fakeOracle{result: capability.QueryError}
	c := variantCase(t, cases.SubtestOneSampleCountPresent)
	if out := New(oracle).Evaluate(c); out.Status != StatusFail {
		t.Errorf("Evaluate with a failing query = %v, want fail", out.Status)
	}
}

// memRecorder collects recorded outcomes in memory.
type memRecorder struct {
	recorded map[string]Outcome
}

func (m *memRecorder) RecordResult(_ string, c cases.Case, o Outcome) error {
	if m.recorded == nil {
		m.recorded = make(map[string]Outcome)
	}
	m.recorded[c.ID] = o
	return nil
}

func TestRunRecordsAndCounts(t *testing.T) {
	oracle := &fakeOracle{
		features: capability.FeatureColorAttachment,
		counts:   capability.Count1,
		limits:   capability.Limits{FramebufferColorSampleCounts: capability.Count1},
	}
	rec := &memRecorder{}

	// Restrict to one format's 2D optimal grid to keep the run small.
	all := cases.Enumerate()
	stats, err := New(oracle).Run("test-run", all, "2d/optimal/r8g8b8a8_unorm_", rec)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// cube + optimal-features + 16 usage subsets + one-sample.
	if stats.Total() != 19 {
		t.Fatalf("Run evaluated %d cases, want 19", stats.Total())
	}
	if stats.Failed != 0 {
		t.Errorf("Run failed %d cases, want 0", stats.Failed)
	}
	if len(rec.recorded) != stats.Total() {
		t.Errorf("recorded %d outcomes, want %d", len(rec.recorded), stats.Total())
	}
}

func TestRunCountsSkips(t *testing.T) {
	oracle := &fakeOracle{result: capability.FormatNotSupported}
	stats, err := New(oracle).Run("test-run", cases.Enumerate(), "2d/optimal/r8g8b8a8_unorm_", nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Skipped != stats.Total() || stats.Total() == 0 {
		t.Errorf("stats = %+v, want every case skipped", stats)
	}
}
