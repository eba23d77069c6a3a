// Package runner evaluates enumerated conformance cases against a device
// capability oracle. Each case resolves to exactly one outcome: pass, fail
// or skip. Skips happen only at the support-probe boundary, before any rule
// is evaluated.
package runner

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/darkace1998/vkconform/internal/capability"
	"github.com/darkace1998/vkconform/internal/cases"
	"github.com/darkace1998/vkconform/internal/rules"
)

// Status is the final state of one evaluated case.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Outcome is the result of evaluating a single case.
type Outcome struct {
	Status   Status
	Expected capability.SampleCountFlags
	Actual   capability.SampleCountFlags
	Message  string
}

// Recorder persists case outcomes. The SQLite tracker implements it; tests
// substitute an in-memory recorder.
type Recorder interface {
	RecordResult(runID string, c cases.Case, o Outcome) error
}

// Runner evaluates cases against one device oracle.
type Runner struct {
	oracle capability.Oracle
	log    *slog.Logger
}

// New creates a Runner for the given oracle.
func New(oracle capability.Oracle) *Runner {
	return &Runner{oracle: oracle, log: slog.Default()}
}

// CheckSupport probes whether the case's exact configuration is supported.
// A FormatNotSupported result means the case is not applicable; any other
// non-success result is reported by Evaluate, not here.
func (r *Runner) CheckSupport(c cases.Case) (bool, error) {
	_, result, err := r.oracle.ImageFormatProperties(c.Format, c.ImageType, c.Tiling, c.Usage, 0)
	if err != nil {
		return false, fmt.Errorf("support probe for %s: %w", c.ID, err)
	}
	return result != capability.FormatNotSupported, nil
}

// Evaluate runs the case's assigned check variant. The oracle query issued
// by the variant can still report the configuration as unsupported, which
// converts the case to a skip rather than a failure.
func (r *Runner) Evaluate(c cases.Case) Outcome {
	switch c.Subtest {
	case cases.SubtestLinearTilingOrNon2D:
		return r.checkExactlyOneSample(c, 0, 0)
	case cases.SubtestCubeCompatible:
		return r.checkExactlyOneSample(c, 0, capability.CreateCubeCompatible)
	case cases.SubtestOptimalTilingFeatures:
		return r.checkOptimalTilingFeatures(c)
	case cases.SubtestYCbCrConversion:
		return r.checkExactlyOneSample(c, 0, 0)
	case cases.SubtestUsageFlags:
		return r.checkUsageFlags(c)
	case cases.SubtestOneSampleCountPresent:
		return r.checkOneSampleCountPresent(c)
	}
	return Outcome{Status: StatusFail, Message: fmt.Sprintf("no check for subtest %v", c.Subtest)}
}

// query issues the image-format query for the case and classifies the
// result. ok is false when the outcome is already decided.
func (r *Runner) query(c cases.Case, usage capability.UsageFlags,
	create capability.CreateFlags) (props capability.ImageFormatProperties, out Outcome, ok bool) {
	props, result, err := r.oracle.ImageFormatProperties(c.Format, c.ImageType, c.Tiling, usage, create)
	if err != nil {
		return props, Outcome{Status: StatusFail, Message: fmt.Sprintf("image format query: %v", err)}, false
	}
	switch result {
	case capability.FormatNotSupported:
		return props, Outcome{Status: StatusSkip, Message: "format not supported"}, false
	case capability.QueryError:
		return props, Outcome{Status: StatusFail, Message: "image format query returned an error"}, false
	}
	return props, Outcome{}, true
}

// checkExactlyOneSample requires the reported set to equal {1}. It backs
// the linear-or-non-2D, cube-compatible and YCbCr variants, which differ
// only in the query they issue.
func (r *Runner) checkExactlyOneSample(c cases.Case, usage capability.UsageFlags,
	create capability.CreateFlags) Outcome {
	props, out, ok := r.query(c, usage, create)
	if !ok {
		return out
	}
	if props.SampleCounts != capability.Count1 {
		return Outcome{
			Status:   StatusFail,
			Expected: capability.Count1,
			Actual:   props.SampleCounts,
			Message:  "reported sample counts must be exactly {1}",
		}
	}
	return Outcome{Status: StatusPass, Expected: capability.Count1, Actual: props.SampleCounts}
}

// checkOptimalTilingFeatures requires exactly {1} for formats whose
// optimal-tiling features include neither attachment bit. Formats with
// either bit present carry no constraint here.
func (r *Runner) checkOptimalTilingFeatures(c cases.Case) Outcome {
	fp, err := r.oracle.FormatProperties(c.Format)
	if err != nil {
		return Outcome{Status: StatusFail, Message: fmt.Sprintf("format properties query: %v", err)}
	}
	props, out, ok := r.query(c, 0, 0)
	if !ok {
		return out
	}
	attachable := fp.OptimalTilingFeatures & (capability.FeatureColorAttachment | capability.FeatureDepthStencilAttachment)
	if attachable == 0 {
		if props.SampleCounts != capability.Count1 {
			return Outcome{
				Status:   StatusFail,
				Expected: capability.Count1,
				Actual:   props.SampleCounts,
				Message:  "format without attachment features must report exactly {1}",
			}
		}
		return Outcome{Status: StatusPass, Expected: capability.Count1, Actual: props.SampleCounts}
	}
	return Outcome{Status: StatusPass, Actual: props.SampleCounts}
}

// checkUsageFlags verifies the reported set against the limit-derived
// expected set for the case's usage combination. When the format cannot be
// used as an attachment at all, the check degenerates to exact equality
// with {1}.
func (r *Runner) checkUsageFlags(c cases.Case) Outcome {
	fp, err := r.oracle.FormatProperties(c.Format)
	if err != nil {
		return Outcome{Status: StatusFail, Message: fmt.Sprintf("format properties query: %v", err)}
	}
	limits, err := r.oracle.Limits()
	if err != nil {
		return Outcome{Status: StatusFail, Message: fmt.Sprintf("limits query: %v", err)}
	}
	props, out, ok := r.query(c, c.Usage, 0)
	if !ok {
		return out
	}

	attachable := fp.OptimalTilingFeatures & (capability.FeatureColorAttachment | capability.FeatureDepthStencilAttachment)
	if attachable == 0 {
		if props.SampleCounts != capability.Count1 {
			return Outcome{
				Status:   StatusFail,
				Expected: capability.Count1,
				Actual:   props.SampleCounts,
				Message:  "format without attachment features must report exactly {1}",
			}
		}
		return Outcome{Status: StatusPass, Expected: capability.Count1, Actual: props.SampleCounts}
	}

	expected := rules.Combine(c.Format, c.Usage, limits)
	if !rules.IsSuperset(props.SampleCounts, expected) {
		return Outcome{
			Status:   StatusFail,
			Expected: expected,
			Actual:   props.SampleCounts,
			Message:  fmt.Sprintf("reported %v is not a superset of expected %v", props.SampleCounts, expected),
		}
	}
	return Outcome{Status: StatusPass, Expected: expected, Actual: props.SampleCounts}
}

// checkOneSampleCountPresent requires the single-sample bit in the
// reported set.
func (r *Runner) checkOneSampleCountPresent(c cases.Case) Outcome {
	props, out, ok := r.query(c, 0, 0)
	if !ok {
		return out
	}
	if props.SampleCounts&capability.Count1 == 0 {
		return Outcome{
			Status:   StatusFail,
			Expected: capability.Count1,
			Actual:   props.SampleCounts,
			Message:  "reported sample counts must include the single-sample bit",
		}
	}
	return Outcome{Status: StatusPass, Expected: capability.Count1, Actual: props.SampleCounts}
}

// Run evaluates every case whose identifier contains filter (all cases when
// filter is empty), records outcomes through rec when non-nil, and returns
// aggregate statistics.
func (r *Runner) Run(runID string, all []cases.Case, filter string, rec Recorder) (Stats, error) {
	stats := Stats{Started: time.Now()}

	for _, c := range all {
		if filter != "" && !strings.Contains(c.ID, filter) {
			continue
		}

		runnable, err := r.CheckSupport(c)
		if err != nil {
			return stats, err
		}

		var outcome Outcome
		if !runnable {
			outcome = Outcome{Status: StatusSkip, Message: "format not supported"}
		} else {
			outcome = r.Evaluate(c)
		}

		stats.Count(outcome.Status)
		switch outcome.Status {
		case StatusFail:
			r.log.Error("Case failed",
				"case", c.ID,
				"subtest", c.Subtest.String(),
				"expected", outcome.Expected.String(),
				"actual", outcome.Actual.String(),
				"reason", outcome.Message,
			)
		case StatusSkip:
			r.log.Debug("Case skipped", "case", c.ID, "reason", outcome.Message)
		default:
			r.log.Debug("Case passed", "case", c.ID)
		}

		if rec != nil {
			if err := rec.RecordResult(runID, c, outcome); err != nil {
				return stats, fmt.Errorf("failed to record result for %s: %w", c.ID, err)
			}
		}
	}

	stats.Finished = time.Now()
	return stats, nil
}
