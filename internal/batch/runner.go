package batch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/keyprobe/internal/probe"
)

// Summary tallies the outcome of a batch run.
type Summary struct {
	Valid   int
	Invalid int
	Skipped int // not probed because the circuit breaker was open
}

// Recorder receives the outcome of each probed key, e.g. for the
// history log.
type Recorder interface {
	RecordProbe(provider, maskedKey, outcome string, statusCode, modelCount int)
}

// Runner probes a sequence of keys against a single provider. Each key
// gets one best-effort call; transport failures trip the breaker after
// a few in a row, and remaining keys are reported as skipped.
type Runner struct {
	out       io.Writer
	newProber func(key string) probe.Prober
	breaker   *gobreaker.CircuitBreaker
	recorder  Recorder
}

// SetRecorder registers a recorder for per-key outcomes. Skipped keys
// are not recorded, they were never probed.
func (r *Runner) SetRecorder(rec Recorder) {
	r.recorder = rec
}

// NewRunner creates a Runner that constructs a prober per key via
// newProber and writes per-key results to out.
func NewRunner(out io.Writer, newProber func(key string) probe.Prober) *Runner {
	return &Runner{
		out:       out,
		newProber: newProber,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "keyprobe-batch",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			// A definitive provider answer about one key, even a 403,
			// says nothing about reachability. Only transport errors
			// count as breaker failures.
			IsSuccessful: func(err error) bool {
				if err == nil {
					return true
				}
				var statusErr *probe.StatusError
				var quotaErr *probe.QuotaError
				return errors.As(err, &statusErr) || errors.As(err, &quotaErr)
			},
		}),
	}
}

// Run probes every entry in order and prints one summary line per key
// followed by a final tally.
func (r *Runner) Run(ctx context.Context, entries []KeyEntry) (Summary, error) {
	if len(entries) == 0 {
		return Summary{}, fmt.Errorf("no keys found in batch file")
	}

	var summary Summary
	for _, entry := range entries {
		prober := r.newProber(entry.Key)
		label := entry.Label
		if label == "" {
			label = prober.MaskedKey()
		}

		result, err := r.breaker.Execute(func() (interface{}, error) {
			return prober.Probe(ctx)
		})

		switch {
		case err == nil:
			report := result.(*probe.Report)
			fmt.Fprintf(r.out, "%s: OK (%d models)\n", label, len(report.Models))
			summary.Valid++
			r.record(prober, report, nil)
		case errors.Is(err, gobreaker.ErrOpenState):
			fmt.Fprintf(r.out, "%s: skipped (endpoint unreachable)\n", label)
			summary.Skipped++
		default:
			fmt.Fprintf(r.out, "%s: FAILED (%v)\n", label, err)
			summary.Invalid++
			r.record(prober, nil, err)
		}
	}

	fmt.Fprintf(r.out, "\n%d valid, %d invalid, %d skipped\n",
		summary.Valid, summary.Invalid, summary.Skipped)

	return summary, nil
}

func (r *Runner) record(p probe.Prober, report *probe.Report, err error) {
	if r.recorder == nil {
		return
	}
	outcome, status, count := probe.Outcome(report, err)
	r.recorder.RecordProbe(p.Name(), p.MaskedKey(), outcome, status, count)
}
