package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Diagnose runs a single probe and writes a human-readable diagnostic
// to w. All failure handling is terminal: the outcome is printed and
// returned, never retried. With quiet set, individual model names are
// omitted. Returns the report on success, the probe error otherwise.
func Diagnose(ctx context.Context, w io.Writer, p Prober, expectModel string, quiet bool) (*Report, error) {
	fmt.Fprintf(w, "Testing API key: %s\n", p.MaskedKey())

	report, err := p.Probe(ctx)
	if err != nil {
		var quotaErr *QuotaError
		var statusErr *StatusError
		switch {
		case errors.As(err, &quotaErr):
			fmt.Fprintf(w, "FAILED: API call returned status %d\n", quotaErr.StatusCode)
			fmt.Fprintf(w, "Response: %s\n", quotaErr.Body)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "--- QUOTA ERROR DETECTED ---")
			fmt.Fprintln(w, "Your API key has reached its limit or has no quota.")
		case errors.As(err, &statusErr):
			fmt.Fprintf(w, "FAILED: API call returned status %d\n", statusErr.StatusCode)
			fmt.Fprintf(w, "Response: %s\n", statusErr.Body)
		default:
			fmt.Fprintf(w, "ERROR: %v\n", err)
		}
		return nil, err
	}

	fmt.Fprintln(w, "SUCCESS: API key is valid!")
	fmt.Fprintf(w, "Available models: %d\n", len(report.Models))
	if !quiet {
		for _, m := range report.Models {
			fmt.Fprintf(w, " - %s\n", m.Name)
		}
	}
	if expectModel != "" {
		fmt.Fprintf(w, "Has %s access: %t\n", expectModel, report.HasModel(expectModel))
	}

	return report, nil
}
