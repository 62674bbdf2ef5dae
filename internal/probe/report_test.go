package probe

import (
	"errors"
	"testing"
)

func TestHasModel(t *testing.T) {
	report := &Report{
		Models: []Model{
			{Name: "models/gemini-1.5-pro"},
			{Name: "models/embedding-001"},
		},
	}

	if !report.HasModel("gemini-1.5-pro") {
		t.Error("Expected HasModel to find gemini-1.5-pro")
	}
	if !report.HasModel("embedding") {
		t.Error("Expected HasModel to match substrings")
	}
	if report.HasModel("gpt-4") {
		t.Error("Did not expect HasModel to find gpt-4")
	}
}

func TestStatusError(t *testing.T) {
	err := &StatusError{
		Provider:   "gemini",
		StatusCode: 403,
		Body:       "forbidden",
	}

	expected := "gemini: API call returned status 403"
	if err.Error() != expected {
		t.Errorf("Expected error '%s', got '%s'", expected, err.Error())
	}
}

func TestQuotaError(t *testing.T) {
	err := &QuotaError{
		StatusError: StatusError{
			Provider:   "gemini",
			StatusCode: 429,
			Body:       "QUOTA_EXCEEDED",
		},
	}

	expected := "gemini: quota exceeded (status 429)"
	if err.Error() != expected {
		t.Errorf("Expected error '%s', got '%s'", expected, err.Error())
	}

	// A QuotaError must not also match *StatusError; the breaker and
	// printer tell them apart with errors.As.
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Error("Did not expect *QuotaError to match *StatusError")
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name       string
		report     *Report
		err        error
		outcome    string
		statusCode int
		modelCount int
	}{
		{
			name:       "success",
			report:     &Report{StatusCode: 200, Models: []Model{{Name: "a"}, {Name: "b"}}},
			outcome:    "ok",
			statusCode: 200,
			modelCount: 2,
		},
		{
			name:       "quota",
			err:        &QuotaError{StatusError{Provider: "gemini", StatusCode: 429}},
			outcome:    "quota",
			statusCode: 429,
		},
		{
			name:       "status failure",
			err:        &StatusError{Provider: "gemini", StatusCode: 403},
			outcome:    "failed",
			statusCode: 403,
		},
		{
			name:    "transport failure",
			err:     errors.New("connection refused"),
			outcome: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, status, count := Outcome(tt.report, tt.err)
			if outcome != tt.outcome {
				t.Errorf("Expected outcome '%s', got '%s'", tt.outcome, outcome)
			}
			if status != tt.statusCode {
				t.Errorf("Expected status %d, got %d", tt.statusCode, status)
			}
			if count != tt.modelCount {
				t.Errorf("Expected model count %d, got %d", tt.modelCount, count)
			}
		})
	}
}
