package models

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"codeberg.org/snonux/keyprobe/internal/probe"
)

// Lister categorizes and prints the models returned by a key probe.
type Lister struct {
	out io.Writer
}

// NewLister creates a lister writing to out.
func NewLister(out io.Writer) *Lister {
	return &Lister{out: out}
}

// ListModels prints the probed models grouped by capability. Grouping
// is by the supportedGenerationMethods field when present, with a name
// heuristic as fallback for providers that do not report methods.
func (l *Lister) ListModels(report *probe.Report) {
	generation := []string{}
	embedding := []string{}
	other := []string{}

	for _, model := range report.Models {
		name := strings.TrimPrefix(model.Name, "models/")
		switch {
		case supportsMethod(model, "generateContent"):
			generation = append(generation, name)
		case supportsMethod(model, "embedContent") || supportsMethod(model, "embedText"):
			embedding = append(embedding, name)
		case len(model.SupportedGenerationMethods) == 0 && looksGenerative(name):
			generation = append(generation, name)
		default:
			other = append(other, name)
		}
	}

	sort.Strings(generation)
	sort.Strings(embedding)
	sort.Strings(other)

	fmt.Fprintf(l.out, "Models available to this %s key:\n", report.Provider)

	fmt.Fprintln(l.out, "\nGeneration models:")
	l.printGroup(generation)

	fmt.Fprintln(l.out, "\nEmbedding models:")
	l.printGroup(embedding)

	if len(other) > 0 {
		fmt.Fprintln(l.out, "\nOther models:")
		l.printGroup(other)
	}

	fmt.Fprintf(l.out, "\nTotal: %d models\n", len(report.Models))
}

func (l *Lister) printGroup(names []string) {
	if len(names) == 0 {
		fmt.Fprintln(l.out, "  No models found")
		return
	}
	for _, name := range names {
		fmt.Fprintf(l.out, "  %s\n", name)
	}
}

// Describe prints the full descriptor of every model whose name
// contains substr, including token limits and generation methods.
func (l *Lister) Describe(report *probe.Report, substr string) {
	for _, model := range report.Models {
		if !strings.Contains(model.Name, substr) {
			continue
		}
		fmt.Fprintf(l.out, "%s\n", model.Name)
		if model.DisplayName != "" {
			fmt.Fprintf(l.out, "  Display name: %s\n", model.DisplayName)
		}
		if model.Description != "" {
			fmt.Fprintf(l.out, "  Description: %s\n", model.Description)
		}
		if len(model.SupportedGenerationMethods) > 0 {
			fmt.Fprintf(l.out, "  Methods: %s\n", strings.Join(model.SupportedGenerationMethods, ", "))
		}
		if model.InputTokenLimit > 0 {
			fmt.Fprintf(l.out, "  Token limits: %d in / %d out\n",
				model.InputTokenLimit, model.OutputTokenLimit)
		}
	}
}

func supportsMethod(m probe.Model, method string) bool {
	for _, got := range m.SupportedGenerationMethods {
		if got == method {
			return true
		}
	}
	return false
}

// looksGenerative guesses from the model name alone. OpenAI's listing
// endpoint reports no capability metadata.
func looksGenerative(name string) bool {
	for _, marker := range []string{"gemini", "gpt", "chat", "o1", "o3"} {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}
