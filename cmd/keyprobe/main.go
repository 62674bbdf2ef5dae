package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/keyprobe/internal/batch"
	"codeberg.org/snonux/keyprobe/internal/cli"
	"codeberg.org/snonux/keyprobe/internal/credential"
	"codeberg.org/snonux/keyprobe/internal/history"
	"codeberg.org/snonux/keyprobe/internal/models"
	"codeberg.org/snonux/keyprobe/internal/probe"
)

// errProbeFailed signals a failure that Diagnose has already reported
// to the user; main only needs to set the exit code.
var errProbeFailed = errors.New("probe failed")

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errProbeFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Overlay config-file and environment values; command-line flags
	// keep precedence through the viper bindings.
	cli.ResolveConfig(flags)

	// Populate the environment from the .env file when present. The
	// credential resolver also scans the file directly, so a malformed
	// file is not fatal.
	if _, err := os.Stat(flags.EnvFile); err == nil {
		if err := godotenv.Load(flags.EnvFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", flags.EnvFile, err)
		}
	}

	ctx := context.Background()

	// Handle --history flag
	if flags.History {
		return showHistory(flags.HistoryLimit)
	}

	// Handle --batch flag
	if flags.BatchFile != "" {
		return runBatch(ctx, flags)
	}

	return runProbe(ctx, flags)
}

func runProbe(ctx context.Context, flags *cli.Flags) error {
	if flags.SmokeTest && !probe.SupportsSmokeTest(flags.Provider) {
		return fmt.Errorf("--smoke-test is only supported for the gemini provider")
	}

	key, err := resolveKey(flags)
	if err != nil {
		return err
	}
	if !credential.Valid(key) {
		fmt.Printf("ERROR: No valid API key found in %s file.\n", flags.EnvFile)
		fmt.Printf("Please replace '%s' in %s with your real key.\n",
			credential.Placeholder, flags.EnvFile)
		return errProbeFailed
	}

	prober := newProber(flags, key)
	report, probeErr := probe.Diagnose(ctx, os.Stdout, prober, flags.ExpectModel, flags.Quiet)

	if !flags.NoHistory {
		recordOutcome(prober, report, probeErr)
	}

	if probeErr != nil {
		return errProbeFailed
	}

	if flags.SmokeTest {
		tokens, err := probe.SmokeTest(ctx, key, flags.SmokeModel)
		if err != nil {
			fmt.Printf("Smoke test FAILED: %v\n", err)
			return errProbeFailed
		}
		fmt.Printf("Smoke test passed: %s counted %d tokens\n", flags.SmokeModel, tokens)
	}

	if flags.ListModels {
		models.NewLister(os.Stdout).ListModels(report)
	}
	if flags.Describe != "" {
		models.NewLister(os.Stdout).Describe(report, flags.Describe)
	}

	return nil
}

func runBatch(ctx context.Context, flags *cli.Flags) error {
	entries, err := batch.ReadKeyFile(flags.BatchFile)
	if err != nil {
		return err
	}

	runner := batch.NewRunner(os.Stdout, func(key string) probe.Prober {
		return newProber(flags, key)
	})

	if !flags.NoHistory {
		if store, err := openHistory(); err == nil {
			defer store.Close()
			runner.SetRecorder(&historyRecorder{store: store})
		}
	}

	summary, err := runner.Run(ctx, entries)
	if err != nil {
		return err
	}
	if summary.Invalid > 0 || summary.Skipped > 0 {
		return errProbeFailed
	}
	return nil
}

func resolveKey(flags *cli.Flags) (string, error) {
	if flags.Key != "" {
		return flags.Key, nil
	}
	switch flags.Provider {
	case "gemini":
		return cli.GetGeminiKey(flags.EnvFile), nil
	case "openai":
		return cli.GetOpenAIKey(flags.EnvFile), nil
	default:
		return "", fmt.Errorf("unknown provider: %s (expected gemini or openai)", flags.Provider)
	}
}

func newProber(flags *cli.Flags, key string) probe.Prober {
	if flags.Provider == "openai" {
		return probe.NewOpenAIProber(key)
	}
	prober := probe.NewGeminiProber(key)
	prober.SetTimeout(flags.Timeout)
	return prober
}

func showHistory(limit int) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Print(os.Stdout, limit)
}

func openHistory() (*history.Store, error) {
	path, err := history.DefaultPath()
	if err != nil {
		return nil, err
	}
	return history.Open(path)
}

// recordOutcome appends the probe to the history database.
// Best-effort: a broken history database never fails a probe.
func recordOutcome(prober probe.Prober, report *probe.Report, probeErr error) {
	store, err := openHistory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open history: %v\n", err)
		return
	}
	defer store.Close()

	outcome, status, count := probe.Outcome(report, probeErr)
	entry := history.Entry{
		Provider:   prober.Name(),
		MaskedKey:  prober.MaskedKey(),
		Outcome:    outcome,
		StatusCode: status,
		ModelCount: count,
	}
	if err := store.Record(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record probe: %v\n", err)
	}
}

// historyRecorder adapts history.Store to the batch.Recorder interface.
type historyRecorder struct {
	store *history.Store
}

func (h *historyRecorder) RecordProbe(provider, maskedKey, outcome string, statusCode, modelCount int) {
	entry := history.Entry{
		Provider:   provider,
		MaskedKey:  maskedKey,
		Outcome:    outcome,
		StatusCode: statusCode,
		ModelCount: modelCount,
	}
	if err := h.store.Record(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record probe: %v\n", err)
	}
}
