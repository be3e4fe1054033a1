package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
	"github.com/custodia-labs/insight-scraper/internal/core/ports/driving"
)

// mockIngestor records requests and returns a canned result.
type mockIngestor struct {
	result *driving.IngestResult
	err    error
	got    []driving.IngestRequest
}

func (m *mockIngestor) Ingest(_ context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	m.got = append(m.got, req)
	return m.result, m.err
}

// fakeRuntime swaps bootstrap for one returning ing, and reports the
// platform it was bootstrapped for and whether Close ran.
type fakeRuntime struct {
	platform domain.Platform
	closed   bool
}

func setupTestIngestor(t *testing.T, ing driving.Ingestor, bootErr error) *fakeRuntime {
	t.Helper()
	fake := &fakeRuntime{}
	original := bootstrap
	bootstrap = func(_ context.Context, platform domain.Platform) (*Runtime, error) {
		fake.platform = platform
		if bootErr != nil {
			return nil, bootErr
		}
		return &Runtime{
			Ingestor: ing,
			Close: func() error {
				fake.closed = true
				return nil
			},
		}, nil
	}
	t.Cleanup(func() { bootstrap = original })
	return fake
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag in the tree to its default so runs do not
// leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
