package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-roaster/internal/config"
	"github.com/jonathan/resume-roaster/internal/llm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const cannedReply = `{
	"buzzwordBingo": 2,
	"fluffFactor": 3.5,
	"passivePatty": 0,
	"superlativeSlam": 1,
	"jargonJolt": 2.0,
	"numberCruncher": 4,
	"verbVibes": 50,
	"sentenceSauna": 0,
	"hyperboleHunter": 0,
	"punctuationParty": 1.5,
	"roastCharacter": "Synergy Sam",
	"roastScore": 64,
	"topBuzzword": "synergy",
	"name": "Sam Example"
}`

// isolateEnv blanks the configuration environment and sets a dummy key.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvProvider, config.EnvModel, config.EnvBaseURL, config.EnvGeminiKey,
		config.EnvPort, config.EnvLogLevel, config.EnvLogFormat,
		config.EnvMaxBodyBytes, config.EnvMaxUploadBytes,
	} {
		t.Setenv(key, "")
	}
	t.Setenv(config.EnvOpenAIKey, "test-key")
}

// useClient makes every command use client instead of a real provider.
func useClient(t *testing.T, client llm.Client) {
	t.Helper()
	prev := newLLMClient
	newLLMClient = func(context.Context, *llm.Config, string) (llm.Client, error) {
		return client, nil
	}
	t.Cleanup(func() { newLLMClient = prev })
}

// resetFlags restores every flag to its default between in-process runs.
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

// executeCommand runs the root command in-process and returns its stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	appConfig = nil

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
