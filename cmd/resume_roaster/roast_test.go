package main

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jonathan/resume-roaster/internal/extraction/pdftest"
	"github.com/jonathan/resume-roaster/internal/llm"
	"github.com/jonathan/resume-roaster/internal/llm/llmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoastCommand_PrintsDashboardAndCard(t *testing.T) {
	isolateEnv(t)
	client := llmtest.Reply(cannedReply)
	useClient(t, client)
	pdf := writeFile(t, "resume.pdf", pdftest.Build("Jane Doe", "Led synergy initiatives"))

	out, err := executeCommand(t, "roast", pdf)
	require.NoError(t, err)

	assert.Contains(t, out, "RESUME ANALYSIS DASHBOARD")
	assert.Contains(t, out, "Buzzword Bingo")
	assert.Contains(t, out, "Synergy Sam")
	assert.Contains(t, out, "Cringe Score:  64%")
	require.Equal(t, 1, client.CallCount())
	assert.Contains(t, client.Calls()[0].Prompt, "Jane Doe")
}

func TestRoastCommand_JSONOutput(t *testing.T) {
	isolateEnv(t)
	useClient(t, llmtest.Reply(cannedReply))
	first := writeFile(t, "a.txt", []byte("Jane Doe\nSynergy lead"))
	second := writeFile(t, "b.txt", []byte("John Roe\nRockstar ninja"))

	out, err := executeCommand(t, "roast", "--json", first, second)
	require.NoError(t, err)

	var results []roastResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, first, results[0].File)
	assert.Equal(t, second, results[1].File)
	for _, r := range results {
		require.NotNil(t, r.Metrics)
		assert.Empty(t, r.Error)
		assert.Equal(t, "Synergy Sam", r.Metrics.RoastCharacter)
	}
}

func TestRoastCommand_OneFailureDoesNotStopOthers(t *testing.T) {
	isolateEnv(t)
	client := &llmtest.MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _, prompt string, _ llm.ModelTier) (string, error) {
			if strings.Contains(prompt, "broken") {
				return "", &llm.ServiceError{Provider: llm.ProviderOpenAI, StatusCode: 500, Message: "upstream down"}
			}
			return cannedReply, nil
		},
	}
	useClient(t, client)
	good := writeFile(t, "good.txt", []byte("a fine resume"))
	bad := writeFile(t, "bad.txt", []byte("a broken resume"))
	notPDF := writeFile(t, "resume.docx", []byte("PK\x03\x04"))

	out, err := executeCommand(t, "roast", "--json", good, bad, notPDF)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3")

	var results []roastResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.NotNil(t, results[0].Metrics)
	assert.Contains(t, results[1].Error, "upstream down")
	assert.Contains(t, results[2].Error, "unsupported file")
	assert.Equal(t, 2, client.CallCount())
}

func TestRoastCommand_ConcurrencyIsBounded(t *testing.T) {
	isolateEnv(t)
	var inFlight, peak atomic.Int32
	client := &llmtest.MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, string, llm.ModelTier) (string, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			return cannedReply, nil
		},
	}
	useClient(t, client)

	args := []string{"roast", "--json", "--concurrency", "2"}
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt"} {
		args = append(args, writeFile(t, name, []byte("resume "+name)))
	}

	_, err := executeCommand(t, args...)
	require.NoError(t, err)
	assert.Equal(t, 5, client.CallCount())
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRoastCommand_Validation(t *testing.T) {
	isolateEnv(t)
	useClient(t, llmtest.Reply(cannedReply))

	_, err := executeCommand(t, "roast")
	assert.Error(t, err)

	_, err = executeCommand(t, "roast", "--concurrency", "0", "x.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--concurrency")
}

func TestRoastCommand_MissingAPIKey(t *testing.T) {
	isolateEnv(t)
	t.Setenv("OPENAI_API_KEY", "")
	useClient(t, llmtest.Reply(cannedReply))
	file := writeFile(t, "a.txt", []byte("resume"))

	_, err := executeCommand(t, "roast", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestRoastCommand_ClientCreationFailure(t *testing.T) {
	isolateEnv(t)
	prev := newLLMClient
	newLLMClient = func(context.Context, *llm.Config, string) (llm.Client, error) {
		return nil, errors.New("bad endpoint")
	}
	t.Cleanup(func() { newLLMClient = prev })
	file := writeFile(t, "a.txt", []byte("resume"))

	_, err := executeCommand(t, "roast", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create LLM client")
}

func TestRoastCommand_ProviderFromEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("LLM_MODEL", "gemini-2.5-pro")

	var gotConfig *llm.Config
	var gotKey string
	prev := newLLMClient
	newLLMClient = func(_ context.Context, cfg *llm.Config, apiKey string) (llm.Client, error) {
		gotConfig, gotKey = cfg, apiKey
		return llmtest.Reply(cannedReply), nil
	}
	t.Cleanup(func() { newLLMClient = prev })
	file := writeFile(t, "a.txt", []byte("resume"))

	_, err := executeCommand(t, "roast", "--json", file)
	require.NoError(t, err)
	require.NotNil(t, gotConfig)
	assert.Equal(t, llm.ProviderGemini, gotConfig.Provider)
	assert.Equal(t, "gemini-2.5-pro", gotConfig.GetModel(llm.TierStandard))
	assert.Equal(t, "gemini-key", gotKey)
}
