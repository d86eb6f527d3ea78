package ollama

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a running Ollama instance. Set OLLAMA_INTEGRATION=true to run.
func integrationProvider(t *testing.T) *OllamaProvider {
	t.Helper()
	if os.Getenv("OLLAMA_INTEGRATION") != "true" {
		t.Skip("Skipping Ollama integration test (set OLLAMA_INTEGRATION=true to run)")
	}

	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = "llama3"
	}
	return NewOllamaProvider(baseURL, model)
}

func TestOllamaGenerateIntegration(t *testing.T) {
	provider := integrationProvider(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	answer, err := provider.Generate(ctx, "Reply with the single word: pong")
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	t.Logf("Ollama answered: %s", answer)
}

func TestOllamaGenerateStreamIntegration(t *testing.T) {
	provider := integrationProvider(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var chunks []string
	var full string
	var streamErr error

	provider.GenerateStream(ctx, "Count from 1 to 5.",
		func(chunk string) { chunks = append(chunks, chunk) },
		func(f string) { full = f },
		func(err error) { streamErr = err },
	)

	require.NoError(t, streamErr)
	assert.NotEmpty(t, chunks)
	assert.Equal(t, strings.Join(chunks, ""), full)
}
