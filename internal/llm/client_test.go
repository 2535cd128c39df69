package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiRewriter_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiRewriter(context.Background(), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")},
				},
			},
		},
	}

	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", text)
}

func TestExtractTextFromResponse_NoCandidates(t *testing.T) {
	_, err := extractTextFromResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestExtractTextFromResponse_EmptyContent(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	}

	_, err := extractTextFromResponse(resp)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}
