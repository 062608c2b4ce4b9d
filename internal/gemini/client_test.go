package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		apiKey  string
		wantErr bool
	}{
		{name: "empty API key returns error", apiKey: "", wantErr: true},
		{name: "non-empty API key is accepted", apiKey: "test-api-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := NewClient(context.Background(), tt.apiKey)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMissingAPIKey)
				require.Nil(t, client)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, client)
			require.NotNil(t, client.generator)
			require.Equal(t, ModelName, client.Model())
		})
	}
}

func TestWithModel(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{}
	require.Equal(t, "gemini-2.5-pro", NewClientWithGenerator(gen, WithModel("gemini-2.5-pro")).Model())
	require.Equal(t, ModelName, NewClientWithGenerator(gen, WithModel("")).Model())
}

// mockGenerator records the last request and returns a canned response.
type mockGenerator struct {
	response *genai.GenerateContentResponse
	err      error

	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (m *mockGenerator) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	m.model = model
	m.contents = contents
	m.config = config
	return m.response, m.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{{Text: text}},
				},
			},
		},
	}
}
