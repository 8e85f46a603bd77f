// Gemini-backed Completer.
//
// One request is issued per user message; model and temperature are fixed
// configuration. Conversation history is replayed on every call because the
// gateway is stateless per call and nothing is persisted between page loads.
package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrEmptyCompletion is returned when the gateway answers without any text
// candidate.
var ErrEmptyCompletion = errors.New("assistant: empty completion")

// Gemini is a Completer backed by the Google generative AI API.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGemini dials the gateway with the given API key. Model and temperature
// are applied to every request.
func NewGemini(ctx context.Context, apiKey, model string, temperature float64) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Gemini{
		client:      client,
		model:       model,
		temperature: float32(temperature),
	}, nil
}

// Close releases the underlying connection.
func (g *Gemini) Close() error { return g.client.Close() }

// Complete sends the system instruction, the replayed history, and the prompt
// as a single chat exchange and returns the concatenated text parts of the
// first candidate.
func (g *Gemini) Complete(ctx context.Context, system string, history []Turn, prompt string) (string, error) {
	m := g.client.GenerativeModel(g.model)
	m.SetTemperature(g.temperature)
	if system != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := m.StartChat()
	cs.History = historyContents(history)

	resp, err := cs.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	text := textOf(resp)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// historyContents maps client-side turns to gateway contents. The gateway
// names the assistant side "model".
func historyContents(history []Turn) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, t := range history {
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		role := "user"
		if t.Role == "assistant" || t.Role == "model" {
			role = "model"
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(t.Content)},
		})
	}
	return out
}

// textOf concatenates the text parts of the first candidate.
func textOf(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
