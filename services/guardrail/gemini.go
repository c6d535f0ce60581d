package guardrail

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"imovelmatch/models"
)

// Gate classifies one user turn as allowed or policy-violating. It is a pure
// function of (message, history) with no side effects.
type Gate interface {
	Check(ctx context.Context, input string, history []models.Message) (violation bool, err error)
}

// verdict mirrors the classifier's JSON output.
type verdict struct {
	RulesAreBeingBroken bool `json:"rules_are_being_broken"`
}

type GeminiGate struct {
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiGate builds the Gemini-backed gate. Temperature is pinned to zero
// and output is capped: this is a safety-relevant binary decision.
func NewGeminiGate(apiKey, modelName string, maxTokens int32, timeout time.Duration) (*GeminiGate, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	model.SetMaxOutputTokens(maxTokens)
	model.GenerationConfig.ResponseMIMEType = "application/json"
	model.GenerationConfig.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"rules_are_being_broken": {
				Type:        genai.TypeBoolean,
				Description: "Whether the rules are being broken",
			},
		},
		Required: []string{"rules_are_being_broken"},
	}

	return &GeminiGate{model: model, timeout: timeout}, nil
}

// Check runs the classifier. A timeout or oracle failure is returned as an
// error and is fatal for the turn; the caller must not retry it silently.
func (g *GeminiGate) Check(ctx context.Context, input string, history []models.Message) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(BuildPrompt(input, history)))
	if err != nil {
		return false, fmt.Errorf("guardrail generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return false, fmt.Errorf("guardrail returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	var v verdict
	if err := json.Unmarshal([]byte(sb.String()), &v); err != nil {
		return false, fmt.Errorf("guardrail verdict malformed: %w", err)
	}
	return v.RulesAreBeingBroken, nil
}
