package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"imovelmatch/models"
	"imovelmatch/services/toolset"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

// NewGeminiClient builds the Gemini-backed assistant oracle.
func NewGeminiClient(apiKey, modelName string, timeout time.Duration) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelName: modelName, timeout: timeout}, nil
}

func (c *GeminiClient) Start(history []models.Message, userName string) Conversation {
	model := c.client.GenerativeModel(c.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(BuildSystemPrompt(userName))},
	}
	model.Tools = []*genai.Tool{{FunctionDeclarations: functionDeclarations()}}

	cs := model.StartChat()
	for _, msg := range history {
		cs.History = append(cs.History, &genai.Content{
			Role:  msg.Role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return &geminiConversation{session: cs, timeout: c.timeout}
}

type geminiConversation struct {
	session *genai.ChatSession
	timeout time.Duration
}

func (g *geminiConversation) SendText(ctx context.Context, text string) (*Reply, error) {
	return g.send(ctx, genai.Text(text))
}

func (g *geminiConversation) SendToolResult(ctx context.Context, tool string, payload map[string]any) (*Reply, error) {
	return g.send(ctx, genai.FunctionResponse{Name: tool, Response: payload})
}

func (g *geminiConversation) send(ctx context.Context, part genai.Part) (*Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.session.SendMessage(ctx, part)
	if err != nil {
		return nil, fmt.Errorf("assistant generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("assistant returned no candidates")
	}

	var reply Reply
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		switch v := p.(type) {
		case genai.Text:
			sb.WriteString(string(v))
		case genai.FunctionCall:
			reply.Calls = append(reply.Calls, models.ToolCall{Name: v.Name, Args: v.Args})
		}
	}
	reply.Text = strings.TrimSpace(sb.String())
	return &reply, nil
}

func functionDeclarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        toolset.ToolSearchProperties,
			Description: "Searches for properties in the database based on the provided filters. All filters are optional and combined with AND.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"price_min":    {Type: genai.TypeNumber, Description: "Minimum price of the property."},
					"price_max":    {Type: genai.TypeNumber, Description: "Maximum price of the property."},
					"size_min":     {Type: genai.TypeNumber, Description: "Minimum size of the property."},
					"size_max":     {Type: genai.TypeNumber, Description: "Maximum size of the property."},
					"bedrooms":     {Type: genai.TypeInteger, Description: "Number of bedrooms."},
					"bathrooms":    {Type: genai.TypeInteger, Description: "Number of bathrooms."},
					"garage_spots": {Type: genai.TypeInteger, Description: "Number of garage spaces."},
					"street":       {Type: genai.TypeString, Description: "Street name (partial match)."},
					"neighborhood": {Type: genai.TypeString, Description: "Neighborhood name (partial match)."},
					"city":         {Type: genai.TypeString, Description: "City name (partial match)."},
				},
			},
		},
		{
			Name:        toolset.ToolGetPropertySlots,
			Description: "Returns the next available viewing slots for one property.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"property_id": {Type: genai.TypeString, Description: "Identifier of the property."},
				},
				Required: []string{"property_id"},
			},
		},
		{
			Name:        toolset.ToolBookPropertySlot,
			Description: "Books a viewing slot for one property.",
			Parameters:  slotIdentitySchema(),
		},
		{
			Name:        toolset.ToolCancelSlot,
			Description: "Cancels a previously booked viewing slot for one property.",
			Parameters:  slotIdentitySchema(),
		},
	}
}

func slotIdentitySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"property_id": {Type: genai.TypeString, Description: "Identifier of the property."},
			"slot_start":  {Type: genai.TypeString, Description: "Slot start time in YYYY-MM-DD HH:MM format."},
		},
		Required: []string{"property_id", "slot_start"},
	}
}
