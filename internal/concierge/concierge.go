package concierge

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"travel-agency/internal/models"

	"google.golang.org/genai"
)

// DefaultModel is the generative model used for replies
const DefaultModel = "gemini-2.5-flash"

// Apology is returned whenever the model cannot be reached
const Apology = "I'm having trouble connecting to the travel network right now. Please try again later."

const systemInstruction = `You are Hamsika Travels' expert AI concierge.
Your tone is polite, premium, and helpful.
You help users find destinations, plan itineraries, and understand visa requirements.
Keep answers concise and focus on travel.
Our primary destinations are India, Dubai, Thailand, Singapore, and Europe.
Currency is INR.`

// Roles of chat turns
const (
	RoleUser  = "user"
	RoleModel = "model"
)

var errNoGenerator = errors.New("concierge is not configured")

// Generator produces a model reply for a conversation
type Generator interface {
	Generate(ctx context.Context, system string, turns []models.ChatTurn) (string, error)
}

// Concierge answers travel questions. Replies are stateless by default: only
// the newest message is sent to the model.
type Concierge struct {
	generator     Generator
	replayHistory bool
}

func New(generator Generator, replayHistory bool) *Concierge {
	return &Concierge{generator: generator, replayHistory: replayHistory}
}

// Reply never fails; any error is logged and replaced by the apology
func (c *Concierge) Reply(ctx context.Context, message string, history []models.ChatTurn) string {
	turns := []models.ChatTurn{{Role: RoleUser, Content: message}}
	if c.replayHistory {
		turns = append(append([]models.ChatTurn{}, history...), turns...)
	}

	if c.generator == nil {
		log.Printf("AI error: %v", errNoGenerator)
		return Apology
	}

	reply, err := c.generator.Generate(ctx, systemInstruction, turns)
	if err != nil {
		log.Printf("AI error: %v", err)
		return Apology
	}
	if strings.TrimSpace(reply) == "" {
		log.Println("AI error: empty reply")
		return Apology
	}
	return reply
}

// GeminiGenerator calls the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, system string, turns []models.ChatTurn) (string, error) {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := genai.Role(genai.RoleUser)
		if t.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Content, role))
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
