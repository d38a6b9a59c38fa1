package generator

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/kidtutor/backend/internal/models"
)

// LLMClient is the interface all generator implementations satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
	Chat(ctx context.Context, systemPrompt string, messages []models.ChatMessage) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Generator wraps an LLMClient and adds tutoring-specific methods.
type Generator struct {
	llm   LLMClient
	model string
}

func NewGenerator() *Generator {
	var llm LLMClient
	model := "mock"

	if os.Getenv("USE_CLI_GENERATOR") == "true" {
		cliPath := os.Getenv("CLAUDE_CLI_PATH")
		if cliPath == "" {
			cliPath = "claude"
		}
		llm = NewCLIClient(cliPath)
		model = "claude-cli"
		log.Println("Generator using Claude CLI (local plan)")
	} else if os.Getenv("MOCK_GENERATOR") == "true" {
		llm = NewMockClient()
		log.Println("Generator using mock data")
	} else {
		model = os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-opus-4-5-20251101"
		}
		llm = NewAPIClient(model)
		log.Println("Generator using Anthropic API:", model)
	}

	return &Generator{llm: llm, model: model}
}

func (g *Generator) ModelName() string {
	return g.model
}

// GenerateChallenge produces the next challenge question for a subject
// at the student's level, steering away from the previous prompt and
// its question type. The returned prompt type is classified from the
// generated text.
func (g *Generator) GenerateChallenge(ctx context.Context, subject models.Subject, level int, prevPrompt, prevPromptType string) (string, string, error) {
	systemPrompt := ChallengeSystemPrompt(subject, level, prevPrompt, prevPromptType)

	resp, err := g.llm.Generate(ctx, systemPrompt, "Now generate the next challenge:")
	if err != nil {
		return "", "", fmt.Errorf("generate challenge: %w", err)
	}

	prompt := strings.TrimSpace(resp.Content)
	if prompt == "" {
		return "", "", fmt.Errorf("generate challenge: empty response")
	}
	if review := ReviewChallenge(prompt); !review.OK() {
		return "", "", fmt.Errorf("generate challenge: rejected by review (%+v)", review)
	}

	return prompt, DetectPromptType(prompt, subject), nil
}

// TutorReply runs one turn of a tutoring conversation.
func (g *Generator) TutorReply(ctx context.Context, systemPrompt string, messages []models.ChatMessage) (string, error) {
	resp, err := g.llm.Chat(ctx, systemPrompt, messages)
	if err != nil {
		return "", fmt.Errorf("tutor reply: %w", err)
	}

	reply := strings.TrimSpace(resp.Content)
	if reply == "" {
		return "", fmt.Errorf("tutor reply: empty response")
	}
	return reply, nil
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	return c.Chat(ctx, systemPrompt, []models.ChatMessage{{Role: "user", Content: userPrompt}})
}

func (c *APIClient) Chat(ctx context.Context, systemPrompt string, messages []models.ChatMessage) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   1024,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: buildMessageParams(messages),
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func buildMessageParams(messages []models.ChatMessage) []anthropic.MessageParam {
	params := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		if m.Role == "assistant" {
			params = append(params, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		} else {
			params = append(params, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return params
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	return &LLMResponse{
		Content:      mockChallenge(systemPrompt),
		PromptTokens: 200,
		OutputTokens: 30,
	}, nil
}

func (m *MockClient) Chat(ctx context.Context, systemPrompt string, messages []models.ChatMessage) (*LLMResponse, error) {
	return &LLMResponse{
		Content:      "[Mock] That's a great question! What do you already know about it? Try breaking it into smaller steps.",
		PromptTokens: 200,
		OutputTokens: 40,
	}, nil
}

// mockChallenge picks a canned question matching the subject named in
// the system prompt, so classification still produces sensible types
// in local dev.
func mockChallenge(systemPrompt string) string {
	lower := strings.ToLower(systemPrompt)
	switch {
	case strings.Contains(lower, "reading"):
		return "[Mock] Read this: 'Mia planted a seed and watered it every day.' What is the main idea of the story?"
	case strings.Contains(lower, "spelling"):
		return "[Mock] Which word is spelled correctly: A) freind, B) friend, C) freand?"
	case strings.Contains(lower, "exploration"):
		return "[Mock] Why do birds fly south in the winter?"
	default:
		return "[Mock] What is 12 + 9?"
	}
}
