// Package generator produces weekly plan content from a user profile with an
// OpenAI-compatible chat completion API.
package generator

import (
	"coachvision/backend/internal/config"
	"coachvision/backend/internal/domain"
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

var (
	ErrNotConfigured   = errors.New("plan generator is not configured: missing api key")
	ErrEmptyCompletion = errors.New("model returned no content")
	ErrIncompleteUser  = errors.New("user profile is incomplete")
)

const systemPrompt = "You are a professional fitness coach and nutritionist. " +
	"Provide detailed, actionable advice. Reply with a single JSON object and nothing else."

// OpenAIGenerator calls the chat completion endpoint once per plan. It never retries.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// NewOpenAIGenerator builds a generator from cfg. A missing API key is not an
// error here; Generate reports ErrNotConfigured instead so the server can still start.
func NewOpenAIGenerator(cfg config.OpenAIConfig, logger *zap.Logger) *OpenAIGenerator {
	g := &OpenAIGenerator{
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      logger.Named("generator"),
	}
	if g.model == "" {
		g.model = openai.GPT3Dot5Turbo
	}
	if cfg.APIKey != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = cfg.BaseURL
		}
		g.client = openai.NewClientWithConfig(clientConfig)
	}
	return g
}

// Generate returns validated content for user. Any failure, including a reply
// that is not a complete seven-day schedule, is returned as an error.
func (g *OpenAIGenerator) Generate(ctx context.Context, user *domain.User, planType domain.PlanType) (domain.PlanContent, error) {
	if g.client == nil {
		return domain.PlanContent{}, ErrNotConfigured
	}
	if user == nil || !user.ProfileComplete() {
		return domain.PlanContent{}, ErrIncompleteUser
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(user, planType)},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		g.logger.Error("Chat completion failed", zap.String("model", g.model), zap.Error(err))
		return domain.PlanContent{}, fmt.Errorf("chat completion with model %s: %w", g.model, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return domain.PlanContent{}, ErrEmptyCompletion
	}

	raw := extractJSON(resp.Choices[0].Message.Content)
	content, err := domain.ParsePlanContent([]byte(raw))
	if err != nil {
		g.logger.Warn("Model reply rejected",
			zap.String("model", g.model),
			zap.Int("reply_bytes", len(raw)),
			zap.Error(err))
		return domain.PlanContent{}, err
	}

	g.logger.Debug("Plan content generated",
		zap.String("user_id", user.ID),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))
	return content, nil
}

func buildPrompt(u *domain.User, planType domain.PlanType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a personalized %s training and diet plan for the following user:\n\n", planType)
	fmt.Fprintf(&b, "Name: %s\n", u.Name)
	fmt.Fprintf(&b, "Age: %d\n", *u.Age)
	fmt.Fprintf(&b, "Weight: %.1f kg\n", *u.Weight)
	fmt.Fprintf(&b, "Height: %.1f cm\n", *u.Height)
	fmt.Fprintf(&b, "Fitness Goal: %s\n", *u.FitnessGoal)
	fmt.Fprintf(&b, "Experience Level: %s\n\n", *u.ExperienceLevel)
	b.WriteString(`Respond with JSON of exactly this shape:
{
  "workouts": {
    "monday": {"type": "<workout type>", "exercises": ["<exercise>", "..."]},
    "tuesday": "<rest day description>",
    ...
  },
  "nutrition": {"daily_calories": <number>, "meals": ["..."]},
  "recommendations": ["<rest, recovery and progress tracking tips>"]
}
All seven days monday through sunday must be present under "workouts". A workout day is an
object with a non-empty "type"; a rest day is a plain string describing the recovery activity.`)
	return b.String()
}

// extractJSON strips a markdown code fence and any prose around the outermost object.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.Contains(s[:nl], "{") {
			s = s[nl+1:] // drop the language tag line
		}
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
	}
	start, end := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return strings.TrimSpace(s)
}
