package generator

import (
	"coachvision/backend/internal/config"
	"coachvision/backend/internal/domain"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const weekReply = `{
  "workouts": {
    "monday": {"type": "Strength", "exercises": ["Squats", "Bench press"]},
    "tuesday": {"type": "Cardio", "exercises": ["Run 5k"]},
    "wednesday": "Active recovery walk",
    "thursday": {"type": "Strength", "exercises": ["Deadlift"]},
    "friday": {"type": "HIIT", "exercises": ["Burpees"]},
    "saturday": {"type": "Mobility", "exercises": ["Yoga flow"]},
    "sunday": "Full rest"
  },
  "nutrition": {"daily_calories": 2400},
  "recommendations": ["Sleep 8 hours"]
}`

func completeUser() *domain.User {
	age, weight, height := 30, 80.0, 182.0
	goal, level := domain.GoalMuscleGain, domain.LevelBeginner
	return &domain.User{
		ID: "u1", Name: "Sam", Age: &age, Weight: &weight, Height: &height,
		FitnessGoal: &goal, ExperienceLevel: &level,
	}
}

// fakeCompletions serves a fixed assistant reply and records the last request.
func fakeCompletions(t *testing.T, status int, reply string) (*httptest.Server, *openai.ChatCompletionRequest, *int32) {
	t.Helper()
	var last openai.ChatCompletionRequest
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&last))

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error": {"message": "upstream unavailable", "type": "server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: "gpt-3.5-turbo",
			Choices: []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
				FinishReason: openai.FinishReasonStop,
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &last, &calls
}

func newTestGenerator(baseURL string) *OpenAIGenerator {
	return NewOpenAIGenerator(config.OpenAIConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL + "/v1",
		Model:       "gpt-3.5-turbo",
		MaxTokens:   2000,
		Temperature: 0.7,
	}, zap.NewNop())
}

func TestGenerate(t *testing.T) {
	srv, last, _ := fakeCompletions(t, http.StatusOK, weekReply)
	g := newTestGenerator(srv.URL)

	content, err := g.Generate(context.Background(), completeUser(), domain.PlanTypeWeekly)
	require.NoError(t, err)

	assert.Len(t, content.Workouts, 7)
	assert.Equal(t, domain.RestDay("Full rest"), content.Workouts[domain.Sunday])
	assert.JSONEq(t, `{"daily_calories": 2400}`, string(content.Nutrition))

	assert.Equal(t, "gpt-3.5-turbo", last.Model)
	assert.Equal(t, 2000, last.MaxTokens)
	require.Len(t, last.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, last.Messages[0].Role)
	assert.Contains(t, last.Messages[1].Content, "Create a personalized weekly training")
	assert.Contains(t, last.Messages[1].Content, "Fitness Goal: muscle_gain")
	assert.Contains(t, last.Messages[1].Content, "Age: 30")
}

func TestGenerate_FencedReply(t *testing.T) {
	srv, _, _ := fakeCompletions(t, http.StatusOK, "Here is your plan:\n```json\n"+weekReply+"\n```\nEnjoy!")
	g := newTestGenerator(srv.URL)

	content, err := g.Generate(context.Background(), completeUser(), domain.PlanTypeWeekly)
	require.NoError(t, err)
	assert.Equal(t, domain.Workout("HIIT", "Burpees"), content.Workouts[domain.Friday])
}

func TestGenerate_Failures(t *testing.T) {
	t.Run("incomplete week", func(t *testing.T) {
		srv, _, _ := fakeCompletions(t, http.StatusOK, `{"workouts": {"monday": "rest"}}`)
		_, err := newTestGenerator(srv.URL).Generate(context.Background(), completeUser(), domain.PlanTypeWeekly)
		assert.ErrorIs(t, err, domain.ErrInvalidContent)
	})

	t.Run("free text", func(t *testing.T) {
		srv, _, _ := fakeCompletions(t, http.StatusOK, "Do some push-ups every day.")
		_, err := newTestGenerator(srv.URL).Generate(context.Background(), completeUser(), domain.PlanTypeWeekly)
		assert.Error(t, err)
	})

	t.Run("empty reply", func(t *testing.T) {
		srv, _, _ := fakeCompletions(t, http.StatusOK, "  ")
		_, err := newTestGenerator(srv.URL).Generate(context.Background(), completeUser(), domain.PlanTypeWeekly)
		assert.ErrorIs(t, err, ErrEmptyCompletion)
	})

	t.Run("upstream error is not retried", func(t *testing.T) {
		srv, _, calls := fakeCompletions(t, http.StatusInternalServerError, "")
		_, err := newTestGenerator(srv.URL).Generate(context.Background(), completeUser(), domain.PlanTypeWeekly)
		require.Error(t, err)
		var apiErr *openai.APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	})

	t.Run("missing api key", func(t *testing.T) {
		g := NewOpenAIGenerator(config.OpenAIConfig{}, zap.NewNop())
		_, err := g.Generate(context.Background(), completeUser(), domain.PlanTypeWeekly)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("incomplete profile", func(t *testing.T) {
		srv, _, calls := fakeCompletions(t, http.StatusOK, weekReply)
		_, err := newTestGenerator(srv.URL).Generate(context.Background(), &domain.User{ID: "u2"}, domain.PlanTypeWeekly)
		assert.ErrorIs(t, err, ErrIncompleteUser)
		assert.Zero(t, atomic.LoadInt32(calls))
	})
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"workouts":{}}`, extractJSON("```{\"workouts\":{}}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("```json {\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, extractJSON("  {\"a\":1}  "))
	assert.Equal(t, `{"a":{"b":2}}`, extractJSON("sure! {\"a\":{\"b\":2}} hope it helps"))
	assert.Equal(t, "no json", extractJSON("no json"))
}
