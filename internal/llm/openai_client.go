package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/jmarken/shiftpulse/internal/domain"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const defaultSystemPrompt = `You are a non-medical recovery assistant for shift workers.

You receive aggregated daily vitals for a single user: a Body battery and a Mental battery (0-100), a per-day severity classification, and the internal indices behind them (sleep debt, consecutive night shifts, circadian strain, caffeine interference, menstrual phase impact, input reliability). You must base your conclusions only on the provided data.

Your goals:
- Describe the user's current recovery state in clear, neutral language.
- Explain which factors are driving depletion, using the provided factor ranking.
- Give practical, behavioral suggestions for recovering around their shift schedule.

Rules:
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, medication, or treatment.
- Focus only on behavior and routines (anchor sleep, nap timing, caffeine cutoff, light exposure, protecting days off).
- When input reliability is low, say that the picture is uncertain.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences summarizing the current recovery state and the trend over the window.",
  "observations": [
    "3-6 bullet points about what the numbers show.",
    "At least one item naming the top depletion factor.",
    "If night shifts are involved, one item about the current streak or circadian strain."
  ],
  "guidance": [
    "3-5 concrete, non-medical suggestions tailored to these numbers.",
    "Include at least one suggestion about sleep around upcoming shifts.",
    "Include a caffeine suggestion only if caffeine interference is a meaningful factor."
  ]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing this user's recent vitals.

- "summary" aggregates the window: average Body and Mental scores over usable days, the worst severity, the top depletion factors, and a personalization accuracy percentage.
- "recent" lists the individual days, newest last. Each day carries the two battery scores, the severity, and the engine indices ("sri" is sleep recovery, "csi" is circadian strain, "cif" is caffeine interference where 1 means none, "mif" is menstrual impact where 1 means none, "input_reliability" is how fresh the logged data is).

JSON:

%s

Based on this data, respond in the required JSON format.`

// AdviceLLM is the interface for generating recovery advice using an LLM.
type AdviceLLM interface {
	// GenerateAdvice takes the engine's numeric context and returns
	// LLM-generated advice. Nothing flows back into the engine.
	GenerateAdvice(ctx context.Context, adviceCtx *domain.AdviceContext) (*domain.LLMAdviceOutput, error)
}

// OpenAIClient implements AdviceLLM using the OpenAI API.
type OpenAIClient struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// NewOpenAIClient creates a new OpenAI client for generating advice.
// Returns nil if apiKey is empty. An empty systemPrompt falls back to
// the built-in one.
func NewOpenAIClient(apiKey, model, systemPrompt string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
	}
}

// GenerateAdvice calls OpenAI to generate recovery advice.
func (c *OpenAIClient) GenerateAdvice(ctx context.Context, adviceCtx *domain.AdviceContext) (*domain.LLMAdviceOutput, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	contextJSON, err := json.MarshalIndent(adviceCtx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, string(contextJSON))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := resp.Choices[0].Message.Content

	var output domain.LLMAdviceOutput
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}

	return &output, nil
}
