package workout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const maxAlternatives = 3

// alternativeSuggester picks replacement exercises using the OpenAI API.
type alternativeSuggester struct {
	client openai.Client
	logger *slog.Logger
}

// newAlternativeSuggester creates a new suggester.
func newAlternativeSuggester(openaiAPIKey string, logger *slog.Logger) *alternativeSuggester {
	client := openai.NewClient(option.WithAPIKey(openaiAPIKey))
	return &alternativeSuggester{
		client: client,
		logger: logger,
	}
}

// Suggest asks the model to rank candidate replacements for an exercise and
// returns up to three candidate ids. Only ids from candidates are accepted.
func (g *alternativeSuggester) Suggest(
	ctx context.Context,
	exercise Exercise,
	candidates []Exercise,
) ([]string, error) {
	if len(candidates) == 0 {
		return nil, errors.New("no candidate exercises")
	}

	var sb strings.Builder
	for _, candidate := range candidates {
		fmt.Fprintf(&sb, "- %s: %s (%s, %s)\n",
			candidate.ID, candidate.Name, candidate.MuscleGroup, candidate.Equipment)
	}

	prompt := fmt.Sprintf(`The user wants to replace the exercise %q (%s, %s) in their workout.

Pick the %d best substitutes from this list:
%s
Prefer substitutes that train the same muscle group through a similar movement
pattern, and vary the equipment where it makes sense.

Respond with a JSON array of ids only, for example ["id-1","id-2","id-3"].`,
		exercise.Name, exercise.MuscleGroup, exercise.Equipment, maxAlternatives, sb.String())

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4o,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a strength coach choosing substitute exercises."),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("empty completion")
	}

	ids, err := parseSuggestedIDs(completion.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parse suggestions: %w", err)
	}

	valid := make([]string, 0, maxAlternatives)
	for _, id := range ids {
		if id == exercise.ID {
			continue
		}
		if !slices.ContainsFunc(candidates, func(c Exercise) bool { return c.ID == id }) {
			g.logger.LogAttrs(ctx, slog.LevelWarn, "suggested id not in candidate list",
				slog.String("id", id))
			continue
		}
		if !slices.Contains(valid, id) {
			valid = append(valid, id)
		}
		if len(valid) == maxAlternatives {
			break
		}
	}

	if len(valid) == 0 {
		return nil, errors.New("no valid suggestions")
	}

	return valid, nil
}

// parseSuggestedIDs extracts the id array from a model response, tolerating
// a fenced code block around the JSON.
func parseSuggestedIDs(content string) ([]string, error) {
	content = strings.TrimSpace(content)
	if start := strings.Index(content, "["); start >= 0 {
		if end := strings.LastIndex(content, "]"); end > start {
			content = content[start : end+1]
		}
	}

	var ids []string
	if err := json.Unmarshal([]byte(content), &ids); err != nil {
		return nil, fmt.Errorf("unmarshal id array: %w", err)
	}
	return ids, nil
}

// SuggestAlternatives returns replacement candidates for an exercise. With an
// API key configured it asks the model to rank same-muscle-group candidates;
// without one, or when the model fails, it falls back to the catalog's
// default alternatives.
func (s *Service) SuggestAlternatives(ctx context.Context, exerciseID string) ([]Exercise, error) {
	exercise, ok := s.catalog.ExerciseOf(exerciseID)
	if !ok {
		return nil, fmt.Errorf("unknown exercise %s", exerciseID)
	}

	if s.openaiAPIKey == "" {
		return s.resolveAlternatives(exercise.DefaultAlternatives), nil
	}

	var candidates []Exercise
	for _, candidate := range s.catalog.ByMuscleGroup(exercise.MuscleGroup) {
		if candidate.ID != exercise.ID {
			candidates = append(candidates, candidate)
		}
	}

	suggester := newAlternativeSuggester(s.openaiAPIKey, s.logger)
	ids, err := suggester.Suggest(ctx, exercise, candidates)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to suggest alternatives",
			slog.Any("error", err), slog.String("exercise_id", exerciseID))
		return s.resolveAlternatives(exercise.DefaultAlternatives), nil
	}

	return s.resolveAlternatives(ids), nil
}

// resolveAlternatives maps ids to catalog exercises, dropping unknown ids.
func (s *Service) resolveAlternatives(ids []string) []Exercise {
	alternatives := make([]Exercise, 0, len(ids))
	for _, id := range ids {
		if exercise, ok := s.catalog.ExerciseOf(id); ok {
			alternatives = append(alternatives, exercise)
		}
	}
	return alternatives
}
