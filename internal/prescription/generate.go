package prescription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ExerciseGenerator drafts new catalog entries with the OpenAI API. Output
// is constrained by a strict JSON schema whose muscle ids are limited to the
// known catalog muscles.
type ExerciseGenerator struct {
	client openai.Client
}

// NewExerciseGenerator creates a generator using the given API key.
func NewExerciseGenerator(openaiAPIKey string) *ExerciseGenerator {
	return &ExerciseGenerator{
		client: openai.NewClient(option.WithAPIKey(openaiAPIKey)),
	}
}

// generatedExercise is the schema-constrained completion payload.
type generatedExercise struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Difficulty          int                `json:"difficulty"`
	MovementPattern     string             `json:"movementPattern"`
	IsCompound          bool               `json:"isCompound"`
	Locations           []string           `json:"locations"`
	RequiredEquipment   []string           `json:"requiredEquipment"`
	RestSeconds         int                `json:"restSeconds"`
	Activations         map[string]float64 `json:"activations"`
	DescriptionMarkdown string             `json:"descriptionMarkdown"`
}

// Generate drafts an exercise for the given name, with activations limited
// to the given muscle ids. The result still needs to be persisted by the
// caller.
func (g *ExerciseGenerator) Generate(ctx context.Context, name string, muscleIDs []string) (Exercise, error) {
	if name == "" {
		return Exercise{}, errors.New("exercise name cannot be empty")
	}

	prompt := fmt.Sprintf(`Generate a catalog entry for the exercise "%s".
Provide difficulty (1-5), movement pattern, whether it is a compound movement,
the locations where it can be performed, any required equipment tags, a
sensible default rest in seconds, per-muscle activation percentages (0-100),
and a markdown description following this exact structure:

## Instructions
[3-5 numbered steps explaining correct form]

## Common Mistakes
[3-4 bullet points]

Use simple, direct language that beginners can understand and highlight
safety considerations where relevant. Keep the description under 200 words.
Use only the allowed muscle ids for activations.`, name)

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "exercise",
		Description: openai.String("A fitness exercise catalog entry"),
		Schema:      exerciseSchema(muscleIDs),
		Strict:      openai.Bool(true),
	}

	chat, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
		Model: openai.ChatModelGPT4o,
	})
	if err != nil {
		return Exercise{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return Exercise{}, errors.New("chat completion returned no choices")
	}

	var generated generatedExercise
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &generated); err != nil {
		return Exercise{}, fmt.Errorf("parse exercise response: %w", err)
	}
	return validateGenerated(generated, muscleIDs)
}

// validate converts the completion payload into a catalog entry, rejecting
// out-of-range values and unknown muscle ids.
func validateGenerated(generated generatedExercise, muscleIDs []string) (Exercise, error) {
	if generated.ID == "" || generated.Name == "" || generated.DescriptionMarkdown == "" {
		return Exercise{}, errors.New("generated exercise is missing required fields")
	}
	if generated.Difficulty < 1 || generated.Difficulty > 5 {
		return Exercise{}, fmt.Errorf("generated difficulty %d out of range", generated.Difficulty)
	}
	if generated.RestSeconds <= 0 {
		return Exercise{}, fmt.Errorf("generated rest %d out of range", generated.RestSeconds)
	}
	if len(generated.Activations) == 0 {
		return Exercise{}, errors.New("generated exercise activates no muscles")
	}

	exercise := Exercise{
		ID:                  strings.ToLower(generated.ID),
		Name:                generated.Name,
		Difficulty:          generated.Difficulty,
		Pattern:             MovementPattern(generated.MovementPattern),
		Compound:            generated.IsCompound,
		RestSeconds:         generated.RestSeconds,
		Activations:         map[string]float64{},
		RequiredEquipment:   generated.RequiredEquipment,
		DescriptionMarkdown: generated.DescriptionMarkdown,
	}
	for _, location := range generated.Locations {
		exercise.Locations = append(exercise.Locations, Location(location))
	}
	for muscle, activation := range generated.Activations {
		if !slices.Contains(muscleIDs, muscle) {
			return Exercise{}, fmt.Errorf("invalid muscle id %q", muscle)
		}
		if activation < 0 || activation > 100 {
			return Exercise{}, fmt.Errorf("activation %g for %q out of range", activation, muscle)
		}
		exercise.Activations[muscle] = activation
		if activation >= primaryActivationThreshold {
			exercise.PrimaryMuscles = append(exercise.PrimaryMuscles, muscle)
		}
	}
	slices.Sort(exercise.PrimaryMuscles)
	if len(exercise.PrimaryMuscles) == 0 {
		return Exercise{}, errors.New("generated exercise has no primary muscles")
	}
	return exercise, nil
}

// exerciseSchema is a strict JSON schema for generatedExercise with
// enum-constrained pattern, locations, and muscle ids.
func exerciseSchema(muscleIDs []string) map[string]any {
	patterns := []string{"push", "pull", "squat", "hinge", "carry", "core", "isolation"}
	locations := []string{"gym", "home", "park", "hotel", "office", "travel"}

	activationProperties := map[string]any{}
	for _, muscle := range muscleIDs {
		activationProperties[muscle] = map[string]any{
			"type":    "number",
			"minimum": 0,
			"maximum": 100,
		}
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required": []string{
			"id", "name", "difficulty", "movementPattern", "isCompound",
			"locations", "requiredEquipment", "restSeconds", "activations",
			"descriptionMarkdown",
		},
		"properties": map[string]any{
			"id":              map[string]any{"type": "string"},
			"name":            map[string]any{"type": "string"},
			"difficulty":      map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
			"movementPattern": map[string]any{"type": "string", "enum": patterns},
			"isCompound":      map[string]any{"type": "boolean"},
			"locations": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "enum": locations},
			},
			"requiredEquipment": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"restSeconds": map[string]any{"type": "integer", "minimum": 15, "maximum": 600},
			"activations": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           activationProperties,
			},
			"descriptionMarkdown": map[string]any{"type": "string"},
		},
	}
}
