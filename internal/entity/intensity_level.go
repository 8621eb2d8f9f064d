package entity

import (
	"errors"
	"fmt"
)

// IntensityLevel tunes how hard the generated questions push back.
type IntensityLevel string

const (
	IntensityGentle      IntensityLevel = "GENTLE"
	IntensityModerate    IntensityLevel = "MODERATE"
	IntensityChallenging IntensityLevel = "CHALLENGING"
)

// DefaultIntensity is used whenever the caller does not pick a level.
const DefaultIntensity = IntensityModerate

var ErrInvalidIntensityLevel = errors.New("invalid intensity level")

type intensityMeta struct {
	Label          string
	Icon           string
	PromptModifier string
}

var intensityOrder = []IntensityLevel{
	IntensityGentle,
	IntensityModerate,
	IntensityChallenging,
}

var intensityMetadata = map[IntensityLevel]intensityMeta{
	IntensityGentle: {
		Label:          "Gentle",
		Icon:           "🌊",
		PromptModifier: "Ask in an encouraging, curious tone and avoid confrontation.",
	},
	IntensityModerate: {
		Label:          "Moderate",
		Icon:           "⚖️",
		PromptModifier: "Ask direct, thought-provoking questions in a balanced tone.",
	},
	IntensityChallenging: {
		Label:          "Challenging",
		Icon:           "🔥",
		PromptModifier: "Ask sharp questions that rigorously stress-test the ideas.",
	},
}

// ParseIntensityLevel validates a raw value against the closed set.
func ParseIntensityLevel(value string) (IntensityLevel, error) {
	l := IntensityLevel(value)
	if _, ok := intensityMetadata[l]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidIntensityLevel, value)
	}
	return l, nil
}

// AllIntensityLevels returns the complete set in display order.
func AllIntensityLevels() []IntensityLevel {
	out := make([]IntensityLevel, len(intensityOrder))
	copy(out, intensityOrder)
	return out
}

func (l IntensityLevel) String() string {
	return string(l)
}

func (l IntensityLevel) Label() string {
	return intensityMetadata[l].Label
}

func (l IntensityLevel) Icon() string {
	return intensityMetadata[l].Icon
}

func (l IntensityLevel) PromptModifier() string {
	return intensityMetadata[l].PromptModifier
}
