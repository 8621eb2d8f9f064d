package entity

import (
	"errors"
	"testing"
)

func TestParseQuestionType(t *testing.T) {
	tests := []struct {
		value   string
		want    QuestionType
		wantErr bool
	}{
		{"ASSUMPTION", QuestionTypeAssumption, false},
		{"PERSPECTIVE", QuestionTypePerspective, false},
		{"EXPANSION", QuestionTypeExpansion, false},
		{"CLARIFICATION", QuestionTypeClarification, false},
		{"IMPLICATION", QuestionTypeImplication, false},
		{"assumption", "", true}, // case sensitive on purpose
		{"SOCRATIC", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseQuestionType(tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQuestionType) {
					t.Errorf("ParseQuestionType(%q) err = %v, want ErrInvalidQuestionType", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQuestionType(%q) failed: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ParseQuestionType(%q) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestAllQuestionTypesMetadata(t *testing.T) {
	types := AllQuestionTypes()
	if len(types) != 5 {
		t.Fatalf("type count = %d, want 5", len(types))
	}
	if types[0] != QuestionTypeAssumption || types[4] != QuestionTypeImplication {
		t.Error("display order changed unexpectedly")
	}
	for _, qt := range types {
		if qt.Label() == "" || qt.Icon() == "" || qt.PromptHint() == "" {
			t.Errorf("type %s missing metadata", qt)
		}
	}
}

func TestParseIntensityLevel(t *testing.T) {
	tests := []struct {
		value   string
		want    IntensityLevel
		wantErr bool
	}{
		{"GENTLE", IntensityGentle, false},
		{"MODERATE", IntensityModerate, false},
		{"CHALLENGING", IntensityChallenging, false},
		{"moderate", "", true},
		{"BRUTAL", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseIntensityLevel(tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidIntensityLevel) {
					t.Errorf("ParseIntensityLevel(%q) err = %v, want ErrInvalidIntensityLevel", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIntensityLevel(%q) failed: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ParseIntensityLevel(%q) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestAllIntensityLevelsMetadata(t *testing.T) {
	levels := AllIntensityLevels()
	if len(levels) != 3 {
		t.Fatalf("level count = %d, want 3", len(levels))
	}
	for _, l := range levels {
		if l.Label() == "" || l.Icon() == "" || l.PromptModifier() == "" {
			t.Errorf("level %s missing metadata", l)
		}
	}
}
