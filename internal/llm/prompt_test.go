package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/tech-concierge/internal/model"
)

func TestBuildSystemPrompt(t *testing.T) {
	tests := []struct {
		name     string
		context  model.Context
		contains []string
	}{
		{
			name:    "empty context uses placeholders",
			context: model.Context{},
			contains: []string{
				"- Budget: Not specified",
				"- Use case: Not specified",
				"- Urgency: Flexible",
				"- Existing devices: None mentioned",
			},
		},
		{
			name: "populated context",
			context: model.Context{
				Budget:          1500,
				UseCase:         model.UseCaseVideoEditing,
				Urgency:         model.UrgencyToday,
				Location:        "Chelsea",
				ExistingDevices: []string{"iPhone", "iPad"},
			},
			contains: []string{
				"- Budget: $1500",
				"- Use case: video-editing",
				"- Urgency: today",
				"- Location: Chelsea",
				"- Existing devices: iPhone, iPad",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildSystemPrompt(tt.context)
			assert.Contains(t, prompt, `You are "My Tech Pro"`)
			assert.Contains(t, prompt, "My Best Buy Plus ($49.99/year): 20% off services")
			assert.Contains(t, prompt, "## Response Style")
			assert.NotContains(t, prompt, "{{context}}")
			for _, want := range tt.contains {
				assert.Contains(t, prompt, want)
			}
		})
	}
}
