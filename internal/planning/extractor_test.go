package planning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsyeabsera/clear-ai-sub000/internal/llm/providers"
	"github.com/wsyeabsera/clear-ai-sub000/internal/memory"
)

func TestGoalExtractor_Extract(t *testing.T) {
	mock := providers.NewMockProvider([]string{
		`{"goals": [
			{"id": "g1", "description": "Collect the data", "priority": 12, "estimated_duration_ms": 500},
			{"id": "g2", "description": "Summarize findings", "dependencies": ["g1"]}
		]}`,
	})

	extractor := NewGoalExtractor(mock, DefaultConfig(), nil)
	goals, err := extractor.Extract(context.Background(), "collect and summarize", nil)

	require.NoError(t, err)
	require.Len(t, goals, 2)

	assert.Equal(t, "Collect the data", goals[0].Description)
	assert.Equal(t, 10, goals[0].Priority, "priority should clamp to the maximum")
	assert.Equal(t, time.Second, goals[0].EstimatedDuration, "duration should floor at one second")

	assert.Equal(t, 5, goals[1].Priority, "absent priority should default")
	require.Len(t, goals[1].Dependencies, 1)
	assert.Equal(t, goals[0].ID, goals[1].Dependencies[0])
}

func TestGoalExtractor_TruncatesToMaxGoals(t *testing.T) {
	mock := providers.NewMockProvider([]string{
		`{"goals": [
			{"description": "one"},
			{"description": "two"},
			{"description": "three"}
		]}`,
	})

	extractor := NewGoalExtractor(mock, Config{MaxGoals: 2}, nil)
	goals, err := extractor.Extract(context.Background(), "do three things", nil)

	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "one", goals[0].Description)
	assert.Equal(t, "two", goals[1].Description)
}

func TestGoalExtractor_PromptCarriesMemoryContext(t *testing.T) {
	mock := providers.NewMockProvider([]string{`{"goals": []}`})

	snapshot := &memory.Snapshot{
		Episodic: []memory.EpisodicRecord{
			{Content: "deployed service atlas yesterday", Importance: 0.9},
		},
		Semantic: []memory.SemanticRecord{
			{Concept: "atlas", Knowledge: "atlas serves the billing API", Confidence: 0.8},
		},
	}

	extractor := NewGoalExtractor(mock, DefaultConfig(), nil)
	_, err := extractor.Extract(context.Background(), "check on atlas", snapshot)
	require.NoError(t, err)

	calls := mock.GetCalls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Request.Messages, 2)

	userPrompt := calls[0].Request.Messages[1].Content
	assert.Contains(t, userPrompt, "check on atlas")
	assert.Contains(t, userPrompt, "deployed service atlas yesterday")
	assert.Contains(t, userPrompt, "atlas serves the billing API")
	assert.Equal(t, 0.7, calls[0].Request.Temperature)
}

func TestGoalExtractor_ProviderError(t *testing.T) {
	mock := providers.NewMockProvider(nil)
	mock.FailWith(errors.New("provider unreachable"))

	extractor := NewGoalExtractor(mock, DefaultConfig(), nil)
	goals, err := extractor.Extract(context.Background(), "anything", nil)

	require.Error(t, err)
	assert.Nil(t, goals)

	var perr *PlanningError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrorTypeExtraction, perr.Type)
}

func TestGoalExtractor_UnparseableResponse(t *testing.T) {
	mock := providers.NewMockProvider([]string{"I could not come up with goals, sorry."})

	extractor := NewGoalExtractor(mock, DefaultConfig(), nil)
	_, err := extractor.Extract(context.Background(), "anything", nil)

	require.Error(t, err)

	var perr *PlanningError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrorTypeParse, perr.Type)
}
