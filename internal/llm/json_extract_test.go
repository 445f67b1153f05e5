package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_MarkdownJsonBlock(t *testing.T) {
	response := `Here are the goals I identified:

` + "```json" + `
{
  "goals": [
    {"description": "Collect the dataset", "priority": 8}
  ]
}
` + "```" + `

Let me know if you need anything else.`

	result, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Contains(t, result, `"goals"`)
	assert.Contains(t, result, "Collect the dataset")
}

func TestExtractJSON_MarkdownNoLang(t *testing.T) {
	response := "```\n{\"key\": \"value\", \"number\": 42}\n```"

	result, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, `{"key": "value", "number": 42}`, result)
}

func TestExtractJSON_RawJSONObject(t *testing.T) {
	response := `{"summary": "test", "status": "complete"}`

	result, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, response, result)
}

func TestExtractJSON_RawJSONArray(t *testing.T) {
	response := `[{"item": 1}, {"item": 2}]`

	result, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, response, result)
}

func TestExtractJSON_SkipOtherLanguageBlocks(t *testing.T) {
	response := "Run this first:\n```bash\necho hello\n```\n\nThen the plan:\n```json\n{\"actions\": []}\n```"

	result, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, `{"actions": []}`, result)
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	response := `Based on the context, the plan is {"goals": [{"priority": 5}]} which should work.`

	result, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, `{"goals": [{"priority": 5}]}`, result)
}

func TestExtractJSON_BracketsInsideStrings(t *testing.T) {
	response := `{"description": "use arr[0] and {braces}", "ok": true}`

	result, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, response, result)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON("I could not produce a plan for that query.")
	require.Error(t, err)
}

func TestExtractJSON_UnbalancedBrackets(t *testing.T) {
	_, err := ExtractJSON(`{"goals": [`)
	require.Error(t, err)
}

func TestExtractJSONAs(t *testing.T) {
	type proposal struct {
		Goals []struct {
			Description string `json:"description"`
			Priority    int    `json:"priority"`
		} `json:"goals"`
	}

	response := "```json\n{\"goals\": [{\"description\": \"scan\", \"priority\": 12}]}\n```"

	got, err := ExtractJSONAs[proposal](response)
	require.NoError(t, err)
	require.Len(t, got.Goals, 1)
	assert.Equal(t, "scan", got.Goals[0].Description)
	assert.Equal(t, 12, got.Goals[0].Priority)
}

func TestExtractJSONAs_TypeMismatch(t *testing.T) {
	type wrapper struct {
		Goals []string `json:"goals"`
	}

	_, err := ExtractJSONAs[wrapper](`{"goals": {"not": "an array"}}`)
	require.Error(t, err)
}
