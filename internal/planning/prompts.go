package planning

import (
	"fmt"
	"strings"

	"github.com/wsyeabsera/clear-ai-sub000/internal/memory"
	"github.com/wsyeabsera/clear-ai-sub000/internal/plan"
	"github.com/wsyeabsera/clear-ai-sub000/internal/tool"
)

// goalExtractionSystemPrompt instructs the provider on how to propose goals.
func goalExtractionSystemPrompt(maxGoals int) string {
	var sb strings.Builder

	sb.WriteString("You are a planning assistant that turns a user query into concrete, achievable goals.\n\n")

	sb.WriteString("# Output Format\n\n")
	sb.WriteString("You MUST respond with a valid JSON object following this exact schema:\n\n")
	sb.WriteString("```json\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"goals\": [\n")
	sb.WriteString("    {\n")
	sb.WriteString("      \"id\": \"g1\",\n")
	sb.WriteString("      \"description\": \"what this goal achieves\",\n")
	sb.WriteString("      \"priority\": 5,\n")
	sb.WriteString("      \"success_criteria\": [\"observable outcome\"],\n")
	sb.WriteString("      \"dependencies\": [\"ids of goals that must complete first\"],\n")
	sb.WriteString("      \"estimated_duration_ms\": 60000,\n")
	sb.WriteString("      \"required_resources\": []\n")
	sb.WriteString("    }\n")
	sb.WriteString("  ]\n")
	sb.WriteString("}\n")
	sb.WriteString("```\n\n")

	sb.WriteString("# Guidelines\n\n")
	sb.WriteString(fmt.Sprintf("- Propose at most %d goals\n", maxGoals))
	sb.WriteString("- Priority is an integer from 1 (lowest) to 10 (highest)\n")
	sb.WriteString("- Durations are estimates in milliseconds, at least 1000\n")
	sb.WriteString("- Keep goals independent unless one truly requires another\n")

	return sb.String()
}

// goalExtractionUserPrompt carries the query plus the truncated memory
// context.
func goalExtractionUserPrompt(query string, view memory.ContextView) string {
	var sb strings.Builder

	sb.WriteString("# Query\n\n")
	sb.WriteString(query)
	sb.WriteString("\n\n")

	writeContextSection(&sb, view)

	sb.WriteString("Derive the goals for this query. Respond ONLY with the JSON object.")

	return sb.String()
}

// decompositionSystemPrompt instructs the provider on splitting one
// long-running goal.
func decompositionSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are a planning assistant that splits a long-running goal into smaller sequential subgoals.\n\n")

	sb.WriteString("# Output Format\n\n")
	sb.WriteString("You MUST respond with a valid JSON object following this exact schema:\n\n")
	sb.WriteString("```json\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"subgoals\": [\n")
	sb.WriteString("    {\n")
	sb.WriteString("      \"id\": \"s1\",\n")
	sb.WriteString("      \"description\": \"what this subgoal achieves\",\n")
	sb.WriteString("      \"priority\": 5,\n")
	sb.WriteString("      \"success_criteria\": [],\n")
	sb.WriteString("      \"estimated_duration_ms\": 60000,\n")
	sb.WriteString("      \"required_resources\": []\n")
	sb.WriteString("    }\n")
	sb.WriteString("  ]\n")
	sb.WriteString("}\n")
	sb.WriteString("```\n\n")

	sb.WriteString("# Guidelines\n\n")
	sb.WriteString(fmt.Sprintf("- Propose between %d and %d subgoals, ordered by execution\n", MinSubgoalFanout, MaxSubgoalFanout))
	sb.WriteString("- Subgoal durations should roughly sum to the goal's estimate\n")
	sb.WriteString("- Each subgoal must be independently verifiable\n")

	return sb.String()
}

func decompositionUserPrompt(g *plan.Goal) string {
	var sb strings.Builder

	sb.WriteString("# Goal\n\n")
	sb.WriteString(fmt.Sprintf("**Description**: %s\n\n", g.Description))
	sb.WriteString(fmt.Sprintf("**Priority**: %d\n\n", g.Priority))
	sb.WriteString(fmt.Sprintf("**Estimated duration**: %dms\n\n", g.EstimatedDuration.Milliseconds()))

	if len(g.SuccessCriteria) > 0 {
		sb.WriteString("**Success criteria**:\n")
		for _, c := range g.SuccessCriteria {
			sb.WriteString(fmt.Sprintf("- %s\n", c))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Split this goal into subgoals. Respond ONLY with the JSON object.")

	return sb.String()
}

// actionPlanningSystemPrompt lists the registered tools and instructs the
// provider to use only those.
func actionPlanningSystemPrompt(tools []tool.Descriptor, maxActions int) string {
	var sb strings.Builder

	sb.WriteString("You are a planning assistant that proposes concrete tool invocations for a subgoal.\n\n")

	sb.WriteString("# Available Tools\n\n")
	if len(tools) == 0 {
		sb.WriteString("No tools are currently registered.\n\n")
	} else {
		sb.WriteString("These are the ONLY tools that exist. Any action naming a tool not in this list will be discarded:\n\n")
		for _, t := range tools {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("# Output Format\n\n")
	sb.WriteString("You MUST respond with a valid JSON object following this exact schema:\n\n")
	sb.WriteString("```json\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"actions\": [\n")
	sb.WriteString("    {\n")
	sb.WriteString("      \"id\": \"a1\",\n")
	sb.WriteString("      \"description\": \"what this action does\",\n")
	sb.WriteString("      \"tool\": \"exact tool name from the list\",\n")
	sb.WriteString("      \"parameters\": {},\n")
	sb.WriteString("      \"estimated_duration_ms\": 5000,\n")
	sb.WriteString("      \"dependencies\": [\"ids of actions that must complete first\"],\n")
	sb.WriteString("      \"success_criteria\": [],\n")
	sb.WriteString("      \"error_strategy\": \"retry\",\n")
	sb.WriteString("      \"max_retries\": 2,\n")
	sb.WriteString("      \"timeout_ms\": 30000,\n")
	sb.WriteString("      \"resource_requirements\": []\n")
	sb.WriteString("    }\n")
	sb.WriteString("  ]\n")
	sb.WriteString("}\n")
	sb.WriteString("```\n\n")

	sb.WriteString("# Guidelines\n\n")
	sb.WriteString(fmt.Sprintf("- Propose at most %d actions\n", maxActions))
	sb.WriteString("- The tool field must exactly match a name from the Available Tools list\n")
	sb.WriteString("- error_strategy is one of retry, skip, fallback, abort\n")
	sb.WriteString("- Use dependencies to order actions; independent actions run concurrently\n")

	return sb.String()
}

func actionPlanningUserPrompt(subgoal *plan.Goal) string {
	var sb strings.Builder

	sb.WriteString("# Subgoal\n\n")
	sb.WriteString(fmt.Sprintf("**Description**: %s\n\n", subgoal.Description))

	if len(subgoal.SuccessCriteria) > 0 {
		sb.WriteString("**Success criteria**:\n")
		for _, c := range subgoal.SuccessCriteria {
			sb.WriteString(fmt.Sprintf("- %s\n", c))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Propose the actions that achieve this subgoal. Respond ONLY with the JSON object.")

	return sb.String()
}

// fallbackSystemPrompt asks for recovery strategies for a drafted plan.
func fallbackSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are a planning assistant that proposes recovery strategies for an execution plan.\n\n")

	sb.WriteString("# Output Format\n\n")
	sb.WriteString("You MUST respond with a valid JSON object following this exact schema:\n\n")
	sb.WriteString("```json\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"strategies\": [\n")
	sb.WriteString("    {\n")
	sb.WriteString("      \"condition\": \"when to apply this strategy\",\n")
	sb.WriteString("      \"action\": \"what to do\",\n")
	sb.WriteString("      \"description\": \"why it helps\",\n")
	sb.WriteString("      \"success_probability\": 0.7,\n")
	sb.WriteString("      \"resource_requirements\": []\n")
	sb.WriteString("    }\n")
	sb.WriteString("  ]\n")
	sb.WriteString("}\n")
	sb.WriteString("```\n")

	return sb.String()
}

func fallbackUserPrompt(goals []plan.Goal, actions []plan.Action) string {
	var sb strings.Builder

	sb.WriteString("# Plan Overview\n\n")
	sb.WriteString("**Goals**:\n")
	for i := range goals {
		sb.WriteString(fmt.Sprintf("- %s\n", goals[i].Description))
	}
	sb.WriteString("\n**Actions**:\n")
	for i := range actions {
		sb.WriteString(fmt.Sprintf("- %s (tool: %s)\n", actions[i].Description, actions[i].Tool))
	}
	sb.WriteString("\n")

	sb.WriteString("Propose fallback strategies for the ways this plan could fail. Respond ONLY with the JSON object.")

	return sb.String()
}

// writeContextSection renders the truncated working-memory view shared by
// planning prompts.
func writeContextSection(sb *strings.Builder, view memory.ContextView) {
	if len(view.Episodic) == 0 && len(view.Semantic) == 0 {
		return
	}

	sb.WriteString("# Context\n\n")

	if len(view.Episodic) > 0 {
		sb.WriteString("## Recent Interactions\n\n")
		for _, r := range view.Episodic {
			sb.WriteString(fmt.Sprintf("- %s\n", r.Content))
		}
		sb.WriteString("\n")
	}

	if len(view.Semantic) > 0 {
		sb.WriteString("## Known Facts\n\n")
		for _, r := range view.Semantic {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", r.Concept, r.Knowledge))
		}
		sb.WriteString("\n")
	}
}
