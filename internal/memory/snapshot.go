package memory

import (
	"sort"
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// Context truncation limits. Every Reasoner-backed planning step sees at most
// this many memories, ranked by importance and confidence respectively, to
// bound prompt size.
const (
	DefaultEpisodicLimit = 5
	DefaultSemanticLimit = 10
)

// EpisodicRecord is a single remembered interaction, scored by importance.
type EpisodicRecord struct {
	ID         types.ID       `json:"id,omitempty" yaml:"id,omitempty"`
	Timestamp  time.Time      `json:"timestamp" yaml:"timestamp"`
	Content    string         `json:"content" yaml:"content"`
	Importance float64        `json:"importance" yaml:"importance"`
	Metadata   map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// SemanticRecord is a piece of accumulated knowledge, scored by confidence.
type SemanticRecord struct {
	ID         types.ID       `json:"id,omitempty" yaml:"id,omitempty"`
	Concept    string         `json:"concept" yaml:"concept"`
	Knowledge  string         `json:"knowledge" yaml:"knowledge"`
	Confidence float64        `json:"confidence" yaml:"confidence"`
	Metadata   map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Snapshot is the read-only working-memory state handed to the planner.
// Storage, retrieval and scoring happen upstream; the planner only ranks and
// truncates what it is given.
type Snapshot struct {
	Episodic []EpisodicRecord `json:"episodic" yaml:"episodic"`
	Semantic []SemanticRecord `json:"semantic" yaml:"semantic"`
}

// HasEpisodic reports whether any episodic memory is present. Plans built
// with episodic context get a small success-probability bonus.
func (s *Snapshot) HasEpisodic() bool {
	return s != nil && len(s.Episodic) > 0
}

// ContextView is the truncated slice of a snapshot that prompt builders see.
type ContextView struct {
	Episodic []EpisodicRecord
	Semantic []SemanticRecord
}

// Select returns the top maxEpisodic episodic records by importance and the
// top maxSemantic semantic records by confidence. The snapshot itself is
// never reordered; callers may share one snapshot across concurrent plans.
func (s *Snapshot) Select(maxEpisodic, maxSemantic int) ContextView {
	if s == nil {
		return ContextView{}
	}

	episodic := make([]EpisodicRecord, len(s.Episodic))
	copy(episodic, s.Episodic)
	sort.SliceStable(episodic, func(i, j int) bool {
		return episodic[i].Importance > episodic[j].Importance
	})
	if maxEpisodic >= 0 && len(episodic) > maxEpisodic {
		episodic = episodic[:maxEpisodic]
	}

	semantic := make([]SemanticRecord, len(s.Semantic))
	copy(semantic, s.Semantic)
	sort.SliceStable(semantic, func(i, j int) bool {
		return semantic[i].Confidence > semantic[j].Confidence
	})
	if maxSemantic >= 0 && len(semantic) > maxSemantic {
		semantic = semantic[:maxSemantic]
	}

	return ContextView{
		Episodic: episodic,
		Semantic: semantic,
	}
}

// SelectDefault applies the standard truncation policy.
func (s *Snapshot) SelectDefault() ContextView {
	return s.Select(DefaultEpisodicLimit, DefaultSemanticLimit)
}
