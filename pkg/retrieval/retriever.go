package retrieval

import (
	"sort"
	"strings"

	"student-coach-be/internal/pkg/logger"
	"student-coach-be/pkg/knowledge"
)

// ============================================================================
// TYPES
// ============================================================================

// Query is one retrieval request against the knowledge catalogue.
type Query struct {
	// RawText is the tutor's latest message.
	RawText string `json:"raw_text"`
	// TopicTag is the VESPA element the conversation is about. Inferred
	// from RawText when empty.
	TopicTag string `json:"topic_tag,omitempty"`
	// Level is the student's education level ("Level 2"/"Level 3"),
	// empty when unknown.
	Level string `json:"level,omitempty"`
}

// ScoredItem is one retrieved catalogue item with its relevance score.
type ScoredItem struct {
	Item  knowledge.Item `json:"item"`
	Score float64        `json:"score"`
	Kind  knowledge.Kind `json:"source_kind"`
}

// ============================================================================
// SCORING WEIGHTS
// ============================================================================

// The corpora are small and hand-curated, so scoring is additive over
// independent keyword/facet signals rather than a similarity metric: a
// human can read the weights and see why an item surfaced.
const (
	nameMatchWeight        = 5.0
	keywordListMatchWeight = 4.0
	facetMatchWeight       = 3.0
	descriptionMatchWeight = 1.0
	descriptionMatchCap    = 2.0
	themeOverlapWeight     = 0.5

	// Activity level affinity. Exact level beats level-agnostic beats
	// cross-level; when the level is unknown, agnostic items get a
	// slight lift instead.
	levelExactWeight         = 1.5
	levelAgnosticWeight      = 0.5
	levelCrossWeight         = 0.25
	levelUnknownAgnosticLift = 0.75

	// scoreThreshold discards weak matches: items scoring at or below
	// it never surface. A single description hit clears it; a lone
	// theme overlap does not.
	scoreThreshold = 0.5
)

// perSourceCap bounds how many items each source may contribute.
var perSourceCap = map[knowledge.Kind]int{
	knowledge.KindInsight:   2,
	knowledge.KindActivity:  3,
	knowledge.KindStatement: 2,
	knowledge.KindQuestion:  3,
}

// totalCap bounds the combined result, for prompt-budget reasons.
const totalCap = 5

// ============================================================================
// RETRIEVER
// ============================================================================

// Retriever scores catalogue items against tutor queries. The catalogue is
// read-only; Retrieve is safe for concurrent use.
type Retriever struct {
	catalogue *knowledge.Catalogue
	log       logger.ILogger
}

func NewRetriever(catalogue *knowledge.Catalogue, log logger.ILogger) *Retriever {
	return &Retriever{catalogue: catalogue, log: log}
}

// Retrieve scores every catalogue item against the query and returns the
// capped, deduplicated result sorted by score descending. Ties keep
// catalogue order, so identical queries always yield identical results.
func (r *Retriever) Retrieve(q Query) []ScoredItem {
	keywords := ExtractKeywords(q.RawText)
	topic := q.TopicTag
	if topic == "" {
		topic = DetectElement(q.RawText)
	}
	queryThemes := matchingThemes(q.RawText)

	if len(keywords) == 0 && topic == "" {
		r.log.Debug("retrieval", "query yields no keywords or topic, skipping retrieval", map[string]interface{}{
			"raw_text": q.RawText,
		})
		return nil
	}

	type candidate struct {
		scored ScoredItem
		order  int
	}
	var merged []candidate
	seen := make(map[string]bool)

	for _, kind := range knowledge.Kinds() {
		var kindMatches []candidate
		for idx, item := range r.catalogue.Source(kind) {
			score := r.scoreItem(item, keywords, topic, q.Level, queryThemes)
			if score <= scoreThreshold {
				continue
			}
			kindMatches = append(kindMatches, candidate{
				scored: ScoredItem{Item: item, Score: score, Kind: kind},
				order:  idx,
			})
		}
		sort.SliceStable(kindMatches, func(i, j int) bool {
			if kindMatches[i].scored.Score != kindMatches[j].scored.Score {
				return kindMatches[i].scored.Score > kindMatches[j].scored.Score
			}
			return kindMatches[i].order < kindMatches[j].order
		})
		if limit := perSourceCap[kind]; len(kindMatches) > limit {
			kindMatches = kindMatches[:limit]
		}
		for _, m := range kindMatches {
			if seen[m.scored.Item.ID] {
				continue
			}
			seen[m.scored.Item.ID] = true
			merged = append(merged, m)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].scored.Score != merged[j].scored.Score {
			return merged[i].scored.Score > merged[j].scored.Score
		}
		return merged[i].order < merged[j].order
	})
	if len(merged) > totalCap {
		merged = merged[:totalCap]
	}

	out := make([]ScoredItem, len(merged))
	for i, m := range merged {
		out[i] = m.scored
	}
	r.log.Debug("retrieval", "retrieval complete", map[string]interface{}{
		"keywords": keywords,
		"topic":    topic,
		"results":  len(out),
	})
	return out
}

func (r *Retriever) scoreItem(item knowledge.Item, keywords []string, topic, level string, queryThemes []string) float64 {
	score := 0.0
	nameLower := strings.ToLower(item.Name)
	descLower := strings.ToLower(item.Description)

	for _, kw := range keywords {
		if strings.Contains(nameLower, kw) {
			score += nameMatchWeight
			break
		}
	}
	for _, kw := range keywords {
		if keywordListContains(item.Keywords, kw) {
			score += keywordListMatchWeight
			break
		}
	}
	descScore := 0.0
	for _, kw := range keywords {
		if descLower != "" && strings.Contains(descLower, kw) {
			descScore += descriptionMatchWeight
			if descScore >= descriptionMatchCap {
				break
			}
		}
	}
	score += descScore

	if topic != "" && item.Element == topic {
		score += facetMatchWeight
	}

	if len(queryThemes) > 0 {
		corpus := item.Corpus()
		for _, theme := range queryThemes {
			if themeTouches(corpus, themeWords[theme]) {
				score += themeOverlapWeight
			}
		}
	}

	if item.Kind == knowledge.KindActivity && score > 0 {
		score += levelAffinity(item.Level, level)
	}
	return score
}

func keywordListContains(itemKeywords []string, kw string) bool {
	for _, ik := range itemKeywords {
		if strings.Contains(ik, kw) {
			return true
		}
	}
	return false
}

func levelAffinity(itemLevel, studentLevel string) float64 {
	if studentLevel == "" {
		if itemLevel == "" {
			return levelUnknownAgnosticLift
		}
		return 0
	}
	switch itemLevel {
	case studentLevel:
		return levelExactWeight
	case "":
		return levelAgnosticWeight
	default:
		return levelCrossWeight
	}
}
