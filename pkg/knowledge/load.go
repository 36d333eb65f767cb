package knowledge

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"student-coach-be/internal/pkg/logger"
)

// ============================================================================
// CATALOGUE LOADING
// ============================================================================

// Loading is best-effort per source: a missing or malformed file logs a
// startup warning and leaves that source empty. Per-request behavior then
// treats the source as permanently empty.

type rawInsight struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Level       string   `json:"level"`
}

type rawActivity struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ShortSummary string   `json:"short_summary"`
	Keywords     []string `json:"keywords"`
	VESPAElement string   `json:"vespa_element"`
	Level        string   `json:"level"`
	PDFLink      string   `json:"pdf_link"`
}

// rawQuestionsKB mirrors the nested coaching-questions source: a flat list
// of general openers plus element → level → score-band → questions.
type rawQuestionsKB struct {
	GeneralIntroductoryQuestions   []string                                  `json:"generalIntroductoryQuestions"`
	VESPASpecificCoachingQuestions map[string]map[string]map[string][]string `json:"vespaSpecificCoachingQuestions"`
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func readJSON(dir, name string, v interface{}, log logger.ILogger) bool {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("knowledge", "knowledge source failed to load", map[string]interface{}{
			"file":  path,
			"error": err.Error(),
		})
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Warn("knowledge", "knowledge source is not valid JSON", map[string]interface{}{
			"file":  path,
			"error": err.Error(),
		})
		return false
	}
	return true
}

func loadInsights(dir string, log logger.ILogger) []Item {
	var raw []rawInsight
	if !readJSON(dir, "coaching_insights.json", &raw, log) {
		return nil
	}
	items := make([]Item, 0, len(raw))
	for i, r := range raw {
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("insight-%d", i)
		}
		items = append(items, Item{
			ID:          id,
			Kind:        KindInsight,
			Name:        r.Name,
			Description: r.Description,
			Keywords:    lowerAll(r.Keywords),
			Level:       r.Level,
		})
	}
	log.Info("knowledge", "coaching insights loaded", map[string]interface{}{"count": len(items)})
	return items
}

func loadActivities(dir string, log logger.ILogger) []Item {
	var raw []rawActivity
	if !readJSON(dir, "vespa_activities_kb.json", &raw, log) {
		return nil
	}
	items := make([]Item, 0, len(raw))
	for i, r := range raw {
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("activity-%d", i)
		}
		items = append(items, Item{
			ID:          id,
			Kind:        KindActivity,
			Name:        r.Name,
			Description: r.ShortSummary,
			Keywords:    lowerAll(r.Keywords),
			Element:     strings.ToUpper(r.VESPAElement),
			Level:       r.Level,
			PDFLink:     r.PDFLink,
		})
	}
	log.Info("knowledge", "vespa activities loaded", map[string]interface{}{"count": len(items)})
	return items
}

// loadStatements reads the reflective statements, one per non-empty line.
func loadStatements(dir string, log logger.ILogger) []Item {
	path := filepath.Join(dir, "reflective_statements.txt")
	file, err := os.Open(path)
	if err != nil {
		log.Warn("knowledge", "reflective statements failed to load", map[string]interface{}{
			"file":  path,
			"error": err.Error(),
		})
		return nil
	}
	defer file.Close()

	var items []Item
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		items = append(items, Item{
			ID:   fmt.Sprintf("statement-%d", len(items)),
			Kind: KindStatement,
			Name: line,
		})
	}
	if err := scanner.Err(); err != nil {
		log.Warn("knowledge", "reflective statements read error", map[string]interface{}{
			"file":  path,
			"error": err.Error(),
		})
	}
	log.Info("knowledge", "reflective statements loaded", map[string]interface{}{"count": len(items)})
	return items
}

// loadQuestions flattens the nested coaching-questions source into items.
// General openers come first, then element-specific questions.
func loadQuestions(dir string, log logger.ILogger) []Item {
	var raw rawQuestionsKB
	if !readJSON(dir, "coaching_questions_knowledge_base.json", &raw, log) {
		return nil
	}
	var items []Item
	for _, q := range raw.GeneralIntroductoryQuestions {
		items = append(items, Item{
			ID:   fmt.Sprintf("question-%d", len(items)),
			Kind: KindQuestion,
			Name: q,
		})
	}
	// Maps do not iterate in file order; sort keys so the flattened
	// catalogue order is stable across restarts.
	for _, element := range sortedKeys(raw.VESPASpecificCoachingQuestions) {
		levels := raw.VESPASpecificCoachingQuestions[element]
		for _, level := range sortedKeys(levels) {
			bands := levels[level]
			for _, band := range sortedKeys(bands) {
				for _, q := range bands[band] {
					items = append(items, Item{
						ID:        fmt.Sprintf("question-%d", len(items)),
						Kind:      KindQuestion,
						Name:      q,
						Element:   strings.ToUpper(element),
						Level:     level,
						ScoreBand: band,
					})
				}
			}
		}
	}
	log.Info("knowledge", "coaching questions loaded", map[string]interface{}{"count": len(items)})
	return items
}

// LoadCatalogue reads all four knowledge sources from dir.
func LoadCatalogue(dir string, log logger.ILogger) *Catalogue {
	c := &Catalogue{
		Insights:   loadInsights(dir, log),
		Activities: loadActivities(dir, log),
		Statements: loadStatements(dir, log),
		Questions:  loadQuestions(dir, log),
	}
	if c.Empty() {
		log.Warn("knowledge", "knowledge catalogue is empty, retrieval will return placeholders only", nil)
	}
	return c
}
