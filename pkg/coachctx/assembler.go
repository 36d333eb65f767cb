package coachctx

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"student-coach-be/internal/entity"
	"student-coach-be/internal/pkg/logger"
	"student-coach-be/pkg/benchmark"
	"student-coach-be/pkg/knowledge"
	"student-coach-be/pkg/retrieval"
)

// Input carries everything the assembler may use for one turn. Any field
// other than Phase may be missing; each section degrades to an explicit
// placeholder instead of being dropped, so the downstream generator always
// receives the same section layout.
type Input struct {
	Snapshot  *entity.StudentSnapshot
	Cohort    *entity.CohortAverages
	Academic  *benchmark.ProfileBenchmark
	Retrieved []retrieval.ScoredItem
	Phase     retrieval.Phase
	TopicTag  string
}

const (
	// reflectionExcerptLimit bounds each reflection/goal excerpt.
	reflectionExcerptLimit = 300
	// subjectDigestLimit bounds how many subjects the digest lists.
	subjectDigestLimit = 3
	// maxContextChars bounds the whole assembled package.
	maxContextChars = 6000
)

// Placeholder texts for degraded sections. The generator is told when data
// is absent rather than receiving a silently shorter package.
const (
	placeholderProfile     = "No questionnaire scores are available for this student."
	placeholderAcademic    = "No academic profile is available for this student."
	placeholderReflections = "No current reflections or goals provided."
	placeholderRetrieval   = "No relevant coaching resources found for this topic."
)

// Assembler renders the bounded coaching-context package handed to the
// generation service.
type Assembler struct {
	log logger.ILogger
}

func NewAssembler(log logger.ILogger) *Assembler {
	return &Assembler{log: log}
}

// Assemble produces the context package for one turn. It never fails:
// missing inputs degrade per-section and the output is truncated to the
// package bound.
func (a *Assembler) Assemble(in Input) string {
	var b strings.Builder

	a.writeProfileDigest(&b, in.Snapshot, in.Cohort)
	a.writeAcademicDigest(&b, in.Academic)
	a.writeReflections(&b, in.Snapshot)
	a.writeRetrieved(&b, in)

	out := b.String()
	if len(out) > maxContextChars {
		a.log.Warn("coachctx", "assembled context exceeded budget, truncating", map[string]interface{}{
			"length": len(out),
			"budget": maxContextChars,
		})
		out = cutAt(out, maxContextChars)
	}
	return out
}

// ScoreBandText maps a 1-10 score to its descriptive band.
func ScoreBandText(score float64) string {
	switch {
	case score >= 8:
		return "High"
	case score >= 6:
		return "Medium"
	case score >= 4:
		return "Low"
	case score >= 0:
		return "Very Low"
	}
	return "N/A"
}

func writeScoreLine(b *strings.Builder, name string, score *float64, cohort float64, haveCohort bool) {
	if score == nil {
		fmt.Fprintf(b, "- %s: not recorded\n", name)
		return
	}
	if haveCohort {
		fmt.Fprintf(b, "- %s: %.1f (%s; school average %.1f)\n", name, *score, ScoreBandText(*score), cohort)
		return
	}
	fmt.Fprintf(b, "- %s: %.1f (%s)\n", name, *score, ScoreBandText(*score))
}

func (a *Assembler) writeProfileDigest(b *strings.Builder, snap *entity.StudentSnapshot, cohort *entity.CohortAverages) {
	b.WriteString("<student_profile>\n")
	defer b.WriteString("</student_profile>\n\n")

	if snap == nil || snap.Scores == nil {
		b.WriteString(placeholderProfile + "\n")
		return
	}
	if snap.Name != "" {
		fmt.Fprintf(b, "Student: %s", snap.Name)
		if snap.Level != "" {
			fmt.Fprintf(b, " (%s)", snap.Level)
		}
		if snap.Cycle > 0 {
			fmt.Fprintf(b, ", questionnaire cycle %d", snap.Cycle)
		}
		b.WriteString("\n")
	}
	haveCohort := cohort != nil
	cohortOf := func(f func(*entity.CohortAverages) float64) float64 {
		if cohort == nil {
			return 0
		}
		return f(cohort)
	}
	s := snap.Scores
	writeScoreLine(b, "Vision", s.Vision, cohortOf(func(c *entity.CohortAverages) float64 { return c.Vision }), haveCohort)
	writeScoreLine(b, "Effort", s.Effort, cohortOf(func(c *entity.CohortAverages) float64 { return c.Effort }), haveCohort)
	writeScoreLine(b, "Systems", s.Systems, cohortOf(func(c *entity.CohortAverages) float64 { return c.Systems }), haveCohort)
	writeScoreLine(b, "Practice", s.Practice, cohortOf(func(c *entity.CohortAverages) float64 { return c.Practice }), haveCohort)
	writeScoreLine(b, "Attitude", s.Attitude, cohortOf(func(c *entity.CohortAverages) float64 { return c.Attitude }), haveCohort)
	writeScoreLine(b, "Overall", s.Overall, cohortOf(func(c *entity.CohortAverages) float64 { return c.Overall }), haveCohort)
	if !haveCohort {
		b.WriteString("School averages are not available for comparison.\n")
	}
}

func (a *Assembler) writeAcademicDigest(b *strings.Builder, academic *benchmark.ProfileBenchmark) {
	b.WriteString("<academic_profile>\n")
	defer b.WriteString("</academic_profile>\n\n")

	if academic == nil || len(academic.Subjects) == 0 {
		b.WriteString(placeholderAcademic + "\n")
		return
	}
	if academic.PriorAttainment != nil {
		fmt.Fprintf(b, "Prior attainment (avg GCSE score): %.2f\n", *academic.PriorAttainment)
	} else {
		b.WriteString("Prior attainment score not available; MEGs could not be calculated.\n")
	}
	shown := academic.Subjects
	if len(shown) > subjectDigestLimit {
		shown = shown[:subjectDigestLimit]
	}
	for _, sub := range shown {
		fmt.Fprintf(b, "- %s (%s): current %s, target %s, MEG %s\n",
			sub.Subject, sub.Qualification, orNA(sub.CurrentGrade), orNA(sub.TargetGrade), sub.MEG.Grade)
	}
	if rest := len(academic.Subjects) - len(shown); rest > 0 {
		fmt.Fprintf(b, "(%d further subjects omitted)\n", rest)
	}
}

func (a *Assembler) writeReflections(b *strings.Builder, snap *entity.StudentSnapshot) {
	b.WriteString("<reflections_and_goals>\n")
	defer b.WriteString("</reflections_and_goals>\n\n")

	if snap == nil || (len(snap.Reflections) == 0 && len(snap.Goals) == 0) {
		b.WriteString(placeholderReflections + "\n")
		return
	}
	for _, label := range sortedReflectionKeys(snap.Reflections) {
		fmt.Fprintf(b, "- %s: %s\n", label, truncate(snap.Reflections[label], reflectionExcerptLimit))
	}
	for _, goal := range snap.Goals {
		fmt.Fprintf(b, "- Goal: %s\n", truncate(goal, reflectionExcerptLimit))
	}
}

func (a *Assembler) writeRetrieved(b *strings.Builder, in Input) {
	b.WriteString("<coaching_resources>\n")
	defer b.WriteString("</coaching_resources>\n\n")

	gated := retrieval.GateActivities(in.Retrieved, in.Phase, in.TopicTag)
	if len(gated) == 0 {
		b.WriteString(placeholderRetrieval + "\n")
		return
	}
	softOffer := in.Phase == retrieval.PhaseExploration
	for _, it := range gated {
		switch it.Kind {
		case knowledge.KindInsight:
			fmt.Fprintf(b, "- Insight: %s (%s)\n", it.Item.Name, truncate(it.Item.Description, 100))
		case knowledge.KindActivity:
			resource := ""
			if it.Item.HasResource() {
				resource = "; resource PDF available"
			}
			level := it.Item.Level
			if level == "" {
				level = "any level"
			}
			note := ""
			if softOffer {
				note = " [optional, only if it fits the immediate topic]"
			}
			fmt.Fprintf(b, "- Activity: %s (%s element, %s%s)%s %s\n",
				it.Item.Name, orNA(it.Item.Element), level, resource, note, truncate(it.Item.Description, 100))
		case knowledge.KindStatement:
			fmt.Fprintf(b, "- Reflective statement: %q\n", truncate(it.Item.Name, 150))
		case knowledge.KindQuestion:
			label := "Coaching question"
			if it.Item.Element != "" {
				label = fmt.Sprintf("Coaching question (%s, %s)", it.Item.Element, it.Item.ScoreBand)
			}
			fmt.Fprintf(b, "- %s: %s\n", label, it.Item.Name)
		}
	}
	if in.Phase == retrieval.PhaseRapport {
		b.WriteString("Note: activity suggestions are held back this early in the conversation.\n")
	}
}

// cutAt returns the largest prefix of s that fits in limit bytes without
// splitting a multi-byte rune.
func cutAt(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return cutAt(s, limit) + "..."
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func sortedReflectionKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Label order is part of the package contract; map order is not.
	sort.Strings(keys)
	return keys
}
