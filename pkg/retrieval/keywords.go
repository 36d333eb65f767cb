package retrieval

import "strings"

// ============================================================================
// QUERY TEXT ANALYSIS
// ============================================================================

// stopWords are conversational filler dropped before matching. Tutor
// messages are chatty ("can you give me some ideas about...") so the list
// leans heavily on politeness and hedging vocabulary.
var stopWords = map[string]bool{
	"is": true, "a": true, "the": true, "and": true, "to": true, "of": true,
	"it": true, "in": true, "for": true, "on": true, "with": true, "as": true,
	"an": true, "at": true, "by": true, "what": true, "how": true, "tell": true,
	"me": true, "about": true, "can": true, "you": true, "help": true,
	"student": true, "students": true, "i": true, "am": true, "my": true,
	"need": true, "her": true, "his": true, "him": true, "she": true,
	"he": true, "they": true, "them": true, "their": true, "concern": true,
	"concerned": true, "issue": true, "problem": true, "regard": true,
	"regarding": true, "this": true, "that": true, "these": true,
	"those": true, "think": true, "thinking": true, "feel": true,
	"feels": true, "feeling": true, "suggest": true, "suggestion": true,
	"suggestions": true, "advice": true, "idea": true, "ideas": true,
	"get": true, "give": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "some": true, "any": true,
	"lot": true, "little": true, "bit": true, "very": true, "really": true,
	"quite": true, "much": true, "more": true, "less": true, "also": true,
	"too": true, "well": true, "good": true, "bad": true, "okay": true,
	"would": true, "should": true, "could": true, "may": true, "might": true,
	"must": true, "will": true, "shall": true, "from": true, "make": true,
	"making": true, "example": true, "examples": true, "way": true,
	"ways": true, "try": true, "trying": true, "want": true, "wants": true,
	"talk": true, "talking": true,
}

var punctuationReplacer = strings.NewReplacer(
	"?", "", ".", "", ",", "", "'s", "", `"`, "", "'", "",
)

// ExtractKeywords lowercases the text, strips punctuation, and returns the
// remaining tokens longer than two characters that are not stop words.
func ExtractKeywords(text string) []string {
	cleaned := punctuationReplacer.Replace(strings.ToLower(text))
	var keywords []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) > 2 && !stopWords[word] {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

// vespaElements in canonical order.
var vespaElements = []string{"VISION", "EFFORT", "SYSTEMS", "PRACTICE", "ATTITUDE"}

// DetectElement finds a VESPA element tag in the message. The front end
// appends markers like "(vision related)" when the tutor picks a problem
// from the element list; the bare phrase is accepted too. Returns "" when
// no element is tagged.
func DetectElement(text string) string {
	lower := strings.ToLower(text)
	for _, element := range vespaElements {
		marker := strings.ToLower(element) + " related"
		if strings.Contains(lower, "("+marker+")") || strings.Contains(lower, marker) {
			return element
		}
	}
	return ""
}

// themeWords groups recurring coaching themes with the vocabulary that
// signals them. A theme contributes to an item's score when the query and
// the item corpus both touch it.
var themeWords = map[string][]string{
	"active-learning": {"practice", "testing", "quiz", "flashcards", "revision", "recall"},
	"organization":    {"organised", "organized", "planner", "schedule", "routine", "deadlines", "systems"},
	"mindset":         {"mindset", "resilience", "confidence", "setback", "attitude", "stress"},
	"goal-setting":    {"goal", "goals", "vision", "purpose", "ambition", "future"},
}

// themeNames is the deterministic iteration order for themeWords.
var themeNames = []string{"active-learning", "organization", "mindset", "goal-setting"}

func themeTouches(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// matchingThemes returns the themes whose vocabulary appears in the text.
func matchingThemes(text string) []string {
	lower := strings.ToLower(text)
	var themes []string
	for _, name := range themeNames {
		if themeTouches(lower, themeWords[name]) {
			themes = append(themes, name)
		}
	}
	return themes
}
