package knowledge

import (
	"student-coach-be/internal/pkg/logger"
)

// QuestionDetail maps one questionnaire statement to the record-store field
// that holds its current-cycle score.
type QuestionDetail struct {
	FieldID  string `json:"currentCycleFieldId"`
	Text     string `json:"questionText"`
	Category string `json:"vespaCategory"`
}

// LoadQuestionMap reads the psychometric question mapping. Best-effort like
// the other sources: a failed load returns nil and questionnaire highlights
// degrade to placeholders.
func LoadQuestionMap(dir string, log logger.ILogger) []QuestionDetail {
	var details []QuestionDetail
	if !readJSON(dir, "psychometric_question_details.json", &details, log) {
		return nil
	}
	log.Info("knowledge", "psychometric question map loaded", map[string]interface{}{"count": len(details)})
	return details
}
