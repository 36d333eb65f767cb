package implementation

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"student-coach-be/internal/entity"
	"student-coach-be/internal/pkg/logger"
	"student-coach-be/internal/repository/contract"
	"student-coach-be/pkg/knowledge"
)

// Record-store object keys.
const (
	objStudentRecords   = "object_10"
	objAccounts         = "object_3"
	objAcademicProfiles = "object_112"
	objQuestionnaires   = "object_29"
)

// object_10 fields.
const (
	fieldStudentName  = "field_187"
	fieldStudentEmail = "field_197"
	fieldStudentLevel = "field_568"
	fieldCurrentCycle = "field_146"
	fieldSchoolConn   = "field_133"
	fieldVision       = "field_147"
	fieldEffort       = "field_148"
	fieldSystems      = "field_149"
	fieldPractice     = "field_150"
	fieldAttitude     = "field_151"
	fieldOverall      = "field_152"
	fieldReflection1  = "field_2302"
	fieldReflection2  = "field_2303"
	fieldReflection3  = "field_2304"
	fieldGoal1        = "field_2499"
	fieldGoal2        = "field_2493"
	fieldGoal3        = "field_2494"
	fieldCoachSummary = "field_3271"
	fieldStudentLink  = "field_132"
)

// object_3 / object_112 / object_29 fields.
const (
	fieldAccountEmail       = "field_70"
	fieldProfileUserID      = "field_3064"
	fieldProfileAccountConn = "field_3070"
	fieldProfileName        = "field_3066"
	fieldPriorAttainment    = "field_3272"
	fieldQuestStudentConn   = "field_792"
	fieldQuestCycle         = "field_863"
)

// Subject slots on the academic profile: field_3080 .. field_3094.
const (
	firstSubjectField = 3080
	subjectSlots      = 15
)

type StudentRepositoryImpl struct {
	store     contract.RecordStore
	questions []knowledge.QuestionDetail
	log       logger.ILogger
}

func NewStudentRepository(store contract.RecordStore, questions []knowledge.QuestionDetail, log logger.ILogger) contract.StudentRepository {
	return &StudentRepositoryImpl{
		store:     store,
		questions: questions,
		log:       log,
	}
}

func (r *StudentRepositoryImpl) GetSnapshot(ctx context.Context, studentID string) (*entity.StudentSnapshot, error) {
	record, err := r.store.GetRecord(ctx, objStudentRecords, studentID)
	if err != nil {
		return nil, fmt.Errorf("fetch student record: %w", err)
	}

	snapshot := &entity.StudentSnapshot{
		StudentID: studentID,
		Name:      rawFull(record, fieldStudentName),
		Email:     rawEmail(record, fieldStudentEmail),
		Level:     rawString(record, fieldStudentLevel),
		Cycle:     rawInt(record, fieldCurrentCycle),
		SchoolID:  connectionID(record, fieldSchoolConn),
		Scores: &entity.VESPAScores{
			Vision:   recordFloat(record, fieldVision),
			Effort:   recordFloat(record, fieldEffort),
			Systems:  recordFloat(record, fieldSystems),
			Practice: recordFloat(record, fieldPractice),
			Attitude: recordFloat(record, fieldAttitude),
			Overall:  recordFloat(record, fieldOverall),
		},
	}

	reflections := map[string]string{}
	for key, field := range map[string]string{
		"rrc1_comment": fieldReflection1,
		"rrc2_comment": fieldReflection2,
		"rrc3_comment": fieldReflection3,
	} {
		if v := recordString(record, field); v != "" {
			reflections[key] = v
		}
	}
	if len(reflections) > 0 {
		snapshot.Reflections = reflections
	}

	for _, field := range []string{fieldGoal1, fieldGoal2, fieldGoal3} {
		if v := recordString(record, field); v != "" {
			snapshot.Goals = append(snapshot.Goals, v)
		}
	}

	return snapshot, nil
}

func (r *StudentRepositoryImpl) GetAcademicProfile(ctx context.Context, email, studentName string) (*entity.AcademicProfile, error) {
	accountID := r.resolveAccountID(ctx, email)

	// The profile link has drifted across data migrations, so three
	// lookups are tried in order: user-id text field, account connection,
	// exact name.
	var attempts [][]contract.Filter
	if accountID != "" {
		attempts = append(attempts,
			[]contract.Filter{{Field: fieldProfileUserID, Operator: "is", Value: accountID}},
			[]contract.Filter{{Field: fieldProfileAccountConn, Operator: "is", Value: accountID}},
		)
	}
	if studentName != "" && studentName != "N/A" {
		attempts = append(attempts,
			[]contract.Filter{{Field: fieldProfileName, Operator: "is", Value: studentName}},
		)
	}

	for _, filters := range attempts {
		page, err := r.store.GetRecords(ctx, objAcademicProfiles, filters, 1, 10)
		if err != nil {
			r.log.Warn("student_repository", "Academic profile lookup failed", map[string]interface{}{
				"filters": filters,
				"error":   err.Error(),
			})
			continue
		}
		if len(page.Records) == 0 {
			continue
		}
		record := page.Records[0]
		subjects := parseSubjects(record)
		if len(subjects) == 0 {
			// A matching record without subject rows is treated as a
			// miss so the next lookup can run.
			continue
		}
		return &entity.AcademicProfile{
			GCSEScore: recordFloat(record, fieldPriorAttainment),
			Subjects:  subjects,
		}, nil
	}

	r.log.Warn("student_repository", "No academic profile found", map[string]interface{}{
		"email": email,
		"name":  studentName,
	})
	return &entity.AcademicProfile{}, nil
}

func (r *StudentRepositoryImpl) resolveAccountID(ctx context.Context, email string) string {
	if email == "" {
		return ""
	}
	filters := []contract.Filter{{Field: fieldAccountEmail, Operator: "is", Value: email}}
	page, err := r.store.GetRecords(ctx, objAccounts, filters, 1, 1)
	if err != nil {
		r.log.Warn("student_repository", "Account lookup failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return ""
	}
	if len(page.Records) == 0 {
		return ""
	}
	return recordString(page.Records[0], "id")
}

func (r *StudentRepositoryImpl) GetQuestionnaire(ctx context.Context, studentID string, cycle int) ([]entity.ScoredStatement, error) {
	if cycle <= 0 || len(r.questions) == 0 {
		return nil, nil
	}

	filters := []contract.Filter{
		{Field: fieldQuestStudentConn, Operator: "is", Value: studentID},
		{Field: fieldQuestCycle + "_raw", Operator: "is", Value: strconv.Itoa(cycle)},
	}
	page, err := r.store.GetRecords(ctx, objQuestionnaires, filters, 1, 1)
	if err != nil {
		return nil, fmt.Errorf("fetch questionnaire: %w", err)
	}
	if len(page.Records) == 0 {
		return nil, nil
	}
	record := page.Records[0]

	var statements []entity.ScoredStatement
	for _, q := range r.questions {
		if q.FieldID == "" {
			continue
		}
		score, ok := recordInt(record, q.FieldID)
		if !ok {
			continue
		}
		statements = append(statements, entity.ScoredStatement{
			Text:     q.Text,
			Category: q.Category,
			Score:    score,
		})
	}
	return statements, nil
}

func (r *StudentRepositoryImpl) SaveCoachingSummary(ctx context.Context, studentID, summary string) error {
	payload := map[string]interface{}{fieldCoachSummary: summary}
	if _, err := r.store.UpdateRecord(ctx, objStudentRecords, studentID, payload); err != nil {
		return fmt.Errorf("save coaching summary: %w", err)
	}
	return nil
}

func (r *StudentRepositoryImpl) GetCoachingSummary(ctx context.Context, studentID string) (string, error) {
	record, err := r.store.GetRecord(ctx, objStudentRecords, studentID)
	if err != nil {
		return "", fmt.Errorf("fetch student record: %w", err)
	}
	return recordString(record, fieldCoachSummary), nil
}

// parseSubjects decodes the numbered subject slots, each holding one JSON
// blob with several historical key spellings per attribute.
func parseSubjects(record contract.Record) []entity.SubjectRecord {
	var subjects []entity.SubjectRecord
	for i := 0; i < subjectSlots; i++ {
		field := fmt.Sprintf("field_%d", firstSubjectField+i)
		blob := recordString(record, field)
		if blob == "" || !strings.HasPrefix(strings.TrimSpace(blob), "{") {
			continue
		}
		var raw map[string]interface{}
		if err := json.Unmarshal([]byte(blob), &raw); err != nil {
			continue
		}
		subject := entity.SubjectRecord{
			Subject:     firstString(raw, "subject", "subject_name", "subjectName", "name"),
			Grade:       firstString(raw, "currentGrade", "current_grade", "cg", "currentgrade"),
			TargetGrade: firstString(raw, "targetGrade", "target_grade", "tg", "targetgrade"),
			EffortGrade: firstString(raw, "effortGrade", "effort_grade", "eg", "effortgrade"),
			ExamType:    firstString(raw, "examType", "exam_type", "qualificationType"),
		}
		if subject.Subject == "" {
			continue
		}
		subjects = append(subjects, subject)
	}
	return subjects
}

// --- Record value helpers ---

func recordString(record contract.Record, key string) string {
	v, ok := record[key]
	if !ok || v == nil {
		v = record[key+"_raw"]
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

// rawString prefers the _raw variant, which Knack keeps unformatted.
func rawString(record contract.Record, key string) string {
	if s, ok := record[key+"_raw"].(string); ok {
		return strings.TrimSpace(s)
	}
	return recordString(record, key)
}

func rawInt(record contract.Record, key string) int {
	s := rawString(record, key)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return 0
}

func recordFloat(record contract.Record, key string) *float64 {
	v, ok := record[key]
	if !ok || v == nil {
		v = record[key+"_raw"]
	}
	switch t := v.(type) {
	case float64:
		f := t
		return &f
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return &f
		}
	}
	return nil
}

func recordInt(record contract.Record, key string) (int, bool) {
	v, ok := record[key]
	if !ok || v == nil {
		raw := record[key+"_raw"]
		if m, isMap := raw.(map[string]interface{}); isMap {
			v = m["value"]
		} else {
			v = raw
		}
	}
	switch t := v.(type) {
	case float64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// rawFull reads a name field's {"full": ...} raw form.
func rawFull(record contract.Record, key string) string {
	if m, ok := record[key+"_raw"].(map[string]interface{}); ok {
		if full, ok := m["full"].(string); ok {
			return strings.TrimSpace(full)
		}
	}
	return recordString(record, key)
}

// rawEmail reads an email field's {"email": ...} raw form.
func rawEmail(record contract.Record, key string) string {
	if m, ok := record[key+"_raw"].(map[string]interface{}); ok {
		if email, ok := m["email"].(string); ok {
			return strings.TrimSpace(email)
		}
	}
	return recordString(record, key)
}

// connectionID extracts the first linked record id from a connection field,
// accepting both the raw list form and a bare string id.
func connectionID(record contract.Record, key string) string {
	for _, variant := range []string{key + "_raw", key} {
		switch t := record[variant].(type) {
		case []interface{}:
			if len(t) > 0 {
				if m, ok := t[0].(map[string]interface{}); ok {
					if id, ok := m["id"].(string); ok {
						return id
					}
				}
			}
		case string:
			if t != "" {
				return t
			}
		}
	}
	return ""
}

func firstString(raw map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok && strings.TrimSpace(s) != "" && s != "N/A" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
