package entity

// Band is one prior-attainment band loaded from a benchmark table. Bounds
// follow a half-open interval: a score belongs to the band when it is >=
// Lower and, when Upper is set, strictly below Upper. The top band leaves
// Upper nil.
type Band struct {
	// Lower is the inclusive minimum average GCSE score for the band.
	Lower float64
	// Upper is the exclusive maximum; nil means unbounded above.
	Upper *float64
	// MEG maps a canonical size key to the minimum expected grade for
	// that variant. Families with a single variant use the empty key.
	MEG map[string]string
}

// Contains reports whether score falls inside the band.
func (b Band) Contains(score float64) bool {
	if score < b.Lower {
		return false
	}
	return b.Upper == nil || score < *b.Upper
}

// BandSet is an ordered list of bands for one benchmark table, sorted by
// ascending Lower at load time.
type BandSet []Band

// MEGResult is the outcome of a minimum-expected-grade resolution. Resolution
// never fails outright: when no table or band matches, Grade is "N/A" and
// Points is 0.
type MEGResult struct {
	Grade  string `json:"meg"`
	Points int    `json:"meg_points"`
}

// NotAvailable is the degenerate MEG returned when resolution cannot
// produce a grade.
func NotAvailable() MEGResult {
	return MEGResult{Grade: "N/A", Points: 0}
}

// SubjectRecord is one subject row from a student's academic profile, as it
// arrives from the record store.
type SubjectRecord struct {
	Subject     string `json:"subject"`
	ExamType    string `json:"examType"`
	Grade       string `json:"currentGrade"`
	TargetGrade string `json:"targetGrade"`
	EffortGrade string `json:"effortGrade"`
}

// AcademicProfile is the per-student academic snapshot used by benchmark
// resolution and context assembly.
type AcademicProfile struct {
	StudentID string          `json:"student_id"`
	GCSEScore *float64        `json:"gcse_prior_attainment,omitempty"`
	Subjects  []SubjectRecord `json:"subjects"`
}
