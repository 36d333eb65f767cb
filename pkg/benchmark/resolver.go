package benchmark

import (
	"student-coach-be/internal/entity"
	"student-coach-be/internal/pkg/logger"
)

// ============================================================================
// MEG RESOLUTION
// ============================================================================

// Resolver turns raw academic inputs (exam-type strings, grades, prior
// attainment scores) into benchmark outputs. Every method is total: bad
// input degrades to a documented default instead of an error.
type Resolver struct {
	log    logger.ILogger
	points GradePointsTable
	tables TableSet
}

func NewResolver(points GradePointsTable, tables TableSet, log logger.ILogger) *Resolver {
	return &Resolver{
		log:    log,
		points: points,
		tables: tables,
	}
}

// Points exposes grade-point lookup through the resolver.
func (r *Resolver) Points(qual entity.QualificationType, grade string) int {
	return r.points.Points(qual, grade)
}

// ResolveMEG locates the prior-attainment score in the benchmark table for
// the qualification and returns the minimum expected grade with its points.
// A nil score, a missing table, or a score outside every band all resolve
// to ("N/A", 0).
func (r *Resolver) ResolveMEG(score *float64, qual entity.QualificationType, details *entity.QualDetails, percentile int) entity.MEGResult {
	if score == nil {
		return entity.NotAvailable()
	}
	table := r.tables.ForQualification(qual, details, percentile)
	if table == nil {
		r.log.Debug("benchmark", "no benchmark table for qualification", map[string]interface{}{
			"qualification": string(qual),
		})
		return entity.NotAvailable()
	}
	band := Select(table, *score)
	if band == nil {
		r.log.Debug("benchmark", "prior attainment score outside every band", map[string]interface{}{
			"qualification": string(qual),
			"score":         *score,
		})
		return entity.NotAvailable()
	}
	grade, ok := band.MEG[megKeyFor(qual, details)]
	if !ok || grade == "" || grade == "N/A" {
		return entity.NotAvailable()
	}
	return entity.MEGResult{
		Grade:  grade,
		Points: r.points.Points(qual, grade),
	}
}

// ResolveSubject runs the full resolution pipeline for one subject row:
// normalization, detail extraction, grade points, and the standard MEG.
// A-Level subjects additionally carry the MEG at every loaded percentile.
func (r *Resolver) ResolveSubject(rec entity.SubjectRecord, priorAttainment *float64) SubjectBenchmark {
	qual := r.Normalize(rec.ExamType)
	details := r.ExtractDetails(rec.ExamType, qual)
	meg := r.ResolveMEG(priorAttainment, qual, details, StandardPercentile)
	sb := SubjectBenchmark{
		Subject:            rec.Subject,
		ExamType:           rec.ExamType,
		Qualification:      qual,
		Details:            details,
		CurrentGrade:       rec.Grade,
		CurrentGradePoints: r.points.Points(qual, rec.Grade),
		TargetGrade:        rec.TargetGrade,
		TargetGradePoints:  r.points.Points(qual, rec.TargetGrade),
		EffortGrade:        rec.EffortGrade,
		MEG:                meg,
	}
	if qual == entity.QualALevel {
		sb.MEGByPercentile = r.ALevelMEGByPercentile(priorAttainment)
	}
	return sb
}

// ResolveProfile resolves every subject of an academic profile plus the
// overall A-Level MEG ladder for the prior attainment score.
func (r *Resolver) ResolveProfile(profile entity.AcademicProfile) ProfileBenchmark {
	out := ProfileBenchmark{
		PriorAttainment: profile.GCSEScore,
		Subjects:        make([]SubjectBenchmark, 0, len(profile.Subjects)),
		MEGByPercentile: r.ALevelMEGByPercentile(profile.GCSEScore),
	}
	for _, rec := range profile.Subjects {
		out.Subjects = append(out.Subjects, r.ResolveSubject(rec, profile.GCSEScore))
	}
	return out
}

// ALevelMEGByPercentile resolves the A-Level MEG at each loaded percentile
// table. Only A-Level carries multiple percentile tables.
func (r *Resolver) ALevelMEGByPercentile(score *float64) map[int]entity.MEGResult {
	out := make(map[int]entity.MEGResult, len(r.tables.ALevel))
	for pct := range r.tables.ALevel {
		out[pct] = r.ResolveMEG(score, entity.QualALevel, nil, pct)
	}
	return out
}

// SubjectBenchmark is the fully resolved benchmark view of one subject.
type SubjectBenchmark struct {
	Subject            string                   `json:"subject"`
	ExamType           string                   `json:"examType"`
	Qualification      entity.QualificationType `json:"normalized_qualification_type"`
	Details            *entity.QualDetails      `json:"qual_details,omitempty"`
	CurrentGrade       string                   `json:"currentGrade"`
	CurrentGradePoints int                      `json:"currentGradePoints"`
	TargetGrade        string                   `json:"targetGrade"`
	TargetGradePoints  int                      `json:"targetGradePoints"`
	EffortGrade        string                   `json:"effortGrade,omitempty"`
	MEG                entity.MEGResult         `json:"standard_meg"`
	MEGByPercentile    map[int]entity.MEGResult `json:"meg_by_percentile,omitempty"`
}

// ProfileBenchmark is the resolved view of a whole academic profile.
type ProfileBenchmark struct {
	PriorAttainment *float64                 `json:"prior_attainment_score"`
	Subjects        []SubjectBenchmark       `json:"subjects"`
	MEGByPercentile map[int]entity.MEGResult `json:"overall_meg_by_percentile"`
}
