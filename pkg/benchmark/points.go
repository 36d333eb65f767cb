package benchmark

import (
	"strings"

	"student-coach-be/internal/entity"
)

// ============================================================================
// GRADE POINT RESOLUTION
// ============================================================================

// GradePointsTable maps a qualification to its grade-label → points table.
type GradePointsTable map[entity.QualificationType]map[string]int

// gradeAliases resolves vocational grade spellings to the short labels the
// tables use.
var gradeAliases = map[string]string{
	"Dist*": "D*",
	"Dist":  "D",
	"Merit": "M",
	"Pass":  "P",
}

// aLevelFallbackPoints is the standard A-Level points ladder, used only when
// the loaded table has no A-Level entry at all.
var aLevelFallbackPoints = map[string]int{
	"A*": 56,
	"A":  48,
	"B":  40,
	"C":  32,
	"D":  24,
	"E":  16,
	"U":  0,
}

// Points converts a grade label to its point value for the given
// qualification. It is pure and total: empty, "N/A", or unknown grades and
// unknown qualifications resolve to 0.
func (t GradePointsTable) Points(qual entity.QualificationType, grade string) int {
	grade = strings.TrimSpace(grade)
	if grade == "" || grade == "N/A" {
		return 0
	}
	qualMap, ok := t[qual]
	if !ok && qual == entity.QualALevel {
		qualMap = aLevelFallbackPoints
	}
	if qualMap == nil {
		return 0
	}
	if pts, ok := qualMap[grade]; ok {
		return pts
	}
	if alias, ok := gradeAliases[grade]; ok {
		if pts, ok := qualMap[alias]; ok {
			return pts
		}
	}
	return 0
}
