package benchmark

import (
	"encoding/json"
	"os"
	"path/filepath"

	"student-coach-be/internal/entity"
	"student-coach-be/internal/pkg/logger"
)

// ============================================================================
// TABLE LOADING
// ============================================================================

// Loading is best-effort: a missing or malformed table file logs a warning
// and leaves that family's table nil, which resolution treats as N/A. The
// service stays up either way.

func loadRawBands(dir, name string, log logger.ILogger) entity.BandSet {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("benchmark", "benchmark table failed to load", map[string]interface{}{
			"file":  path,
			"error": err.Error(),
		})
		return nil
	}
	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn("benchmark", "benchmark table is not valid JSON", map[string]interface{}{
			"file":  path,
			"error": err.Error(),
		})
		return nil
	}
	bands := ParseBandSet(raw)
	log.Info("benchmark", "benchmark table loaded", map[string]interface{}{
		"file":  name,
		"bands": len(bands),
	})
	return bands
}

// LoadTables reads every benchmark band table from dir.
func LoadTables(dir string, log logger.ILogger) TableSet {
	return TableSet{
		ALevel: map[int]entity.BandSet{
			60:  loadRawBands(dir, "alpsBands_aLevel_60.json", log),
			75:  loadRawBands(dir, "alpsBands_aLevel_75.json", log),
			90:  loadRawBands(dir, "alpsBands_aLevel_90.json", log),
			100: loadRawBands(dir, "alpsBands_aLevel_100.json", log),
		},
		BTEC2010: loadRawBands(dir, "alpsBands_btec2010_main.json", log),
		BTEC2016: loadRawBands(dir, "alpsBands_btec2016_main.json", log),
		CACHE:    loadRawBands(dir, "alpsBands_cache.json", log),
		IB:       loadRawBands(dir, "alpsBands_ib.json", log),
		PreU:     loadRawBands(dir, "alpsBands_preU.json", log),
		UAL:      loadRawBands(dir, "alpsBands_ual.json", log),
		WJEC:     loadRawBands(dir, "alpsBands_wjec.json", log),
	}
}

// LoadGradePoints reads the qualification → grade → points mapping.
// A load failure is logged as an error because every point calculation
// depends on it; the A-Level fallback ladder still applies.
func LoadGradePoints(dir string, log logger.ILogger) GradePointsTable {
	path := filepath.Join(dir, "grade_to_points_mapping.json")
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("benchmark", "grade points mapping failed to load, point calculations will be degraded", map[string]interface{}{
			"file":  path,
			"error": err.Error(),
		})
		return GradePointsTable{}
	}
	var raw map[string]map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Error("benchmark", "grade points mapping is not valid JSON", map[string]interface{}{
			"file":  path,
			"error": err.Error(),
		})
		return GradePointsTable{}
	}
	table := make(GradePointsTable, len(raw))
	for qual, grades := range raw {
		table[entity.QualificationType(qual)] = grades
	}
	log.Info("benchmark", "grade points mapping loaded", map[string]interface{}{
		"qualifications": len(table),
	})
	return table
}
