package benchmark

import (
	"sort"

	"student-coach-be/internal/entity"
)

// ============================================================================
// BENCHMARK BAND TABLES
// ============================================================================

// The historical band tables were exported at different times and spell
// their fields differently. All spellings are folded to canonical keys once,
// at load time; lookup code only ever sees the canonical shape.

var lowerBoundKeys = []string{"gcseMinScore", "gcseMin", "Avg GCSE score Min", "Prior Attainment Min"}
var upperBoundKeys = []string{"gcseMaxScore", "gcseMax", "Avg GCSE score Max", "Prior Attainment Max"}

// megKeyAliases lists every raw MEG column spelling with its canonical size
// key, camelCase spellings before export-header spellings. The slice order is
// the lookup order, so the same spelling wins on every load. The empty key is
// the single-variant default column.
var megKeyAliases = []struct {
	raw       string
	canonical string
}{
	{"megAspiration", ""},
	{"MEG Aspiration", ""},
	{"megGrade", ""},
	{"MEG", ""},

	{"hlMeg", "HL"},
	{"HL MEG Aspiration", "HL"},
	{"slMeg", "SL"},
	{"SL MEG Aspiration", "SL"},

	{"fullMeg", "FULL"},
	{"Principal Subject MEG", "FULL"},
	{"scMeg", "SC"},
	{"Short Course MEG", "SC"},

	{"extCertMeg", "EXTCERT"},
	{"Ext Cert MEG", "EXTCERT"},
	{"dipMeg", "DIP"},
	{"dipMEG", "DIP"},
	{"dipMegAsp", "DIP"},
	{"Diploma MEG", "DIP"},
	{"extDipMeg", "EXTDIP"},
	{"extDipMEG", "EXTDIP"},
	{"Ext Dip MEG", "EXTDIP"},
	{"certMeg", "CERT"},
	{"certMEG", "CERT"},
	{"Certificate MEG", "CERT"},
	{"foundDipMeg", "FOUNDDIP"},
	{"Found Dip MEG", "FOUNDDIP"},
	{"subDipMEG", "SUBDIP"},
	{"ninetyCrMEG", "NINETY_CR"},
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// ParseBandSet folds one raw band table into the canonical shape. Rows with
// a missing or non-numeric lower bound are dropped. The result is sorted by
// ascending lower bound so band selection is deterministic regardless of the
// export's row order.
func ParseBandSet(raw []map[string]interface{}) entity.BandSet {
	bands := make(entity.BandSet, 0, len(raw))
	for _, row := range raw {
		var band entity.Band
		lowerFound := false
		for _, key := range lowerBoundKeys {
			if v, ok := row[key]; ok {
				if f, ok := asFloat(v); ok {
					band.Lower = f
					lowerFound = true
				}
				break
			}
		}
		if !lowerFound {
			continue
		}
		for _, key := range upperBoundKeys {
			if v, ok := row[key]; ok {
				if f, ok := asFloat(v); ok {
					band.Upper = &f
				}
				break
			}
		}
		band.MEG = make(map[string]string)
		for _, alias := range megKeyAliases {
			if v, ok := row[alias.raw]; ok {
				if s, ok := v.(string); ok {
					// Keep the first spelling that yields a grade;
					// exports never carry two spellings of one column.
					if _, exists := band.MEG[alias.canonical]; !exists {
						band.MEG[alias.canonical] = s
					}
				}
			}
		}
		bands = append(bands, band)
	}
	sort.SliceStable(bands, func(i, j int) bool { return bands[i].Lower < bands[j].Lower })
	return bands
}

// Select returns the first band containing score, or nil when the score
// falls outside every band.
func Select(bands entity.BandSet, score float64) *entity.Band {
	for i := range bands {
		if bands[i].Contains(score) {
			return &bands[i]
		}
	}
	return nil
}

// TableSet holds every loaded benchmark table, keyed the way resolution
// selects them. ALevel carries one table per percentile (60, 75, 90, 100);
// the other families have a single table each.
type TableSet struct {
	ALevel   map[int]entity.BandSet
	BTEC2010 entity.BandSet
	BTEC2016 entity.BandSet
	CACHE    entity.BandSet
	IB       entity.BandSet
	PreU     entity.BandSet
	UAL      entity.BandSet
	WJEC     entity.BandSet
}

// StandardPercentile is the percentile used for the standard MEG. The 75th
// represents what the top quartile of students with similar prior attainment
// achieve.
const StandardPercentile = 75

// ForQualification picks the band table for a qualification at the given
// percentile. Percentiles other than the standard one only exist for
// A-Level; out-of-range percentiles fall back to the standard table. A nil
// return means no table covers the family.
func (ts TableSet) ForQualification(qual entity.QualificationType, details *entity.QualDetails, percentile int) entity.BandSet {
	switch {
	case qual == entity.QualALevel || qual == entity.QualASLevel:
		if t, ok := ts.ALevel[percentile]; ok {
			return t
		}
		return ts.ALevel[StandardPercentile]
	case qual == entity.QualIBHL || qual == entity.QualIBSL:
		return ts.IB
	case qual == entity.QualPreUPrincipal || qual == entity.QualPreUShortCourse:
		return ts.PreU
	case qual.IsBTEC():
		if details != nil && details.Year == "2010" {
			return ts.BTEC2010
		}
		return ts.BTEC2016
	case qual.IsWJEC():
		return ts.WJEC
	case qual.IsCACHE():
		return ts.CACHE
	case qual.IsUAL():
		return ts.UAL
	}
	return nil
}

// megKeyFor picks the canonical MEG column for a qualification variant.
func megKeyFor(qual entity.QualificationType, details *entity.QualDetails) string {
	switch {
	case qual == entity.QualIBHL:
		return "HL"
	case qual == entity.QualIBSL:
		return "SL"
	case qual == entity.QualPreUPrincipal:
		return "FULL"
	case qual == entity.QualPreUShortCourse:
		return "SC"
	case qual.IsBTEC():
		if details != nil {
			// An empty size means extraction already warned; the lookup
			// will miss and resolve to N/A.
			return details.Size
		}
		return ""
	case qual.IsWJEC():
		if details != nil && details.Size != "" {
			return details.Size
		}
		return "CERT"
	}
	// A Level, AS Level, UAL, CACHE and anything else read the default
	// column.
	return ""
}
