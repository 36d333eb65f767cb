package benchmark

import (
	"strings"

	"student-coach-be/internal/entity"
)

// ============================================================================
// QUALIFICATION DETAIL EXTRACTION
// ============================================================================

// ExtractDetails derives the table-discriminating attributes (BTEC year and
// size, IB level, Pre-U course type, WJEC size) from the raw exam-type string
// and its normalized qualification. Families with a single benchmark table
// return nil.
func (r *Resolver) ExtractDetails(raw string, qual entity.QualificationType) *entity.QualDetails {
	if raw == "" || qual == "" {
		return nil
	}
	lower := strings.ToLower(raw)

	switch {
	case qual == entity.QualIBHL:
		return &entity.QualDetails{IBLevel: "HL"}
	case qual == entity.QualIBSL:
		return &entity.QualDetails{IBLevel: "SL"}

	case qual.IsBTEC():
		d := &entity.QualDetails{}
		switch {
		case strings.Contains(lower, "2010"):
			d.Year = "2010"
		case strings.Contains(lower, "2016"):
			d.Year = "2016"
		default:
			d.Year = "2016"
			r.log.Info("benchmark", "BTEC year not specified, defaulting to 2016 for MEG lookup", map[string]interface{}{"exam_type": raw})
		}
		switch qual {
		case entity.QualBTECExtDip:
			d.Size = "EXTDIP"
		case entity.QualBTECDip:
			d.Size = "DIP"
		case entity.QualBTECSubDip:
			d.Size = "SUBDIP"
		case entity.QualBTECExtCert:
			// The 2010 suite called this size a Certificate; the 2016
			// suite renamed it Extended Certificate. The table column
			// follows the suite's own name.
			if d.Year == "2010" {
				d.Size = "CERT"
			} else {
				d.Size = "EXTCERT"
			}
		}
		if d.Size == "" {
			switch {
			case strings.Contains(lower, "foundation diploma"):
				d.Size = "FOUNDDIP"
			case strings.Contains(lower, "90 credit diploma"), strings.Contains(lower, "90cr"):
				d.Size = "NINETY_CR"
			}
		}
		if d.Size == "" {
			r.log.Warn("benchmark", "could not determine BTEC size, MEG lookup may fail", map[string]interface{}{
				"exam_type":  raw,
				"normalized": string(qual),
			})
		}
		return d

	case qual == entity.QualPreUPrincipal:
		return &entity.QualDetails{PreUType: "FULL"}
	case qual == entity.QualPreUShortCourse:
		return &entity.QualDetails{PreUType: "SC"}

	case qual.IsWJEC():
		if qual == entity.QualWJECDip {
			return &entity.QualDetails{Size: "DIP"}
		}
		return &entity.QualDetails{Size: "CERT"}
	}
	return nil
}
