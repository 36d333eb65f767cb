package benchmark

import (
	"strings"

	"student-coach-be/internal/entity"
)

// ============================================================================
// QUALIFICATION NORMALIZATION
// ============================================================================

// qualificationRule pairs a predicate over the lowercased exam-type string
// with the qualification it resolves to. Rules run in order and the first
// match wins, so family fallbacks sit below their specific variants.
type qualificationRule struct {
	match  func(s string) bool
	result entity.QualificationType
	// warn is logged when the rule fires; set only on fallback rows that
	// indicate ambiguous input.
	warn string
}

func containsAny(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

func allOf(preds ...func(string) bool) func(string) bool {
	return func(s string) bool {
		for _, p := range preds {
			if !p(s) {
				return false
			}
		}
		return true
	}
}

func not(p func(string) bool) func(string) bool {
	return func(s string) bool { return !p(s) }
}

var qualificationRules = []qualificationRule{
	{match: containsAny("a level", "alevel"), result: entity.QualALevel},
	{match: containsAny("as level", "aslevel"), result: entity.QualASLevel},

	{match: allOf(containsAny("btec"), containsAny("extended diploma", "ext dip")), result: entity.QualBTECExtDip},
	{match: allOf(containsAny("btec"), containsAny("diploma"), not(containsAny("subsidiary", "found", "extended"))), result: entity.QualBTECDip},
	{match: allOf(containsAny("btec"), containsAny("subsidiary diploma", "sub dip")), result: entity.QualBTECSubDip},
	{match: containsAny("btec"), result: entity.QualBTECExtCert},

	{match: allOf(containsAny("wjec"), containsAny("diploma", "dip")), result: entity.QualWJECDip},
	{match: containsAny("wjec"), result: entity.QualWJECCert},

	{match: allOf(containsAny("cache"), containsAny("extended diploma", "ext dip")), result: entity.QualCACHEExtDip},
	{match: allOf(containsAny("cache"), containsAny("diploma")), result: entity.QualCACHEDip},
	{match: allOf(containsAny("cache"), containsAny("award")), result: entity.QualCACHEAward},
	{match: containsAny("cache"), result: entity.QualCACHECert},

	{match: allOf(containsAny("ual"), containsAny("extended diploma", "ext dip")), result: entity.QualUALExtDip},
	{match: containsAny("ual"), result: entity.QualUALDip},

	{match: allOf(containsAny("ib"), containsAny("hl", "higher")), result: entity.QualIBHL},
	{match: allOf(containsAny("ib"), containsAny("sl", "standard")), result: entity.QualIBSL},
	{match: containsAny("ib"), result: entity.QualIBHL, warn: "IB qualification did not specify HL/SL, defaulting to IB HL"},

	{match: allOf(containsAny("pre-u", "preu"), containsAny("short course", "sc")), result: entity.QualPreUShortCourse},
	{match: containsAny("pre-u", "preu"), result: entity.QualPreUPrincipal},
}

// Normalize resolves a raw exam-type string to a known qualification. It is
// total: empty or unrecognized input resolves to the default (A Level) with
// a data-quality warning.
func (r *Resolver) Normalize(raw string) entity.QualificationType {
	if strings.TrimSpace(raw) == "" {
		return entity.DefaultQualification
	}
	lower := strings.ToLower(raw)
	for _, rule := range qualificationRules {
		if rule.match(lower) {
			if rule.warn != "" {
				r.log.Warn("benchmark", rule.warn, map[string]interface{}{"exam_type": raw})
			}
			return rule.result
		}
	}
	r.log.Warn("benchmark", "could not normalize qualification type, defaulting to A Level", map[string]interface{}{"exam_type": raw})
	return entity.DefaultQualification
}
