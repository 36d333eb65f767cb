package entity

// QualificationType is the closed set of qualification families and variants
// the benchmark engine understands. Raw exam-type strings are always resolved
// to one of these values, never carried around verbatim.
type QualificationType string

const (
	QualALevel          QualificationType = "A Level"
	QualASLevel         QualificationType = "AS Level"
	QualIBHL            QualificationType = "IB HL"
	QualIBSL            QualificationType = "IB SL"
	QualBTECExtDip      QualificationType = "BTEC Level 3 Extended Diploma"
	QualBTECDip         QualificationType = "BTEC Level 3 Diploma"
	QualBTECSubDip      QualificationType = "BTEC Level 3 Subsidiary Diploma"
	QualBTECExtCert     QualificationType = "BTEC Level 3 Extended Certificate"
	QualPreUPrincipal   QualificationType = "Pre-U Principal Subject"
	QualPreUShortCourse QualificationType = "Pre-U Short Course"
	QualWJECDip         QualificationType = "WJEC Level 3 Diploma"
	QualWJECCert        QualificationType = "WJEC Level 3 Certificate"
	QualUALDip          QualificationType = "UAL Level 3 Diploma"
	QualUALExtDip       QualificationType = "UAL Level 3 Extended Diploma"
	QualCACHEAward      QualificationType = "CACHE Level 3 Award"
	QualCACHECert       QualificationType = "CACHE Level 3 Certificate"
	QualCACHEDip        QualificationType = "CACHE Level 3 Diploma"
	QualCACHEExtDip     QualificationType = "CACHE Level 3 Extended Diploma"
	QualUnknown         QualificationType = "Unknown"
)

// DefaultQualification is what unrecognized or empty exam types resolve to.
// Callers that need to detect unmapped input must compare against this value.
const DefaultQualification = QualALevel

// IsBTEC reports whether the qualification belongs to the BTEC family.
func (q QualificationType) IsBTEC() bool {
	switch q {
	case QualBTECExtDip, QualBTECDip, QualBTECSubDip, QualBTECExtCert:
		return true
	}
	return false
}

// IsWJEC reports whether the qualification belongs to the WJEC family.
func (q QualificationType) IsWJEC() bool {
	return q == QualWJECDip || q == QualWJECCert
}

// IsCACHE reports whether the qualification belongs to the CACHE family.
func (q QualificationType) IsCACHE() bool {
	switch q {
	case QualCACHEAward, QualCACHECert, QualCACHEDip, QualCACHEExtDip:
		return true
	}
	return false
}

// IsUAL reports whether the qualification belongs to the UAL family.
func (q QualificationType) IsUAL() bool {
	return q == QualUALDip || q == QualUALExtDip
}

// QualDetails carries the attributes that discriminate between benchmark
// table variants inside one qualification family. It is nil for families
// with a single table (A Level, AS Level, UAL, CACHE).
type QualDetails struct {
	// Year is the BTEC specification year, "2010" or "2016".
	Year string `json:"year,omitempty"`
	// Size is the BTEC or WJEC size key used to pick the MEG column
	// (e.g. "EXTDIP", "DIP", "SUBDIP", "CERT", "EXTCERT").
	Size string `json:"size,omitempty"`
	// IBLevel is "HL" or "SL".
	IBLevel string `json:"ib_level,omitempty"`
	// PreUType is "FULL" for Principal Subject, "SC" for Short Course.
	PreUType string `json:"pre_u_type,omitempty"`
}
