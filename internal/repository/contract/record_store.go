package contract

import (
	"context"
)

// Filter is one record-store query condition, serialized into the
// `filters` query parameter as a JSON array.
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"` // "is", "contains", ...
	Value    string `json:"value"`
}

// Record is one raw record as returned by the store. Field keys are the
// store's own field identifiers (e.g. "field_147").
type Record map[string]interface{}

// RecordPage is one page of a filtered record listing.
type RecordPage struct {
	CurrentPage int
	TotalPages  int
	Records     []Record
}

// RecordStore is the low-level client for the hosted record store that keeps
// student, questionnaire and chat data.
type RecordStore interface {
	GetRecord(ctx context.Context, objectKey, recordID string) (Record, error)
	GetRecords(ctx context.Context, objectKey string, filters []Filter, page, rowsPerPage int) (*RecordPage, error)
	// GetAllRecords pages through every matching record, bounded by the
	// implementation's page limit.
	GetAllRecords(ctx context.Context, objectKey string, filters []Filter) ([]Record, error)
	CreateRecord(ctx context.Context, objectKey string, payload map[string]interface{}) (Record, error)
	UpdateRecord(ctx context.Context, objectKey, recordID string, payload map[string]interface{}) (Record, error)
	DeleteRecord(ctx context.Context, objectKey, recordID string) error
}
