package implementation

import (
	"context"
	"errors"

	"student-coach-be/internal/repository/contract"
)

// fakeRecordStore is an in-memory contract.RecordStore keyed by object and
// record id. List calls return canned pages per object.
type fakeRecordStore struct {
	records map[string]map[string]contract.Record // objectKey -> id -> record
	pages   map[string][]contract.Record          // objectKey -> list results
	// pagesByFilter overrides pages when the first filter's field matches.
	pagesByFilter map[string][]contract.Record // filter field -> list results

	created     []createdRecord
	updated     map[string]map[string]interface{} // recordID -> payload
	deleted     []string
	listErr     error
	lastFilters []contract.Filter
}

type createdRecord struct {
	objectKey string
	payload   map[string]interface{}
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		records:       map[string]map[string]contract.Record{},
		pages:         map[string][]contract.Record{},
		pagesByFilter: map[string][]contract.Record{},
		updated:       map[string]map[string]interface{}{},
	}
}

func (f *fakeRecordStore) put(objectKey, id string, record contract.Record) {
	if f.records[objectKey] == nil {
		f.records[objectKey] = map[string]contract.Record{}
	}
	record["id"] = id
	f.records[objectKey][id] = record
}

func (f *fakeRecordStore) GetRecord(_ context.Context, objectKey, recordID string) (contract.Record, error) {
	if record, ok := f.records[objectKey][recordID]; ok {
		return record, nil
	}
	return nil, errors.New("record not found")
}

func (f *fakeRecordStore) list(objectKey string, filters []contract.Filter) []contract.Record {
	f.lastFilters = filters
	if len(filters) > 0 {
		if records, ok := f.pagesByFilter[filters[0].Field]; ok {
			return records
		}
	}
	return f.pages[objectKey]
}

func (f *fakeRecordStore) GetRecords(_ context.Context, objectKey string, filters []contract.Filter, _, _ int) (*contract.RecordPage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	records := f.list(objectKey, filters)
	return &contract.RecordPage{CurrentPage: 1, TotalPages: 1, Records: records}, nil
}

func (f *fakeRecordStore) GetAllRecords(_ context.Context, objectKey string, filters []contract.Filter) ([]contract.Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list(objectKey, filters), nil
}

func (f *fakeRecordStore) CreateRecord(_ context.Context, objectKey string, payload map[string]interface{}) (contract.Record, error) {
	f.created = append(f.created, createdRecord{objectKey: objectKey, payload: payload})
	return contract.Record{"id": "created-1"}, nil
}

func (f *fakeRecordStore) UpdateRecord(_ context.Context, _, recordID string, payload map[string]interface{}) (contract.Record, error) {
	f.updated[recordID] = payload
	return contract.Record{"id": recordID}, nil
}

func (f *fakeRecordStore) DeleteRecord(_ context.Context, _, recordID string) error {
	f.deleted = append(f.deleted, recordID)
	return nil
}
