package implementation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"student-coach-be/internal/config"
	"student-coach-be/internal/pkg/logger"
	"student-coach-be/internal/repository/contract"
)

const (
	defaultRowsPerPage = 1000
	// Paginated fetches stop after this many pages to bound runaway logs.
	maxListPages = 20
)

// KnackStore talks to the Knack REST API.
type KnackStore struct {
	baseURL string
	appID   string
	apiKey  string
	client  *http.Client
	log     logger.ILogger
}

var _ contract.RecordStore = &KnackStore{}

func NewKnackStore(cfg config.KnackConfig, log logger.ILogger) *KnackStore {
	return &KnackStore{
		baseURL: cfg.BaseURL,
		appID:   cfg.AppID,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

func (s *KnackStore) GetRecord(ctx context.Context, objectKey, recordID string) (contract.Record, error) {
	endpoint := fmt.Sprintf("%s/objects/%s/records/%s", s.baseURL, objectKey, recordID)
	body, err := s.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	var record contract.Record
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return record, nil
}

func (s *KnackStore) GetRecords(ctx context.Context, objectKey string, filters []contract.Filter, page, rowsPerPage int) (*contract.RecordPage, error) {
	if page < 1 {
		page = 1
	}
	if rowsPerPage < 1 || rowsPerPage > defaultRowsPerPage {
		rowsPerPage = defaultRowsPerPage
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("rows_per_page", strconv.Itoa(rowsPerPage))
	if len(filters) > 0 {
		encoded, err := json.Marshal(filters)
		if err != nil {
			return nil, fmt.Errorf("encode filters: %w", err)
		}
		params.Set("filters", string(encoded))
	}

	endpoint := fmt.Sprintf("%s/objects/%s/records?%s", s.baseURL, objectKey, params.Encode())
	body, err := s.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var raw struct {
		CurrentPage json.Number       `json:"current_page"`
		TotalPages  json.Number       `json:"total_pages"`
		Records     []contract.Record `json:"records"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal record page: %w", err)
	}

	result := &contract.RecordPage{
		CurrentPage: numberToInt(raw.CurrentPage, page),
		TotalPages:  numberToInt(raw.TotalPages, 1),
		Records:     raw.Records,
	}
	return result, nil
}

func (s *KnackStore) GetAllRecords(ctx context.Context, objectKey string, filters []contract.Filter) ([]contract.Record, error) {
	var all []contract.Record
	totalPages := 1

	for page := 1; page <= totalPages && page <= maxListPages; page++ {
		recordPage, err := s.GetRecords(ctx, objectKey, filters, page, defaultRowsPerPage)
		if err != nil {
			// Partial results are still useful to callers that aggregate.
			if len(all) > 0 {
				s.log.Warn("knack_store", "Paginated fetch stopped early", map[string]interface{}{
					"object_key": objectKey,
					"page":       page,
					"error":      err.Error(),
					"fetched":    len(all),
				})
				return all, nil
			}
			return nil, err
		}
		all = append(all, recordPage.Records...)
		if recordPage.TotalPages > 0 {
			totalPages = recordPage.TotalPages
		}
		if len(recordPage.Records) == 0 {
			break
		}
	}

	s.log.Debug("knack_store", "Completed paginated fetch", map[string]interface{}{
		"object_key": objectKey,
		"records":    len(all),
	})
	return all, nil
}

func (s *KnackStore) CreateRecord(ctx context.Context, objectKey string, payload map[string]interface{}) (contract.Record, error) {
	endpoint := fmt.Sprintf("%s/objects/%s/records", s.baseURL, objectKey)
	body, err := s.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return nil, err
	}
	var record contract.Record
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("unmarshal created record: %w", err)
	}
	return record, nil
}

func (s *KnackStore) UpdateRecord(ctx context.Context, objectKey, recordID string, payload map[string]interface{}) (contract.Record, error) {
	endpoint := fmt.Sprintf("%s/objects/%s/records/%s", s.baseURL, objectKey, recordID)
	body, err := s.do(ctx, http.MethodPut, endpoint, payload)
	if err != nil {
		return nil, err
	}
	var record contract.Record
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("unmarshal updated record: %w", err)
	}
	return record, nil
}

func (s *KnackStore) DeleteRecord(ctx context.Context, objectKey, recordID string) error {
	endpoint := fmt.Sprintf("%s/objects/%s/records/%s", s.baseURL, objectKey, recordID)
	_, err := s.do(ctx, http.MethodDelete, endpoint, nil)
	return err
}

func (s *KnackStore) do(ctx context.Context, method, endpoint string, payload map[string]interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		reqBody = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Knack-Application-Id", s.appID)
	req.Header.Set("X-Knack-REST-API-Key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("record store request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Error("knack_store", "Record store returned an error", map[string]interface{}{
			"method":   method,
			"endpoint": endpoint,
			"status":   resp.StatusCode,
		})
		return nil, fmt.Errorf("record store error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func numberToInt(n json.Number, fallback int) int {
	if n == "" {
		return fallback
	}
	v, err := n.Int64()
	if err != nil {
		return fallback
	}
	return int(v)
}
