package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cbummouad/appall/internal/apperror"
	"github.com/cbummouad/appall/internal/model"
)

// RestConfig locates a table exposed over the hosted backend's REST API.
type RestConfig struct {
	BaseURL string
	APIKey  string
	Table   string
	Timeout time.Duration
}

// RestStore inserts records through the PostgREST interface of a hosted
// backend-as-a-service project.
type RestStore struct {
	log      *zap.Logger
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewRestStore builds a RestStore posting to <BaseURL>/rest/v1/<Table>.
func NewRestStore(cfg RestConfig, log *zap.Logger) *RestStore {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	endpoint := strings.TrimRight(cfg.BaseURL, "/") + "/rest/v1/" + url.PathEscape(cfg.Table)
	return &RestStore{
		log:      log,
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// Insert posts rec as a one-element array. A non-2xx answer is returned as
// *apperror.StoreError.
func (s *RestStore) Insert(ctx context.Context, rec *model.LeadRequest) error {
	payload, err := json.Marshal([]*model.LeadRequest{rec})
	if err != nil {
		return fmt.Errorf("store: marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("store: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("store: insert request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeStoreError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	s.log.Info("lead inserted",
		zap.String("plan", string(rec.Plan)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))
	return nil
}

func decodeStoreError(resp *http.Response) error {
	storeErr := &apperror.StoreError{Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return storeErr
	}
	if err := json.Unmarshal(body, storeErr); err != nil {
		storeErr.Message = strings.TrimSpace(string(body))
	}
	storeErr.Status = resp.StatusCode
	return storeErr
}
