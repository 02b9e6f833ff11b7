package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/adapter/http/dto"
	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/usecase"
)

type distributionServiceStub struct {
	processFn func(ctx context.Context, projectID, period string) (*usecase.DistributionResult, error)
	listFn    func(ctx context.Context, projectID string, limit, offset int) ([]*domain.Distribution, error)
}

func (s *distributionServiceStub) Process(ctx context.Context, projectID, period string) (*usecase.DistributionResult, error) {
	return s.processFn(ctx, projectID, period)
}

func (s *distributionServiceStub) ListByProject(ctx context.Context, projectID string, limit, offset int) ([]*domain.Distribution, error) {
	return s.listFn(ctx, projectID, limit, offset)
}

func TestDistributionHandler_Process_Success(t *testing.T) {
	result := &usecase.DistributionResult{
		DistributionID:   "dist-1",
		ProjectID:        "proj-1",
		Period:           "2026-08",
		InvestorPool:     decimal.RequireFromString("83.33"),
		TotalDistributed: decimal.RequireFromString("83.33"),
		InvestorCount:    2,
		Credits: []domain.InvestorCredit{
			{InvestorID: "inv-a", Amount: decimal.RequireFromString("50.00"), TransactionID: "txn-a"},
			{InvestorID: "inv-b", Amount: decimal.RequireFromString("33.33"), TransactionID: "txn-b"},
		},
	}

	h := NewDistributionHandler(&distributionServiceStub{
		processFn: func(ctx context.Context, projectID, period string) (*usecase.DistributionResult, error) {
			if projectID != "proj-1" || period != "2026-08" {
				t.Fatalf("unexpected call: %s %s", projectID, period)
			}
			return result, nil
		},
	})

	body, _ := json.Marshal(dto.ProcessDistributionRequest{ProjectID: "proj-1", Period: "2026-08"})
	req := httptest.NewRequest(http.MethodPost, "/distributions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.DistributionResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.DistributionID != "dist-1" || resp.InvestorCount != 2 || len(resp.Credits) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestDistributionHandler_Process_PartialFailure(t *testing.T) {
	result := &usecase.DistributionResult{
		DistributionID: "dist-1",
		ProjectID:      "proj-1",
		Period:         "2026-08",
		Credits: []domain.InvestorCredit{
			{InvestorID: "inv-a", Amount: decimal.RequireFromString("50.00"), TransactionID: "txn-a"},
		},
		Failures: []domain.InvestorFailure{
			{InvestorID: "inv-b", Amount: decimal.RequireFromString("33.33"), Err: errors.New("deadlock")},
		},
	}

	h := NewDistributionHandler(&distributionServiceStub{
		processFn: func(ctx context.Context, projectID, period string) (*usecase.DistributionResult, error) {
			return result, nil
		},
	})

	body, _ := json.Marshal(dto.ProcessDistributionRequest{ProjectID: "proj-1", Period: "2026-08"})
	req := httptest.NewRequest(http.MethodPost, "/distributions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("expected 207 for partial failure, got %d", rec.Code)
	}

	var resp dto.DistributionResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Failures) != 1 || resp.Failures[0].Error != "deadlock" {
		t.Fatalf("unexpected failures: %+v", resp.Failures)
	}
}

func TestDistributionHandler_Process_InvalidPeriod(t *testing.T) {
	h := NewDistributionHandler(&distributionServiceStub{
		processFn: func(ctx context.Context, projectID, period string) (*usecase.DistributionResult, error) {
			return nil, domain.ErrInvalidPeriod
		},
	})

	body, _ := json.Marshal(dto.ProcessDistributionRequest{ProjectID: "proj-1", Period: "2026-13"})
	req := httptest.NewRequest(http.MethodPost, "/distributions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDistributionHandler_ListByProject(t *testing.T) {
	h := NewDistributionHandler(&distributionServiceStub{
		listFn: func(ctx context.Context, projectID string, limit, offset int) ([]*domain.Distribution, error) {
			return []*domain.Distribution{
				{ID: "dist-1", ProjectID: projectID, Period: "2026-08", InvestorPool: decimal.RequireFromString("83.33")},
			}, nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/projects/proj-1/distributions", nil), "id", "proj-1")
	rec := httptest.NewRecorder()

	h.ListByProject(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []dto.DistributionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].Period != "2026-08" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
