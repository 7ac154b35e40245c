package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/application/service"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/internal/domain/repository"
)

type stubCompensationRepo struct {
	repository.CompensationRepository

	covering *entity.CompensationScheme
	existing *entity.CompensationEntry
}

func (s *stubCompensationRepo) GetSchemeCovering(ctx context.Context, userID uuid.UUID, year, month int) (*entity.CompensationScheme, error) {
	return s.covering, nil
}

func (s *stubCompensationRepo) GetEntryForPeriod(ctx context.Context, userID uuid.UUID, year, month int) (*entity.CompensationEntry, error) {
	return s.existing, nil
}

func (s *stubCompensationRepo) CreateEntry(ctx context.Context, entry *entity.CompensationEntry) error {
	return nil
}

func calculateRouter(repo repository.CompensationRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCompensationHandler(service.NewCompensationService(repo, nil, nil, nil))
	r := gin.New()
	r.POST("/compensation/calculate", h.Calculate)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCalculateEndpoint_Success(t *testing.T) {
	userID := uuid.New()
	repo := &stubCompensationRepo{covering: &entity.CompensationScheme{
		ID:            uuid.New(),
		UserID:        userID,
		Type:          enum.CompensationSalaryBonus,
		BaseSalary:    3000,
		EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	r := calculateRouter(repo)

	w := postJSON(t, r, "/compensation/calculate",
		`{"user_id":"`+userID.String()+`","year":2026,"month":3,"bonus_multiplier":0.5}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			BaseSalary  float64 `json:"base_salary"`
			BonusAmount float64 `json:"bonus_amount"`
			TotalEarned float64 `json:"total_earned"`
			TotalPaid   float64 `json:"total_paid"`
			Balance     float64 `json:"balance"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !envelope.Success {
		t.Error("success = false, want true")
	}
	if envelope.Data.BaseSalary != 3000 || envelope.Data.BonusAmount != 1500 {
		t.Errorf("base/bonus = %v/%v, want 3000/1500", envelope.Data.BaseSalary, envelope.Data.BonusAmount)
	}
	if envelope.Data.TotalEarned != 4500 || envelope.Data.Balance != 4500 {
		t.Errorf("earned/balance = %v/%v, want 4500/4500", envelope.Data.TotalEarned, envelope.Data.Balance)
	}
	if envelope.Data.TotalPaid != 0 {
		t.Errorf("total_paid = %v, want 0 on a fresh entry", envelope.Data.TotalPaid)
	}
}

func TestCalculateEndpoint_NoActiveScheme(t *testing.T) {
	r := calculateRouter(&stubCompensationRepo{})

	w := postJSON(t, r, "/compensation/calculate",
		`{"user_id":"`+uuid.New().String()+`","year":2026,"month":3}`)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404; body: %s", w.Code, w.Body.String())
	}
}

func TestCalculateEndpoint_DuplicatePeriod(t *testing.T) {
	userID := uuid.New()
	repo := &stubCompensationRepo{
		covering: &entity.CompensationScheme{ID: uuid.New(), UserID: userID},
		existing: &entity.CompensationEntry{ID: uuid.New()},
	}
	r := calculateRouter(repo)

	w := postJSON(t, r, "/compensation/calculate",
		`{"user_id":"`+userID.String()+`","year":2026,"month":3}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400; body: %s", w.Code, w.Body.String())
	}
}

func TestCalculateEndpoint_BadInput(t *testing.T) {
	r := calculateRouter(&stubCompensationRepo{})

	tests := []struct {
		name string
		body string
	}{
		{"missing user", `{"year":2026,"month":3}`},
		{"malformed user id", `{"user_id":"not-a-uuid","year":2026,"month":3}`},
		{"month out of range", `{"user_id":"` + uuid.New().String() + `","year":2026,"month":13}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, r, "/compensation/calculate", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", w.Code, w.Body.String())
			}
		})
	}
}
