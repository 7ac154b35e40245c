package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/internal/domain/repository"
	"github.com/praxishq/praxis-api/pkg/apperror"
)

// fakeInvoiceRepo implements repository.InvoiceRepository with overridable
// function fields. Methods a test does not exercise panic via the embedded
// nil interface, which surfaces unexpected calls immediately.
type fakeInvoiceRepo struct {
	repository.InvoiceRepository

	mu           sync.Mutex
	getByID      func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	getByNumber  func(ctx context.Context, number string) (*entity.Invoice, error)
	nextNumber   int
	deleteFn     func(ctx context.Context, id uuid.UUID) error
	deletedBatch [][]uuid.UUID
	batchErr     error
	paidInvoices []entity.Invoice
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return f.getByID(ctx, id)
}

func (f *fakeInvoiceRepo) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	return f.getByNumber(ctx, number)
}

func (f *fakeInvoiceRepo) GetNextNumber(ctx context.Context) (int, error) {
	return f.nextNumber, nil
}

func (f *fakeInvoiceRepo) ListPaidForProjects(ctx context.Context, projectIDs []uuid.UUID, from, to time.Time) ([]entity.Invoice, error) {
	return f.paidInvoices, nil
}

func (f *fakeInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeInvoiceRepo) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedBatch = append(f.deletedBatch, ids)
	return f.batchErr
}

// byIDMap builds a GetByID backed by a fixed set of invoices. Unknown ids
// resolve to (nil, nil), mirroring the gorm repository's not-found contract.
func byIDMap(invoices map[uuid.UUID]*entity.Invoice, errs map[uuid.UUID]error) func(context.Context, uuid.UUID) (*entity.Invoice, error) {
	return func(_ context.Context, id uuid.UUID) (*entity.Invoice, error) {
		if err, ok := errs[id]; ok {
			return nil, err
		}
		return invoices[id], nil
	}
}

func makeInvoice(number string, status enum.InvoiceStatus, generated bool) *entity.Invoice {
	return &entity.Invoice{
		ID:        uuid.New(),
		Number:    number,
		Status:    status,
		Generated: generated,
	}
}

func TestValidateBulkDelete_MixedOutcomes(t *testing.T) {
	draft := makeInvoice("INV-000001", enum.InvoiceStatusDraft, false)
	paid := makeInvoice("INV-000002", enum.InvoiceStatusPaid, false)
	sent := makeInvoice("INV-000003", enum.InvoiceStatusSent, false)
	generated := makeInvoice("INV-000004", enum.InvoiceStatusDraft, true)
	voided := makeInvoice("INV-000005", enum.InvoiceStatusVoid, true)
	missingID := uuid.New()
	downID := uuid.New()

	repo := &fakeInvoiceRepo{getByID: byIDMap(
		map[uuid.UUID]*entity.Invoice{
			draft.ID: draft, paid.ID: paid, sent.ID: sent,
			generated.ID: generated, voided.ID: voided,
		},
		map[uuid.UUID]error{downID: apperror.NewConnectivityError(errors.New("dial tcp: refused"))},
	)}
	svc := NewInvoiceService(repo, nil, nil, nil)

	result, err := svc.ValidateBulkDelete(context.Background(), []uuid.UUID{
		draft.ID, paid.ID, sent.ID, generated.ID, voided.ID, missingID, downID,
	})
	if err != nil {
		t.Fatalf("ValidateBulkDelete() error = %v", err)
	}

	if result.AllConnectivity {
		t.Error("AllConnectivity = true, want false")
	}

	wantDeletable := []uuid.UUID{draft.ID, voided.ID}
	if len(result.Deletable) != len(wantDeletable) {
		t.Fatalf("len(Deletable) = %d, want %d", len(result.Deletable), len(wantDeletable))
	}
	for i, want := range wantDeletable {
		if result.Deletable[i].ID != want {
			t.Errorf("Deletable[%d].ID = %v, want %v", i, result.Deletable[i].ID, want)
		}
	}

	wantReasons := map[uuid.UUID]string{
		paid.ID:      "Paid invoices cannot be deleted",
		sent.ID:      "Sent invoices must be voided before deletion",
		generated.ID: "Invoice was generated by a recurring schedule",
		missingID:    "Invoice not found",
		downID:       "Database unavailable",
	}
	if len(result.NonDeletable) != len(wantReasons) {
		t.Fatalf("len(NonDeletable) = %d, want %d", len(result.NonDeletable), len(wantReasons))
	}
	for _, issue := range result.NonDeletable {
		if want := wantReasons[issue.ID]; issue.Reason != want {
			t.Errorf("NonDeletable[%v].Reason = %q, want %q", issue.ID, issue.Reason, want)
		}
	}
}

func TestValidateBulkDelete_AllConnectivity(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	repo := &fakeInvoiceRepo{getByID: func(context.Context, uuid.UUID) (*entity.Invoice, error) {
		return nil, apperror.NewConnectivityError(errors.New("connection reset"))
	}}
	svc := NewInvoiceService(repo, nil, nil, nil)

	result, err := svc.ValidateBulkDelete(context.Background(), ids)
	if err != nil {
		t.Fatalf("ValidateBulkDelete() error = %v", err)
	}

	if !result.AllConnectivity {
		t.Error("AllConnectivity = false, want true")
	}
	if len(result.Deletable) != 0 {
		t.Errorf("len(Deletable) = %d, want 0", len(result.Deletable))
	}
	if len(result.NonDeletable) != len(ids) {
		t.Fatalf("len(NonDeletable) = %d, want %d", len(result.NonDeletable), len(ids))
	}
	for _, issue := range result.NonDeletable {
		if issue.Reason != "Database unavailable" {
			t.Errorf("Reason = %q, want %q", issue.Reason, "Database unavailable")
		}
	}
}

func TestValidateBulkDelete_OneNonConnectivityClearsFlag(t *testing.T) {
	good := makeInvoice("INV-000010", enum.InvoiceStatusDraft, false)
	downID := uuid.New()

	repo := &fakeInvoiceRepo{getByID: byIDMap(
		map[uuid.UUID]*entity.Invoice{good.ID: good},
		map[uuid.UUID]error{downID: apperror.NewConnectivityError(errors.New("timeout"))},
	)}
	svc := NewInvoiceService(repo, nil, nil, nil)

	result, err := svc.ValidateBulkDelete(context.Background(), []uuid.UUID{good.ID, downID})
	if err != nil {
		t.Fatalf("ValidateBulkDelete() error = %v", err)
	}
	if result.AllConnectivity {
		t.Error("AllConnectivity = true, want false when one check succeeds")
	}
	if len(result.Deletable) != 1 || result.Deletable[0].ID != good.ID {
		t.Errorf("Deletable = %v, want just %v", result.Deletable, good.ID)
	}
}

func TestValidateBulkDelete_EmptyBatch(t *testing.T) {
	svc := NewInvoiceService(&fakeInvoiceRepo{}, nil, nil, nil)

	_, err := svc.ValidateBulkDelete(context.Background(), nil)
	if err == nil {
		t.Fatal("ValidateBulkDelete() error = nil, want bad request")
	}
	appErr := apperror.GetAppError(err)
	if appErr == nil || appErr.Code != 400 {
		t.Errorf("error = %v, want 400 app error", err)
	}
}

func TestBulkDelete_DeletesOnlyDeletableSubset(t *testing.T) {
	draft := makeInvoice("INV-000020", enum.InvoiceStatusDraft, false)
	voided := makeInvoice("INV-000021", enum.InvoiceStatusVoid, false)
	paid := makeInvoice("INV-000022", enum.InvoiceStatusPaid, false)

	repo := &fakeInvoiceRepo{getByID: byIDMap(
		map[uuid.UUID]*entity.Invoice{draft.ID: draft, voided.ID: voided, paid.ID: paid},
		nil,
	)}
	svc := NewInvoiceService(repo, nil, nil, nil)

	result, err := svc.BulkDelete(context.Background(), []uuid.UUID{draft.ID, voided.ID, paid.ID})
	if err != nil {
		t.Fatalf("BulkDelete() error = %v", err)
	}

	if result.DeletedCount != 2 {
		t.Errorf("DeletedCount = %d, want 2", result.DeletedCount)
	}
	if len(result.NonDeletable) != 1 || result.NonDeletable[0].ID != paid.ID {
		t.Errorf("NonDeletable = %v, want just the paid invoice", result.NonDeletable)
	}

	if len(repo.deletedBatch) != 1 {
		t.Fatalf("DeleteBatch called %d times, want 1", len(repo.deletedBatch))
	}
	got := repo.deletedBatch[0]
	want := []uuid.UUID{draft.ID, voided.ID}
	if len(got) != len(want) {
		t.Fatalf("DeleteBatch ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DeleteBatch ids[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBulkDelete_AllConnectivityIsUnavailable(t *testing.T) {
	repo := &fakeInvoiceRepo{getByID: func(context.Context, uuid.UUID) (*entity.Invoice, error) {
		return nil, apperror.NewConnectivityError(errors.New("no route to host"))
	}}
	svc := NewInvoiceService(repo, nil, nil, nil)

	_, err := svc.BulkDelete(context.Background(), []uuid.UUID{uuid.New(), uuid.New()})
	if !errors.Is(err, apperror.ErrServiceUnavailable) {
		t.Errorf("BulkDelete() error = %v, want ErrServiceUnavailable", err)
	}
	if len(repo.deletedBatch) != 0 {
		t.Error("DeleteBatch was called despite total connectivity failure")
	}
}

func TestBulkDelete_NothingDeletable(t *testing.T) {
	paid := makeInvoice("INV-000030", enum.InvoiceStatusPaid, false)
	repo := &fakeInvoiceRepo{getByID: byIDMap(
		map[uuid.UUID]*entity.Invoice{paid.ID: paid},
		nil,
	)}
	svc := NewInvoiceService(repo, nil, nil, nil)

	_, err := svc.BulkDelete(context.Background(), []uuid.UUID{paid.ID})
	if err == nil {
		t.Fatal("BulkDelete() error = nil, want bad request")
	}
	appErr := apperror.GetAppError(err)
	if appErr == nil || appErr.Code != 400 {
		t.Errorf("error = %v, want 400 app error", err)
	}
	if len(repo.deletedBatch) != 0 {
		t.Error("DeleteBatch was called with nothing deletable")
	}
}

func TestDeleteInvoice_BusinessRules(t *testing.T) {
	tests := []struct {
		name    string
		invoice *entity.Invoice
		wantErr string
	}{
		{
			name:    "draft is deletable",
			invoice: makeInvoice("INV-000040", enum.InvoiceStatusDraft, false),
		},
		{
			name:    "voided generated invoice is deletable",
			invoice: makeInvoice("INV-000041", enum.InvoiceStatusVoid, true),
		},
		{
			name:    "paid is blocked",
			invoice: makeInvoice("INV-000042", enum.InvoiceStatusPaid, false),
			wantErr: "Paid invoices cannot be deleted",
		},
		{
			name:    "sent is blocked",
			invoice: makeInvoice("INV-000043", enum.InvoiceStatusSent, false),
			wantErr: "Sent invoices must be voided before deletion",
		},
		{
			name:    "generated unpaid is blocked",
			invoice: makeInvoice("INV-000044", enum.InvoiceStatusDraft, true),
			wantErr: "Invoice was generated by a recurring schedule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeInvoiceRepo{
				getByID: byIDMap(map[uuid.UUID]*entity.Invoice{tt.invoice.ID: tt.invoice}, nil),
				deleteFn: func(context.Context, uuid.UUID) error {
					return nil
				},
			}
			svc := NewInvoiceService(repo, nil, nil, nil)

			err := svc.DeleteInvoice(context.Background(), tt.invoice.ID)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("DeleteInvoice() error = %v, want nil", err)
				}
				return
			}
			appErr := apperror.GetAppError(err)
			if appErr == nil || appErr.Message != tt.wantErr {
				t.Errorf("DeleteInvoice() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
