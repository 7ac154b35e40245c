package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindClassification(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		isConnectivity bool
		isNotFound     bool
	}{
		{"connectivity error", NewConnectivityError(errors.New("dial tcp: refused")), true, false},
		{"wrapped connectivity error", fmt.Errorf("load invoice: %w", NewConnectivityError(errors.New("reset"))), true, false},
		{"not found error", NewNotFoundError("Invoice"), false, true},
		{"bad request", NewBadRequestError("nope"), false, false},
		{"plain error", errors.New("boom"), false, false},
		{"service unavailable sentinel", ErrServiceUnavailable, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConnectivity(tt.err); got != tt.isConnectivity {
				t.Errorf("IsConnectivity() = %v, want %v", got, tt.isConnectivity)
			}
			if got := IsNotFound(tt.err); got != tt.isNotFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.isNotFound)
			}
		})
	}
}

func TestConflictIsBadRequestCode(t *testing.T) {
	err := NewConflictError("Compensation entry already exists for this period")
	if err.Code != http.StatusBadRequest {
		t.Errorf("Code = %d, want %d", err.Code, http.StatusBadRequest)
	}
	if err.Kind != KindConflict {
		t.Errorf("Kind = %v, want KindConflict", err.Kind)
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("unwraps app errors", func(t *testing.T) {
		inner := NewNotFoundError("Client")
		got := GetAppError(fmt.Errorf("lookup: %w", inner))
		if got != inner {
			t.Errorf("GetAppError() = %v, want the wrapped app error", got)
		}
	})

	t.Run("wraps plain errors as 500", func(t *testing.T) {
		got := GetAppError(errors.New("boom"))
		if got.Code != http.StatusInternalServerError {
			t.Errorf("Code = %d, want 500", got.Code)
		}
		if got.Message != "boom" {
			t.Errorf("Message = %q, want %q", got.Message, "boom")
		}
	})
}
