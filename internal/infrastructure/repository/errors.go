package repository

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/praxishq/praxis-api/pkg/apperror"
)

// classify wraps database connectivity failures in a typed application
// error so services can distinguish "the database is unreachable" from
// ordinary query errors. Everything else passes through untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isConnectivity(err) {
		return apperror.NewConnectivityError(err)
	}
	return err
}

func isConnectivity(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 {
		// Class 08: connection exceptions. Class 57: operator
		// intervention (shutdown, cannot_connect_now).
		switch pgErr.Code[:2] {
		case "08", "57":
			return true
		}
	}
	return false
}
