package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/gtmquest/agencymatch/internal/db"
)

func TestNew_RequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}

func TestNew_InvalidDSN(t *testing.T) {
	_, err := New(context.Background(), Config{DSN: "postgres://user@host:notaport/db"})
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected db.Error, got %v", err)
	}
	if dbErr.Op != db.OpConnect {
		t.Errorf("Op = %q, want %q", dbErr.Op, db.OpConnect)
	}
}

func TestNew_AppliesMaxConns(t *testing.T) {
	p, err := New(context.Background(), Config{DSN: "postgres://user@localhost:5432/gtm", MaxConns: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()

	if got := p.Pgx().Config().MaxConns; got != 3 {
		t.Errorf("MaxConns = %d, want 3", got)
	}
}
