package sqlstore

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/parampara-backend/internal/data/db"
	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

func TestClassifyPostgresCodes(t *testing.T) {
	tests := []struct {
		code       string
		wantStatus int
		wantKind   error
	}{
		{"23505", http.StatusConflict, apierr.ErrConflict},
		{"40001", http.StatusServiceUnavailable, apierr.ErrUnavailable},
		{"40P01", http.StatusServiceUnavailable, apierr.ErrUnavailable},
		{"55P03", http.StatusServiceUnavailable, apierr.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tt.code, Message: "boom"}
			err := classify("create document", pgErr)
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("classify(%s) = %v, want kind %v", tt.code, err, tt.wantKind)
			}
			var back *pgconn.PgError
			if !errors.As(err, &back) || back.Code != tt.code {
				t.Fatalf("driver error should stay reachable, got %v", err)
			}
			if got := apierr.Status(err); got != tt.wantStatus {
				t.Fatalf("Status = %d, want %d", got, tt.wantStatus)
			}
		})
	}

	fk := &pgconn.PgError{Code: "23503"}
	if got := classify("create story", fk); got != error(fk) {
		t.Fatalf("unrecognised codes pass through, got %v", got)
	}
	if classify("noop", nil) != nil {
		t.Fatalf("nil should stay nil")
	}
}

func TestCreateDuplicateIDIsConflict(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	doc := newDoc("Rigveda", "sanskrit", "agnim ile")
	if err := st.Documents().Create(ctx, doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	dup := newDoc("Rigveda copy", "sanskrit", "agnim ile")
	dup.ID = doc.ID
	err := st.Documents().Create(ctx, dup)
	if !errors.Is(err, apierr.ErrConflict) || apierr.Status(err) != http.StatusConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestInTxRetriesRetryableFailures(t *testing.T) {
	svc, err := db.NewSQLService(logger.Nop(), db.Config{
		Backend:    db.BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "tx.db"),
		Silent:     true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer svc.Close()
	ctx := context.Background()

	calls := 0
	err = inTx(ctx, svc.DB(), "award badge", func(tx *gorm.DB) error {
		calls++
		if calls == 1 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Fatalf("expected success on second attempt, err=%v calls=%d", err, calls)
	}

	calls = 0
	err = inTx(ctx, svc.DB(), "award badge", func(tx *gorm.DB) error {
		calls++
		return &pgconn.PgError{Code: "40P01"}
	})
	if !errors.Is(err, apierr.ErrUnavailable) || calls != maxTxAttempts {
		t.Fatalf("expected unavailable after %d attempts, err=%v calls=%d", maxTxAttempts, err, calls)
	}

	calls = 0
	err = inTx(ctx, svc.DB(), "set translation", func(tx *gorm.DB) error {
		calls++
		return repos.NotFound("document", "x")
	})
	if !errors.Is(err, apierr.ErrNotFound) || calls != 1 {
		t.Fatalf("non-retryable errors must not retry, err=%v calls=%d", err, calls)
	}
}
