package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mansaluxe/realty-backend/internal/models"
)

func TestResolveNoAdminRow(t *testing.T) {
	db, mock := newMockDB(t)
	resolver := NewRoleResolver(db)

	mock.ExpectQuery(`SELECT \* FROM "admin_users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	admin, err := resolver.Resolve(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if admin != nil {
		t.Fatalf("expected nil admin for missing row, got %+v", admin)
	}
}

func TestResolveReturnsAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	resolver := NewRoleResolver(db)

	userID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "email", "role", "created_at"}).
		AddRow(uuid.New(), userID, "ops@example.com", models.RoleEditor, time.Now())
	mock.ExpectQuery(`SELECT \* FROM "admin_users"`).
		WillReturnRows(rows)

	admin, err := resolver.Resolve(context.Background(), userID)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if admin == nil || admin.Role != models.RoleEditor {
		t.Fatalf("unexpected admin: %+v", admin)
	}
}

func TestResolveClosedTimesOut(t *testing.T) {
	db, mock := newMockDB(t)
	resolver := NewRoleResolver(db)

	mock.ExpectQuery(`SELECT \* FROM "admin_users"`).
		WillDelayFor(200 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	start := time.Now()
	admin := resolver.ResolveClosed(context.Background(), uuid.New(), 20*time.Millisecond)
	if admin != nil {
		t.Fatalf("timed-out resolution must fail closed, got %+v", admin)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Fatalf("ResolveClosed did not honor the timeout, took %v", elapsed)
	}
}

func TestResolveClosedErrorFailsClosed(t *testing.T) {
	db, mock := newMockDB(t)
	resolver := NewRoleResolver(db)

	mock.ExpectQuery(`SELECT \* FROM "admin_users"`).
		WillReturnError(context.DeadlineExceeded)

	if admin := resolver.ResolveClosed(context.Background(), uuid.New(), time.Second); admin != nil {
		t.Fatalf("resolver error must fail closed, got %+v", admin)
	}
}
