package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mansaluxe/realty-backend/internal/dto"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return db, mock
}

func TestPropertyListNormalizesNullArrays(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db)

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "title", "price", "location", "status", "featured",
		"square_feet", "images", "amenities", "features", "created_at", "updated_at",
	}).AddRow(id, "Lekki Villa", 75000000.0, "Lagos", "available", true,
		5000, nil, nil, nil, now, now)

	mock.ExpectQuery(`SELECT \* FROM "properties" ORDER BY created_at DESC`).
		WillReturnRows(rows)

	got, err := svc.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 property, got %d", len(got))
	}
	p := got[0]
	if p.Images == nil || p.Amenities == nil || p.Features == nil {
		t.Fatal("array fields must be empty slices, not nil")
	}
	if len(p.Images) != 0 {
		t.Fatalf("expected empty images, got %v", p.Images)
	}
	if p.Area != "5000 sqft" {
		t.Fatalf("derived area = %q, want %q", p.Area, "5000 sqft")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPropertyGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db)

	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(uuid.New())
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("Get() error = %v, want ErrPropertyNotFound", err)
	}
}

func TestPropertyDeleteMissingIsError(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM "properties"`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := svc.Delete(id); !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("Delete() error = %v, want ErrPropertyNotFound", err)
	}
}

func TestPropertyDelete(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM "properties"`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.Delete(id); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
}

func TestPropertyUpdateMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db)

	id := uuid.New()
	title := "Renamed"
	mock.ExpectExec(`UPDATE "properties"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := svc.Update(id, &dto.UpdatePropertyRequest{Title: &title})
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("Update() error = %v, want ErrPropertyNotFound", err)
	}
}

func TestPropertyCreateValidation(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewPropertyService(db)
	price := dto.Price(50000000)

	tests := []struct {
		name    string
		req     dto.CreatePropertyRequest
		wantErr error
	}{
		{
			name:    "missing title",
			req:     dto.CreatePropertyRequest{Price: &price, Location: "Lagos"},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "whitespace title",
			req:     dto.CreatePropertyRequest{Title: "   ", Price: &price, Location: "Lagos"},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "missing price",
			req:     dto.CreatePropertyRequest{Title: "Villa", Location: "Lagos"},
			wantErr: ErrPriceRequired,
		},
		{
			name:    "missing location",
			req:     dto.CreatePropertyRequest{Title: "Villa", Price: &price},
			wantErr: ErrLocationRequired,
		},
		{
			name:    "bad status",
			req:     dto.CreatePropertyRequest{Title: "Villa", Price: &price, Location: "Lagos", Status: "archived"},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(&tt.req); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeriveArea(t *testing.T) {
	lot := "2 acres"
	empty := ""
	sq := 3200
	zero := 0

	tests := []struct {
		name       string
		lotSize    *string
		squareFeet *int
		want       string
	}{
		{name: "lot size wins", lotSize: &lot, squareFeet: &sq, want: "2 acres"},
		{name: "square feet fallback", lotSize: nil, squareFeet: &sq, want: "3200 sqft"},
		{name: "empty lot size falls through", lotSize: &empty, squareFeet: &sq, want: "3200 sqft"},
		{name: "zero square feet ignored", lotSize: nil, squareFeet: &zero, want: ""},
		{name: "nothing", lotSize: nil, squareFeet: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveArea(tt.lotSize, tt.squareFeet); got != tt.want {
				t.Fatalf("deriveArea() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDigitsToInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"5000 sqft", 5000},
		{"1,200 sqm", 1200},
		{"no digits", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := digitsToInt(tt.input); got != tt.want {
			t.Errorf("digitsToInt(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
