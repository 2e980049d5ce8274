package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newStatsService(db *gorm.DB) *StatsService {
	return NewStatsService(db, NewPropertyService(db), NewTestimonialService(db),
		NewUserService(db), NewSettingsService(db))
}

func TestFormatRevenue(t *testing.T) {
	tests := []struct {
		total    float64
		currency string
		want     string
	}{
		{175_000_000, "₦", "₦175.0M"},
		{0, "₦", "₦0.0M"},
		{2_500_000, "$", "$2.5M"},
		{50_000, "₦", "₦0.1M"},
	}
	for _, tt := range tests {
		if got := FormatRevenue(tt.total, tt.currency); got != tt.want {
			t.Errorf("FormatRevenue(%v, %q) = %q, want %q", tt.total, tt.currency, got, tt.want)
		}
	}
}

func TestDashboardStats(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newStatsService(db)

	now := time.Now()
	propRows := sqlmock.NewRows([]string{"id", "title", "price", "location", "status", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Sold A", 100_000_000.0, "Lagos", "sold", now, now).
		AddRow(uuid.New(), "Sold B", 50_000_000.0, "Lagos", "sold", now, now).
		AddRow(uuid.New(), "Sold C", 25_000_000.0, "Abuja", "sold", now, now).
		AddRow(uuid.New(), "Open", 80_000_000.0, "Lagos", "available", now, now)
	mock.ExpectQuery(`SELECT \* FROM "properties" ORDER BY created_at DESC`).
		WillReturnRows(propRows)

	testimonialRows := sqlmock.NewRows([]string{"id", "name", "quote", "rating", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Ada", "Great", 5, now, now).
		AddRow(uuid.New(), "Bola", "Good", 4, now, now)
	mock.ExpectQuery(`SELECT \* FROM "testimonials" ORDER BY display_order ASC`).
		WillReturnRows(testimonialRows)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "admin_users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery(`SELECT \* FROM "settings"`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "type"}))

	stats, err := svc.Dashboard()
	if err != nil {
		t.Fatalf("Dashboard() failed: %v", err)
	}

	if stats.TotalProperties != 4 {
		t.Errorf("TotalProperties = %d, want 4", stats.TotalProperties)
	}
	if stats.PropertiesSold != 3 {
		t.Errorf("PropertiesSold = %d, want 3", stats.PropertiesSold)
	}
	if stats.TotalTestimonials != 2 {
		t.Errorf("TotalTestimonials = %d, want 2", stats.TotalTestimonials)
	}
	if stats.AdminUsers != 2 {
		t.Errorf("AdminUsers = %d, want 2", stats.AdminUsers)
	}
	// Revenue only sums sold listings: 100M + 50M + 25M.
	if stats.MonthlyRevenue != "₦175.0M" {
		t.Errorf("MonthlyRevenue = %q, want ₦175.0M", stats.MonthlyRevenue)
	}
}

func TestReportsBuckets(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newStatsService(db)

	now := time.Now()
	propRows := sqlmock.NewRows([]string{"id", "title", "price", "location", "status", "property_type", "created_at", "updated_at"}).
		AddRow(uuid.New(), "A", 25_000_000.0, "Lagos", "available", "duplex", now, now).
		AddRow(uuid.New(), "B", 50_000_000.0, "Lagos", "available", "duplex", now, now).
		AddRow(uuid.New(), "C", 150_000_000.0, "Abuja", "pending", "villa", now, now).
		AddRow(uuid.New(), "D", 500_000_000.0, "Lagos", "sold", "villa", now, now)
	mock.ExpectQuery(`SELECT \* FROM "properties" ORDER BY created_at DESC`).
		WillReturnRows(propRows)

	testimonialRows := sqlmock.NewRows([]string{"id", "name", "quote", "rating", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Ada", "Great", 5, now, now).
		AddRow(uuid.New(), "Bola", "Good", 5, now, now).
		AddRow(uuid.New(), "Chi", "Fine", 3, now, now)
	mock.ExpectQuery(`SELECT \* FROM "testimonials" ORDER BY display_order ASC`).
		WillReturnRows(testimonialRows)

	reports, err := svc.Reports()
	if err != nil {
		t.Fatalf("Reports() failed: %v", err)
	}

	wantRanges := map[string]int{"₦0-50M": 1, "₦50M-100M": 1, "₦100M-200M": 1, "₦200M+": 1}
	if len(reports.PriceRanges) != len(priceRanges) {
		t.Fatalf("expected %d price ranges, got %d", len(priceRanges), len(reports.PriceRanges))
	}
	for _, r := range reports.PriceRanges {
		if r.Count != wantRanges[r.Range] {
			t.Errorf("range %q count = %d, want %d", r.Range, r.Count, wantRanges[r.Range])
		}
	}

	wantTypes := map[string]int{"duplex": 2, "villa": 2}
	for _, tc := range reports.PropertyTypes {
		if tc.Count != wantTypes[tc.Name] {
			t.Errorf("type %q count = %d, want %d", tc.Name, tc.Count, wantTypes[tc.Name])
		}
	}

	// Rating distribution always spans 1 through 5.
	if len(reports.Ratings) != 5 {
		t.Fatalf("expected 5 rating buckets, got %d", len(reports.Ratings))
	}
	wantRatings := map[int]int{1: 0, 2: 0, 3: 1, 4: 0, 5: 2}
	for _, rc := range reports.Ratings {
		if rc.Count != wantRatings[rc.Rating] {
			t.Errorf("rating %d count = %d, want %d", rc.Rating, rc.Count, wantRatings[rc.Rating])
		}
	}
}
