package services

import (
	"fmt"
	"sort"

	"github.com/mansaluxe/realty-backend/internal/dto"
	"github.com/mansaluxe/realty-backend/internal/models"
	"gorm.io/gorm"
)

// Price-range buckets for the reports view.
var priceRanges = []struct {
	min, max float64
	label    string
}{
	{0, 50_000_000, "₦0-50M"},
	{50_000_000, 100_000_000, "₦50M-100M"},
	{100_000_000, 200_000_000, "₦100M-200M"},
	{200_000_000, -1, "₦200M+"},
}

// StatsService derives dashboard numbers from the live collections.
// Nothing here is cached or incrementally maintained.
type StatsService struct {
	db           *gorm.DB
	properties   *PropertyService
	testimonials *TestimonialService
	users        *UserService
	settings     *SettingsService
}

func NewStatsService(db *gorm.DB, properties *PropertyService, testimonials *TestimonialService, users *UserService, settings *SettingsService) *StatsService {
	return &StatsService{
		db:           db,
		properties:   properties,
		testimonials: testimonials,
		users:        users,
		settings:     settings,
	}
}

// Dashboard computes the stat cards fresh on every call.
func (s *StatsService) Dashboard() (*dto.DashboardStats, error) {
	properties, err := s.properties.List()
	if err != nil {
		return nil, err
	}
	testimonials, err := s.testimonials.List()
	if err != nil {
		return nil, err
	}
	adminCount, err := s.users.Count()
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}

	sold := 0
	var revenue float64
	for _, p := range properties {
		if p.Status == models.StatusSold {
			sold++
			revenue += p.Price
		}
	}

	return &dto.DashboardStats{
		TotalProperties:   len(properties),
		PropertiesSold:    sold,
		PendingInquiries:  0,
		TotalTestimonials: len(testimonials),
		AdminUsers:        int(adminCount),
		MonthlyRevenue:    FormatRevenue(revenue, settings.Currency),
	}, nil
}

// FormatRevenue renders a total as a currency string scaled to
// millions with one decimal place, e.g. "₦175.0M".
func FormatRevenue(total float64, currency string) string {
	return fmt.Sprintf("%s%.1fM", currency, total/1_000_000)
}

// Reports aggregates type, price-range, status and rating breakdowns.
func (s *StatsService) Reports() (*dto.ReportsResponse, error) {
	properties, err := s.properties.List()
	if err != nil {
		return nil, err
	}
	testimonials, err := s.testimonials.List()
	if err != nil {
		return nil, err
	}

	typeCount := map[string]int{}
	statusCount := map[string]int{}
	rangeCount := make([]int, len(priceRanges))
	for _, p := range properties {
		if p.PropertyType != "" {
			typeCount[p.PropertyType]++
		}
		statusCount[p.Status]++
		for i, r := range priceRanges {
			if p.Price >= r.min && (r.max < 0 || p.Price < r.max) {
				rangeCount[i]++
				break
			}
		}
	}

	ratingCount := map[int]int{}
	for _, t := range testimonials {
		ratingCount[t.Rating]++
	}

	resp := &dto.ReportsResponse{}
	for name, count := range typeCount {
		resp.PropertyTypes = append(resp.PropertyTypes, dto.TypeCount{Name: name, Count: count})
	}
	sort.Slice(resp.PropertyTypes, func(i, j int) bool {
		return resp.PropertyTypes[i].Name < resp.PropertyTypes[j].Name
	})
	for i, r := range priceRanges {
		resp.PriceRanges = append(resp.PriceRanges, dto.PriceRangeCount{Range: r.label, Count: rangeCount[i]})
	}
	for _, status := range []string{models.StatusAvailable, models.StatusPending, models.StatusSold} {
		if count, ok := statusCount[status]; ok {
			resp.Statuses = append(resp.Statuses, dto.StatusCount{Status: status, Count: count})
		}
	}
	for rating := 1; rating <= 5; rating++ {
		resp.Ratings = append(resp.Ratings, dto.RatingCount{Rating: rating, Count: ratingCount[rating]})
	}
	return resp, nil
}
