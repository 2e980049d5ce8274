package dto

type DashboardStats struct {
	TotalProperties   int    `json:"total_properties"`
	PropertiesSold    int    `json:"properties_sold"`
	PendingInquiries  int    `json:"pending_inquiries"`
	TotalTestimonials int    `json:"total_testimonials"`
	AdminUsers        int    `json:"admin_users"`
	MonthlyRevenue    string `json:"monthly_revenue"`
}

type TypeCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type PriceRangeCount struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

type ReportsResponse struct {
	PropertyTypes []TypeCount       `json:"property_types"`
	PriceRanges   []PriceRangeCount `json:"price_ranges"`
	Statuses      []StatusCount     `json:"statuses"`
	Ratings       []RatingCount     `json:"ratings"`
}
