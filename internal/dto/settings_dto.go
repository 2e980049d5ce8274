package dto

// Settings is the typed site configuration bag. There is exactly one
// logical instance; it is read and replaced wholesale. Unknown keys in
// a PUT body are rejected by DisallowUnknownFields at the handler.
type Settings struct {
	CompanyName        string `json:"company_name"`
	CompanySubtitle    string `json:"company_subtitle"`
	PrimaryColor       string `json:"primary_color"`
	SecondaryColor     string `json:"secondary_color"`
	Currency           string `json:"currency"`
	Timezone           string `json:"timezone"`
	Language           string `json:"language"`
	EmailNotifications bool   `json:"email_notifications"`
	MaintenanceMode    bool   `json:"maintenance_mode"`
}

// CompanyInfo is the public subset of settings served to the website.
type CompanyInfo struct {
	CompanyName     string `json:"company_name"`
	CompanySubtitle string `json:"company_subtitle"`
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	Currency        string `json:"currency"`
}
