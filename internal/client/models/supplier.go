package models

// SupplierSummary is one row of the supplier directory listing.
type SupplierSummary struct {
	UserID       string   `json:"userId"`
	BusinessName string   `json:"businessName"`
	Suburb       string   `json:"suburb"`
	WebsiteURL   string   `json:"websiteUrl"`
	Services     []string `json:"services,omitempty"`
}

// SupplierPage is one page of directory results together with the
// pagination window it was fetched for.
type SupplierPage struct {
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Items  []SupplierSummary `json:"items"`
}
