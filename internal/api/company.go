package api

// CompanyResponse is the JSON projection of a company profile.
type CompanyResponse struct {
	ID          uint              `json:"id"`
	OwnerID     uint              `json:"owner_id"`
	CompanyName string            `json:"company_name"`
	Address     string            `json:"address"`
	City        string            `json:"city"`
	State       string            `json:"state"`
	Country     string            `json:"country"`
	PostalCode  string            `json:"postal_code"`
	Website     string            `json:"website,omitempty"`
	LogoURL     string            `json:"logo_url,omitempty"`
	BannerURL   string            `json:"banner_url,omitempty"`
	Industry    string            `json:"industry"`
	FoundedDate string            `json:"founded_date,omitempty"`
	Description string            `json:"description,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

// CompanyForm carries the multipart form fields for company registration and
// update. File parts (logo, banner) are read separately by the handler.
type CompanyForm struct {
	CompanyName string `form:"company_name"`
	Address     string `form:"address"`
	City        string `form:"city"`
	State       string `form:"state"`
	Country     string `form:"country"`
	PostalCode  string `form:"postal_code"`
	Website     string `form:"website"`
	Industry    string `form:"industry"`
	FoundedDate string `form:"founded_date"`
	Description string `form:"description"`
	SocialLinks string `form:"social_links"`
}

// UploadResponse carries the public URL of a freshly stored image.
type UploadResponse struct {
	URL string `json:"url"`
}
