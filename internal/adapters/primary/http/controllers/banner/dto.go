package bannerController

import "github.com/admin/web-apps/banner-ai/internal/domain"

type GenerateRequest struct {
	Name         string `json:"name" binding:"required"`
	Title        string `json:"title"`
	Tagline      string `json:"tagline"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Style        string `json:"style"`
	CustomPrompt string `json:"customPrompt"`
}

func (r GenerateRequest) toDomain() domain.BannerData {
	return domain.BannerData{
		Name:         r.Name,
		Title:        r.Title,
		Tagline:      r.Tagline,
		Email:        r.Email,
		Phone:        r.Phone,
		Style:        r.Style,
		CustomPrompt: r.CustomPrompt,
	}
}

type GenerateResponse struct {
	Image        string `json:"image"`
	FileName     string `json:"file_name"`
	Count        int64  `json:"count"`
	QuotaSkipped bool   `json:"quota_skipped,omitempty"`
	ArchiveURL   string `json:"archive_url,omitempty"`
}

type StylesResponse struct {
	Styles []domain.Style `json:"styles"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
