package generation

import (
	"fmt"
	"strings"

	"github.com/admin/web-apps/banner-ai/internal/domain"
)

// BuildPrompt текст запроса к генератору из полей профиля и описания стиля
func BuildPrompt(data domain.BannerData, style domain.Style) string {
	var b strings.Builder

	b.WriteString("A professional LinkedIn banner, size 1584x396.\n")
	fmt.Fprintf(&b, "Style: %s\n", style.Description)
	b.WriteString("The text is on the right side.\n")
	fmt.Fprintf(&b, "Main title in bold premium font: '%s'.\n", strings.TrimSpace(data.Name))
	if title := strings.TrimSpace(data.Title); title != "" {
		fmt.Fprintf(&b, "Subtitle: '%s'.\n", title)
	}
	if tagline := strings.TrimSpace(data.Tagline); tagline != "" {
		fmt.Fprintf(&b, "Tagline: '%s'.\n", tagline)
	}

	var contacts []string
	if phone := strings.TrimSpace(data.Phone); phone != "" {
		contacts = append(contacts, fmt.Sprintf("'WhatsApp: %s'", phone))
	}
	if email := strings.TrimSpace(data.Email); email != "" {
		contacts = append(contacts, fmt.Sprintf("'Email: %s'", email))
	}
	if len(contacts) > 0 {
		fmt.Fprintf(&b, "In a sleek contact box at the bottom right, list: %s.\n", strings.Join(contacts, " and "))
	}

	b.WriteString("The left 30% of the image is empty to accommodate the profile picture.\n")
	b.WriteString("High-end, enterprise consultant branding, cinematic lighting.")

	if custom := strings.TrimSpace(data.CustomPrompt); custom != "" {
		fmt.Fprintf(&b, "\nAdditional instructions: %s", custom)
	}
	return b.String()
}
