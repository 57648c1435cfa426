package domain

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

// DefaultAspectRatio баннер широкий, 16:9 ближе всего к 1584x396 из поддерживаемых моделью
const DefaultAspectRatio = "16:9"

// BannerData поля профиля, из которых собирается промпт
type BannerData struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Tagline      string `json:"tagline"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Style        string `json:"style"`
	CustomPrompt string `json:"customPrompt,omitempty"`
}

// Style визуальный стиль баннера из каталога
type Style struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// GeneratedImage картинка, которую вернул генератор
type GeneratedImage struct {
	MimeType string
	Data     []byte
}

// DataURL кодирует картинку в data:<mime>;base64,...
func (i *GeneratedImage) DataURL() string {
	mime := i.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(i.Data))
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// FileName имя файла для скачивания: linkedin-banner-<имя-через-дефис>.png
// В slug остаются только [a-z0-9-], разделители пути туда не попадают
func (i *GeneratedImage) FileName(name string) string {
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		slug = "banner"
	}
	return fmt.Sprintf("linkedin-banner-%s.png", slug)
}
