package generation

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/admin/web-apps/banner-ai/internal/domain"
)

//go:embed styles.yaml
var defaultStylesYAML []byte

type catalogFile struct {
	Default string         `yaml:"default"`
	Styles  []domain.Style `yaml:"styles"`
}

// Catalog каталог стилей в порядке объявления
type Catalog struct {
	defaultID string
	styles    []domain.Style
	byID      map[string]domain.Style
}

// DefaultCatalog встроенный каталог из styles.yaml
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultStylesYAML)
}

// ParseCatalog разбирает YAML каталога и проверяет его
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse styles catalog: %w", err)
	}
	if len(file.Styles) == 0 {
		return nil, fmt.Errorf("styles catalog is empty")
	}

	c := &Catalog{
		defaultID: file.Default,
		styles:    make([]domain.Style, 0, len(file.Styles)),
		byID:      make(map[string]domain.Style, len(file.Styles)),
	}
	for i, s := range file.Styles {
		s.ID = strings.TrimSpace(s.ID)
		if s.ID == "" {
			return nil, fmt.Errorf("style #%d has empty id", i)
		}
		if s.Description == "" {
			return nil, fmt.Errorf("style %q has empty description", s.ID)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate style %q", s.ID)
		}
		c.styles = append(c.styles, s)
		c.byID[s.ID] = s
	}

	if c.defaultID == "" {
		c.defaultID = c.styles[0].ID
	}
	if _, ok := c.byID[c.defaultID]; !ok {
		return nil, fmt.Errorf("default style %q is not in catalog", c.defaultID)
	}
	return c, nil
}

// Resolve пустой id означает стиль по умолчанию
func (c *Catalog) Resolve(id string) (domain.Style, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = c.defaultID
	}
	s, ok := c.byID[id]
	if !ok {
		return domain.Style{}, fmt.Errorf("%w: %q", domain.ErrUnknownStyle, id)
	}
	return s, nil
}

func (c *Catalog) List() []domain.Style {
	out := make([]domain.Style, len(c.styles))
	copy(out, c.styles)
	return out
}
