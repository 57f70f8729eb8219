package barter

import "github.com/yungbote/forcebook-backend/internal/domain"

// Catalog maps item type name to point value.
type Catalog map[string]int

func CatalogOf(templates []*domain.ItemTemplate) Catalog {
	c := make(Catalog, len(templates))
	for _, t := range templates {
		if t == nil {
			continue
		}
		c[t.Name] = t.Points
	}
	return c
}

func (c Catalog) Points(name string) (int, bool) {
	p, ok := c[name]
	return p, ok
}
