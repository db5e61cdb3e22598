package storage

import (
	"context"
	"regexp"
	"strings"

	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
	"github.com/yourusername/chassis-price-bot/internal/domain/repository"
)

type memoryCatalogRepository struct {
	vehicles []entity.Vehicle
	byCode   map[string]int
}

// NewMemoryCatalogRepository statik katalog yaratish. Vehicles startdan keyin o'zgarmaydi.
func NewMemoryCatalogRepository(vehicles []entity.Vehicle) repository.CatalogRepository {
	m := &memoryCatalogRepository{
		vehicles: make([]entity.Vehicle, len(vehicles)),
		byCode:   make(map[string]int, len(vehicles)),
	}
	copy(m.vehicles, vehicles)
	for i, v := range m.vehicles {
		code := entity.NormalizeChassis(v.ChassisCode)
		m.vehicles[i].ChassisCode = code
		if _, exists := m.byCode[code]; !exists {
			m.byCode[code] = i
		}
	}
	return m
}

// FindByCode chassis bo'yicha aniq qidiruv
func (m *memoryCatalogRepository) FindByCode(ctx context.Context, code string) (*entity.Vehicle, bool) {
	i, ok := m.byCode[entity.NormalizeChassis(code)]
	if !ok {
		return nil, false
	}
	v := m.vehicles[i]
	return &v, true
}

var modelNormalizeRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normalizeModelQuery drops everything but letters and digits so "xtrail" matches "X-TRAIL".
func normalizeModelQuery(s string) string {
	return modelNormalizeRe.ReplaceAllString(strings.ToLower(s), "")
}

// FindByModel model nomi bo'yicha substring qidiruv
func (m *memoryCatalogRepository) FindByModel(ctx context.Context, query string) []entity.Vehicle {
	q := normalizeModelQuery(query)
	if q == "" {
		return []entity.Vehicle{}
	}
	out := []entity.Vehicle{}
	for _, v := range m.vehicles {
		if strings.Contains(normalizeModelQuery(v.ModelName), q) {
			out = append(out, v)
		}
	}
	return out
}

// All returns a copy of the catalog in load order.
func (m *memoryCatalogRepository) All(ctx context.Context) []entity.Vehicle {
	out := make([]entity.Vehicle, len(m.vehicles))
	copy(out, m.vehicles)
	return out
}
