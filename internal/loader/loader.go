package loader

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/ascension/internal/models"
)

//go:embed data/catalog.yaml
var embeddedData embed.FS

const defaultCatalogPath = "data/catalog.yaml"

// CatalogDocument is the on-disk layout of a catalog file
type CatalogDocument struct {
	Resources    []ResourceEntry   `json:"resources" yaml:"resources"`
	Buildings    []BuildingEntry   `json:"buildings" yaml:"buildings"`
	Technologies []TechnologyEntry `json:"technologies" yaml:"technologies"`
}

// ResourceEntry describes a resource type's display data
type ResourceEntry struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// BuildingEntry describes a purchasable building
type BuildingEntry struct {
	ID             string             `json:"id" yaml:"id"`
	Name           string             `json:"name" yaml:"name"`
	Description    string             `json:"description,omitempty" yaml:"description,omitempty"`
	Icon           string             `json:"icon,omitempty" yaml:"icon,omitempty"`
	BaseCost       map[string]int     `json:"base_cost" yaml:"base_cost"`
	BaseProduction map[string]float64 `json:"base_production" yaml:"base_production"`
	EraRequired    string             `json:"era_required" yaml:"era_required" jsonschema:"enum=stone,enum=bronze,enum=iron,enum=medieval,enum=industrial,enum=modern,enum=digital,enum=space,enum=future,enum=transcendence"`
}

// TechnologyEntry describes a researchable technology
type TechnologyEntry struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Cost        map[string]int `json:"cost" yaml:"cost"`
	EraRequired string         `json:"era_required" yaml:"era_required" jsonschema:"enum=stone,enum=bronze,enum=iron,enum=medieval,enum=industrial,enum=modern,enum=digital,enum=space,enum=future,enum=transcendence"`
	UnlocksEra  string         `json:"unlocks_era,omitempty" yaml:"unlocks_era,omitempty" jsonschema:"enum=stone,enum=bronze,enum=iron,enum=medieval,enum=industrial,enum=modern,enum=digital,enum=space,enum=future,enum=transcendence"`
}

// DefaultCatalog loads the catalog embedded in the binary
func DefaultCatalog() (*models.Catalog, error) {
	data, err := embeddedData.ReadFile(defaultCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	return ParseCatalog(data)
}

// MustDefaultCatalog is DefaultCatalog for callers that cannot recover from a
// broken embedded catalog
func MustDefaultCatalog() *models.Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalog loads a catalog file from disk. An empty path selects the
// embedded default.
func LoadCatalog(path string) (*models.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog validates raw YAML against the catalog schema and converts it
// into models
func ParseCatalog(data []byte) (*models.Catalog, error) {
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}

	var doc CatalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	return doc.toModels()
}

func (doc *CatalogDocument) toModels() (*models.Catalog, error) {
	c := &models.Catalog{}

	seenResources := make(map[models.ResourceType]bool)
	for _, raw := range doc.Resources {
		rt := models.ResourceType(raw.Type)
		if !rt.Valid() {
			return nil, fmt.Errorf("unknown resource type %q", raw.Type)
		}
		if seenResources[rt] {
			return nil, fmt.Errorf("duplicate resource %q", raw.Type)
		}
		seenResources[rt] = true
		c.Resources = append(c.Resources, models.ResourceInfo{
			Type: rt,
			Name: raw.Name,
			Icon: raw.Icon,
		})
	}

	seenBuildings := make(map[string]bool)
	for _, raw := range doc.Buildings {
		if seenBuildings[raw.ID] {
			return nil, fmt.Errorf("duplicate building %q", raw.ID)
		}
		seenBuildings[raw.ID] = true

		costs, err := parseCosts(raw.BaseCost)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", raw.ID, err)
		}
		rates, err := parseRates(raw.BaseProduction)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", raw.ID, err)
		}
		era, err := parseEra(raw.EraRequired)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", raw.ID, err)
		}

		c.Buildings = append(c.Buildings, &models.Building{
			ID:             raw.ID,
			Name:           raw.Name,
			Description:    raw.Description,
			Icon:           raw.Icon,
			BaseCost:       costs,
			BaseProduction: rates,
			EraRequired:    era,
			Count:          0,
			Level:          1,
		})
	}

	seenTechs := make(map[string]bool)
	for _, raw := range doc.Technologies {
		if seenTechs[raw.ID] {
			return nil, fmt.Errorf("duplicate technology %q", raw.ID)
		}
		seenTechs[raw.ID] = true

		costs, err := parseCosts(raw.Cost)
		if err != nil {
			return nil, fmt.Errorf("technology %s: %w", raw.ID, err)
		}
		era, err := parseEra(raw.EraRequired)
		if err != nil {
			return nil, fmt.Errorf("technology %s: %w", raw.ID, err)
		}

		tech := &models.Technology{
			ID:          raw.ID,
			Name:        raw.Name,
			Description: raw.Description,
			Cost:        costs,
			EraRequired: era,
		}
		if raw.UnlocksEra != "" {
			unlocks, err := parseEra(raw.UnlocksEra)
			if err != nil {
				return nil, fmt.Errorf("technology %s: %w", raw.ID, err)
			}
			tech.UnlocksEra = unlocks
		}
		c.Technologies = append(c.Technologies, tech)
	}

	return c, nil
}

// Document converts a catalog back into its file layout
func Document(c *models.Catalog) CatalogDocument {
	var doc CatalogDocument
	for _, r := range c.Resources {
		doc.Resources = append(doc.Resources, ResourceEntry{
			Type: string(r.Type),
			Name: r.Name,
			Icon: r.Icon,
		})
	}
	for _, b := range c.Buildings {
		entry := BuildingEntry{
			ID:             b.ID,
			Name:           b.Name,
			Description:    b.Description,
			Icon:           b.Icon,
			BaseCost:       make(map[string]int),
			BaseProduction: make(map[string]float64),
			EraRequired:    string(b.EraRequired),
		}
		b.BaseCost.Each(func(rt models.ResourceType, amount int) {
			entry.BaseCost[string(rt)] = amount
		})
		b.BaseProduction.Each(func(rt models.ResourceType, rate float64) {
			entry.BaseProduction[string(rt)] = rate
		})
		doc.Buildings = append(doc.Buildings, entry)
	}
	for _, t := range c.Technologies {
		entry := TechnologyEntry{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Cost:        make(map[string]int),
			EraRequired: string(t.EraRequired),
			UnlocksEra:  string(t.UnlocksEra),
		}
		t.Cost.Each(func(rt models.ResourceType, amount int) {
			entry.Cost[string(rt)] = amount
		})
		doc.Technologies = append(doc.Technologies, entry)
	}
	return doc
}

func parseCosts(raw map[string]int) (models.Costs, error) {
	costs := make(models.Costs, len(raw))
	for res, amount := range raw {
		rt := models.ResourceType(res)
		if !rt.Valid() {
			return nil, fmt.Errorf("unknown resource type %q in cost", res)
		}
		if amount < 0 {
			return nil, fmt.Errorf("negative cost %d for %s", amount, res)
		}
		costs[rt] = amount
	}
	return costs, nil
}

func parseRates(raw map[string]float64) (models.Rates, error) {
	rates := make(models.Rates, len(raw))
	for res, rate := range raw {
		rt := models.ResourceType(res)
		if !rt.Valid() {
			return nil, fmt.Errorf("unknown resource type %q in production", res)
		}
		if rate < 0 {
			return nil, fmt.Errorf("negative production %f for %s", rate, res)
		}
		rates[rt] = rate
	}
	return rates, nil
}

func parseEra(raw string) (models.Era, error) {
	era := models.Era(raw)
	if !era.Valid() {
		return "", fmt.Errorf("unknown era %q", raw)
	}
	return era, nil
}
