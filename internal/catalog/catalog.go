package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"essay-scorer/internal/domain"
)

//go:embed ielts.yaml
var ieltsCatalog []byte

// Catalog es la lista ordenada y versionada de rasgos que se evaluan en cada request.
type Catalog struct {
	Version string             `yaml:"version"`
	Traits  []domain.TraitSpec `yaml:"traits"`
}

var (
	ErrEmptyCatalog   = errors.New("catalog has no traits")
	ErrBlankTraitName = errors.New("trait name is blank")
	ErrDuplicateTrait = errors.New("duplicate trait name")
)

// Default devuelve el catalogo IELTS embebido en el binario.
func Default() (Catalog, error) {
	return Parse(ieltsCatalog)
}

// Load lee un catalogo YAML desde disco.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodifica y valida un catalogo.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	for i := range c.Traits {
		c.Traits[i].Name = strings.TrimSpace(c.Traits[i].Name)
		c.Traits[i].Description = strings.TrimSpace(c.Traits[i].Description)
		c.Traits[i].Rubric = strings.TrimSpace(c.Traits[i].Rubric)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate exige al menos un rasgo y nombres unicos, que son la clave de agregacion.
func (c Catalog) Validate() error {
	if len(c.Traits) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]struct{}, len(c.Traits))
	for i, t := range c.Traits {
		if t.Name == "" {
			return fmt.Errorf("trait #%d: %w", i, ErrBlankTraitName)
		}
		if _, ok := seen[t.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateTrait, t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return nil
}

// Names devuelve los nombres de rasgo en orden de catalogo.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c.Traits))
	for _, t := range c.Traits {
		names = append(names, t.Name)
	}
	return names
}

// FromPath carga el catalogo de path, o el embebido si path esta vacio.
func FromPath(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return Load(path)
}
