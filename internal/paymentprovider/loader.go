package paymentprovider

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader sources a catalog. Implementations return only validated catalogs.
type Loader interface {
	Load(ctx context.Context) (*Catalog, error)
}

type LoaderFunc func(ctx context.Context) (*Catalog, error)

func (f LoaderFunc) Load(ctx context.Context) (*Catalog, error) {
	return f(ctx)
}

type BuiltinLoader struct{}

func (BuiltinLoader) Load(_ context.Context) (*Catalog, error) {
	catalog := DefaultCatalog()
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// FileLoader reads the catalog from a YAML document on disk.
type FileLoader struct {
	Path string
}

type catalogDocument struct {
	Countries []countryDocument  `yaml:"countries"`
	Providers []providerDocument `yaml:"providers"`
}

type countryDocument struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type providerDocument struct {
	ID                 string           `yaml:"id"`
	Name               string           `yaml:"name"`
	Logo               string           `yaml:"logo"`
	SupportedCountries []string         `yaml:"supported_countries"`
	SupportedMethods   []methodDocument `yaml:"supported_methods"`
}

type methodDocument struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

func (l FileLoader) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", l.Path, err)
	}
	return catalog, nil
}

// ParseCatalog decodes and validates a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	countries := make([]Country, len(doc.Countries))
	for i, c := range doc.Countries {
		countries[i] = Country{Code: c.Code, Name: c.Name}
	}

	providers := make([]PaymentProvider, len(doc.Providers))
	for i, p := range doc.Providers {
		methods := make([]PaymentMethod, len(p.SupportedMethods))
		for j, m := range p.SupportedMethods {
			methods[j] = PaymentMethod{ID: m.ID, Name: m.Name, Icon: m.Icon}
		}
		providers[i] = PaymentProvider{
			ID:                 p.ID,
			Name:               p.Name,
			Logo:               p.Logo,
			SupportedCountries: p.SupportedCountries,
			SupportedMethods:   methods,
		}
	}

	catalog := NewCatalog(countries, providers)
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// MarshalCatalog encodes a catalog in the format FileLoader reads.
func MarshalCatalog(catalog *Catalog) ([]byte, error) {
	var doc catalogDocument
	for _, c := range catalog.Countries() {
		doc.Countries = append(doc.Countries, countryDocument{Code: c.Code, Name: c.Name})
	}
	for _, p := range catalog.Providers() {
		pd := providerDocument{
			ID:                 p.ID,
			Name:               p.Name,
			Logo:               p.Logo,
			SupportedCountries: p.SupportedCountries,
		}
		for _, m := range p.SupportedMethods {
			pd.SupportedMethods = append(pd.SupportedMethods, methodDocument{ID: m.ID, Name: m.Name, Icon: m.Icon})
		}
		doc.Providers = append(doc.Providers, pd)
	}
	return yaml.Marshal(&doc)
}

func WriteCatalogFile(path string, catalog *Catalog) error {
	data, err := MarshalCatalog(catalog)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}
