package postgres

import (
	"context"
	"errors"
	"fmt"

	datamodel "github.com/frahmantamala/worldsell/internal/core/datamodel/paymentprovider"
	"github.com/frahmantamala/worldsell/internal/paymentprovider"
	"gorm.io/gorm"
)

// ErrEmptyCatalog means migrations ran but the catalog was never seeded.
var ErrEmptyCatalog = errors.New("stored payment catalog is empty, run the seed command")

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var _ paymentprovider.Loader = (*CatalogRepository)(nil)

// Load reads the stored catalog in table order and validates it.
func (r *CatalogRepository) Load(ctx context.Context) (*paymentprovider.Catalog, error) {
	db := r.db.WithContext(ctx)

	var countryRows []datamodel.Country
	if err := db.Order("position ASC").Find(&countryRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load countries: %w", err)
	}

	var providerRows []datamodel.Provider
	if err := db.Order("position ASC").Find(&providerRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load providers: %w", err)
	}
	if len(providerRows) == 0 {
		return nil, ErrEmptyCatalog
	}

	var countryLinks []datamodel.ProviderCountry
	if err := db.Order("provider_id ASC, position ASC").Find(&countryLinks).Error; err != nil {
		return nil, fmt.Errorf("failed to load provider countries: %w", err)
	}

	var methodRows []datamodel.Method
	if err := db.Order("provider_id ASC, position ASC").Find(&methodRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load payment methods: %w", err)
	}

	countriesByProvider := make(map[string][]string, len(providerRows))
	for _, link := range countryLinks {
		countriesByProvider[link.ProviderID] = append(countriesByProvider[link.ProviderID], link.CountryCode)
	}

	methodsByProvider := make(map[string][]paymentprovider.PaymentMethod, len(providerRows))
	for _, m := range methodRows {
		methodsByProvider[m.ProviderID] = append(methodsByProvider[m.ProviderID], paymentprovider.PaymentMethod{
			ID:   m.MethodID,
			Name: m.Name,
			Icon: m.Icon,
		})
	}

	countries := make([]paymentprovider.Country, len(countryRows))
	for i, row := range countryRows {
		countries[i] = paymentprovider.Country{Code: row.Code, Name: row.Name}
	}

	providers := make([]paymentprovider.PaymentProvider, len(providerRows))
	for i, row := range providerRows {
		providers[i] = paymentprovider.PaymentProvider{
			ID:                 row.ProviderID,
			Name:               row.Name,
			Logo:               row.Logo,
			SupportedCountries: countriesByProvider[row.ProviderID],
			SupportedMethods:   methodsByProvider[row.ProviderID],
		}
	}

	catalog := paymentprovider.NewCatalog(countries, providers)
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Save replaces the stored catalog in a single transaction.
func (r *CatalogRepository) Save(ctx context.Context, catalog *paymentprovider.Catalog) error {
	if err := catalog.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearTables(tx); err != nil {
			return err
		}

		for i, c := range catalog.Countries() {
			row := datamodel.Country{Code: c.Code, Name: c.Name, Position: i}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to insert country %s: %w", c.Code, err)
			}
		}

		for i, p := range catalog.Providers() {
			row := datamodel.Provider{ProviderID: p.ID, Name: p.Name, Logo: p.Logo, Position: i}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to insert provider %s: %w", p.ID, err)
			}

			links := make([]datamodel.ProviderCountry, len(p.SupportedCountries))
			for j, code := range p.SupportedCountries {
				links[j] = datamodel.ProviderCountry{ProviderID: p.ID, CountryCode: code, Position: j}
			}
			if err := tx.Create(&links).Error; err != nil {
				return fmt.Errorf("failed to insert countries of provider %s: %w", p.ID, err)
			}

			methods := make([]datamodel.Method, len(p.SupportedMethods))
			for j, m := range p.SupportedMethods {
				methods[j] = datamodel.Method{ProviderID: p.ID, MethodID: m.ID, Name: m.Name, Icon: m.Icon, Position: j}
			}
			if err := tx.Create(&methods).Error; err != nil {
				return fmt.Errorf("failed to insert methods of provider %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// Clear removes every stored catalog row.
func (r *CatalogRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(clearTables)
}

func clearTables(tx *gorm.DB) error {
	for _, model := range []interface{}{&datamodel.Method{}, &datamodel.ProviderCountry{}, &datamodel.Provider{}, &datamodel.Country{}} {
		if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear catalog tables: %w", err)
		}
	}
	return nil
}
