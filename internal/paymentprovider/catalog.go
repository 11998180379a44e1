package paymentprovider

import (
	"errors"
	"fmt"

	apperrors "github.com/frahmantamala/worldsell/internal"
)

// Catalog is an immutable snapshot of the country and provider tables.
// Accessors hand out copies so callers cannot mutate a published snapshot.
type Catalog struct {
	countries []Country
	providers []PaymentProvider
}

func NewCatalog(countries []Country, providers []PaymentProvider) *Catalog {
	c := &Catalog{
		countries: make([]Country, len(countries)),
		providers: make([]PaymentProvider, len(providers)),
	}
	copy(c.countries, countries)
	for i, p := range providers {
		c.providers[i] = p.clone()
	}
	return c
}

// Validate checks the table invariants. Loaders call it before publishing a catalog.
func (c *Catalog) Validate() error {
	var errs []error

	countryCodes := make(map[string]struct{}, len(c.countries))
	for i, country := range c.countries {
		if country.Code == "" {
			errs = append(errs, fmt.Errorf("country #%d has no code", i))
			continue
		}
		if _, dup := countryCodes[country.Code]; dup {
			errs = append(errs, fmt.Errorf("duplicate country code %q", country.Code))
		}
		countryCodes[country.Code] = struct{}{}
	}

	providerIDs := make(map[string]struct{}, len(c.providers))
	for i := range c.providers {
		p := &c.providers[i]
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
		for _, code := range p.SupportedCountries {
			if _, known := countryCodes[code]; !known {
				errs = append(errs, fmt.Errorf("provider %q supports unknown country %q", p.ID, code))
			}
		}
		if p.ID == "" {
			continue
		}
		if _, dup := providerIDs[p.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate provider id %q", p.ID))
		}
		providerIDs[p.ID] = struct{}{}
	}

	if len(errs) == 0 {
		return nil
	}
	return apperrors.NewValidationError("payment catalog is invalid", apperrors.ErrCodeInvalidCatalog).
		WithCause(errors.Join(errs...))
}

func (c *Catalog) Countries() []Country {
	out := make([]Country, len(c.countries))
	copy(out, c.countries)
	return out
}

func (c *Catalog) Providers() []PaymentProvider {
	out := make([]PaymentProvider, len(c.providers))
	for i, p := range c.providers {
		out[i] = p.clone()
	}
	return out
}

func (c *Catalog) Country(code string) (Country, bool) {
	for _, country := range c.countries {
		if country.Code == code {
			return country, true
		}
	}
	return Country{}, false
}

func (c *Catalog) Provider(id string) (PaymentProvider, bool) {
	for _, p := range c.providers {
		if p.ID == id {
			return p.clone(), true
		}
	}
	return PaymentProvider{}, false
}

func (c *Catalog) Resolve(countryCode string, method PaymentType) []PaymentProvider {
	return Resolve(c.providers, countryCode, method)
}

func (c *Catalog) ProvidersForCountry(countryCode string) []PaymentProvider {
	out := make([]PaymentProvider, 0)
	for _, p := range c.providers {
		if p.SupportsCountry(countryCode) {
			out = append(out, p.clone())
		}
	}
	return out
}

// AvailableTypes lists the categories that resolve to at least one provider for the country.
func (c *Catalog) AvailableTypes(countryCode string) []PaymentType {
	types := make([]PaymentType, 0, len(categoryKeywords))
	for _, t := range PaymentTypes() {
		for i := range c.providers {
			p := &c.providers[i]
			if p.SupportsCountry(countryCode) && p.OffersType(t) {
				types = append(types, t)
				break
			}
		}
	}
	return types
}

func (c *Catalog) Size() (countries, providers int) {
	return len(c.countries), len(c.providers)
}
