package paymentprovider

import (
	"time"

	"github.com/frahmantamala/worldsell/internal/core/common/validation"
)

type CountryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type CountriesResponse struct {
	Countries []CountryResponse `json:"countries"`
}

type PaymentMethodResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type ProviderResponse struct {
	ID                 string                  `json:"id"`
	Name               string                  `json:"name"`
	Logo               string                  `json:"logo"`
	SupportedCountries []string                `json:"supported_countries"`
	SupportedMethods   []PaymentMethodResponse `json:"supported_methods"`
}

type ProvidersResponse struct {
	Providers []ProviderResponse `json:"providers"`
}

type EligibleProvidersResponse struct {
	Country   string             `json:"country"`
	Method    string             `json:"method"`
	Providers []ProviderResponse `json:"providers"`
}

type PaymentTypesResponse struct {
	Country      string   `json:"country"`
	PaymentTypes []string `json:"payment_types"`
}

type CatalogStatusResponse struct {
	Countries int       `json:"countries"`
	Providers int       `json:"providers"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// ResolveRequest carries the query of an eligibility lookup.
type ResolveRequest struct {
	Country string `json:"country"`
	Method  string `json:"method"`
}

// Validate checks presence and shape only. The country code is not upper-cased and an
// unrecognized method is not an error: both simply resolve to no providers.
func (r *ResolveRequest) Validate() error {
	validator := validation.NewValidator()

	validator.Field("country", r.Country).Required().MinLength(2).MaxLength(2).Letters()
	validator.Field("method", r.Method).Required().MaxLength(32)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func ToCountryResponse(c Country) CountryResponse {
	return CountryResponse{Code: c.Code, Name: c.Name}
}

func ToProviderResponse(p PaymentProvider) ProviderResponse {
	methods := make([]PaymentMethodResponse, len(p.SupportedMethods))
	for i, m := range p.SupportedMethods {
		methods[i] = PaymentMethodResponse{ID: m.ID, Name: m.Name, Icon: m.Icon}
	}
	countries := make([]string, len(p.SupportedCountries))
	copy(countries, p.SupportedCountries)
	return ProviderResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Logo:               p.Logo,
		SupportedCountries: countries,
		SupportedMethods:   methods,
	}
}

func ToProviderResponses(providers []PaymentProvider) []ProviderResponse {
	out := make([]ProviderResponse, len(providers))
	for i, p := range providers {
		out[i] = ToProviderResponse(p)
	}
	return out
}

