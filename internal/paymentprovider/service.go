package paymentprovider

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/worldsell/internal"
	"github.com/frahmantamala/worldsell/internal/core/common/validation"
)

// CatalogSource is satisfied by *Store.
type CatalogSource interface {
	Current() *Catalog
	Reload(ctx context.Context) (*Catalog, error)
	LoadedAt() time.Time
}

type Service struct {
	source CatalogSource
	logger *slog.Logger
}

func NewService(source CatalogSource, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
	}
}

func (s *Service) catalog() (*Catalog, error) {
	catalog := s.source.Current()
	if catalog == nil {
		s.logger.Error("payment catalog requested before it was loaded")
		return nil, internal.ErrCatalogUnavailable
	}
	return catalog, nil
}

func (s *Service) ListCountries() ([]CountryResponse, error) {
	catalog, err := s.catalog()
	if err != nil {
		return nil, err
	}

	countries := catalog.Countries()
	responses := make([]CountryResponse, len(countries))
	for i, c := range countries {
		responses[i] = ToCountryResponse(c)
	}
	return responses, nil
}

func (s *Service) GetCountry(code string) (*CountryResponse, error) {
	catalog, err := s.catalog()
	if err != nil {
		return nil, err
	}

	country, ok := catalog.Country(code)
	if !ok {
		return nil, internal.ErrCountryNotFound
	}
	response := ToCountryResponse(country)
	return &response, nil
}

func (s *Service) ListProviders() ([]ProviderResponse, error) {
	catalog, err := s.catalog()
	if err != nil {
		return nil, err
	}
	return ToProviderResponses(catalog.Providers()), nil
}

func (s *Service) GetProvider(id string) (*ProviderResponse, error) {
	catalog, err := s.catalog()
	if err != nil {
		return nil, err
	}

	provider, ok := catalog.Provider(id)
	if !ok {
		return nil, internal.ErrProviderNotFound
	}
	response := ToProviderResponse(provider)
	return &response, nil
}

// ResolveProviders returns the providers eligible for a country and payment category.
// An empty list is a valid answer, not an error.
func (s *Service) ResolveProviders(req ResolveRequest) (*EligibleProvidersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	catalog, err := s.catalog()
	if err != nil {
		return nil, err
	}

	method := PaymentType(req.Method)
	if _, known := ParsePaymentType(req.Method); !known {
		s.logger.Debug("unknown payment category, no provider can match", "method", req.Method)
	}

	providers := catalog.Resolve(req.Country, method)

	s.logger.Info("resolved payment providers",
		"country", req.Country,
		"method", req.Method,
		"count", len(providers))

	return &EligibleProvidersResponse{
		Country:   req.Country,
		Method:    req.Method,
		Providers: ToProviderResponses(providers),
	}, nil
}

func (s *Service) AvailablePaymentTypes(country string) (*PaymentTypesResponse, error) {
	if appErr := validation.ValidateCountryCode("country", country); appErr != nil {
		return nil, appErr
	}

	catalog, err := s.catalog()
	if err != nil {
		return nil, err
	}

	types := catalog.AvailableTypes(country)
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return &PaymentTypesResponse{Country: country, PaymentTypes: names}, nil
}

func (s *Service) CatalogStatus() (*CatalogStatusResponse, error) {
	catalog, err := s.catalog()
	if err != nil {
		return nil, err
	}
	countries, providers := catalog.Size()
	return &CatalogStatusResponse{
		Countries: countries,
		Providers: providers,
		LoadedAt:  s.source.LoadedAt(),
	}, nil
}

func (s *Service) ReloadCatalog(ctx context.Context) (*CatalogStatusResponse, error) {
	catalog, err := s.source.Reload(ctx)
	if err != nil {
		s.logger.Error("catalog reload requested but failed", "error", err)
		if appErr, ok := internal.IsAppError(err); ok && appErr.Code == internal.ErrCodeInvalidCatalog {
			return nil, internal.NewUnprocessableError("catalog source returned an invalid catalog", internal.ErrCodeInvalidCatalog, err)
		}
		return nil, internal.NewExternalError("failed to reload payment catalog", internal.ErrCodeCatalogReloadFailed, err)
	}

	countries, providers := catalog.Size()
	return &CatalogStatusResponse{
		Countries: countries,
		Providers: providers,
		LoadedAt:  s.source.LoadedAt(),
	}, nil
}
