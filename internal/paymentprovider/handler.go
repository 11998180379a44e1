package paymentprovider

import (
	"context"
	"net/http"

	"github.com/frahmantamala/worldsell/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListCountries() ([]CountryResponse, error)
	GetCountry(code string) (*CountryResponse, error)
	ListProviders() ([]ProviderResponse, error)
	GetProvider(id string) (*ProviderResponse, error)
	ResolveProviders(req ResolveRequest) (*EligibleProvidersResponse, error)
	AvailablePaymentTypes(country string) (*PaymentTypesResponse, error)
	CatalogStatus() (*CatalogStatusResponse, error)
	ReloadCatalog(ctx context.Context) (*CatalogStatusResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetCountries handles GET /countries
func (h *Handler) GetCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.Service.ListCountries()
	if err != nil {
		h.Logger.Error("GetCountries: failed to list countries", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CountriesResponse{Countries: countries})
}

// GetCountry handles GET /countries/{code}
func (h *Handler) GetCountry(w http.ResponseWriter, r *http.Request) {
	country, err := h.Service.GetCountry(chi.URLParam(r, "code"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, country)
}

// GetCountryPaymentTypes handles GET /countries/{code}/payment-types
func (h *Handler) GetCountryPaymentTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.AvailablePaymentTypes(chi.URLParam(r, "code"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, types)
}

// GetProviders handles GET /payment-providers. With country or method in the query it
// behaves like GetEligibleProviders.
func (h *Handler) GetProviders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Has("country") || query.Has("method") {
		h.GetEligibleProviders(w, r)
		return
	}

	providers, err := h.Service.ListProviders()
	if err != nil {
		h.Logger.Error("GetProviders: failed to list providers", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ProvidersResponse{Providers: providers})
}

// GetEligibleProviders handles GET /payment-providers/eligible?country=SN&method=mobile
func (h *Handler) GetEligibleProviders(w http.ResponseWriter, r *http.Request) {
	req := ResolveRequest{
		Country: r.URL.Query().Get("country"),
		Method:  r.URL.Query().Get("method"),
	}

	resp, err := h.Service.ResolveProviders(req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// GetProvider handles GET /payment-providers/{id}
func (h *Handler) GetProvider(w http.ResponseWriter, r *http.Request) {
	provider, err := h.Service.GetProvider(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, provider)
}

// GetCatalogStatus handles GET /admin/catalog
func (h *Handler) GetCatalogStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Service.CatalogStatus()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, status)
}

// ReloadCatalog handles POST /admin/catalog/reload
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	status, err := h.Service.ReloadCatalog(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ReloadCatalog: catalog reloaded",
		"countries", status.Countries,
		"providers", status.Providers)

	h.WriteJSON(w, http.StatusOK, status)
}
