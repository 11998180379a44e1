package paymentprovider_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/frahmantamala/worldsell/internal"
	"github.com/frahmantamala/worldsell/internal/paymentprovider"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Service", func() {
	var (
		ctx     context.Context
		slogger *slog.Logger
		service *paymentprovider.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		slogger = slog.New(slog.NewTextHandler(io.Discard, nil))
		service = paymentprovider.NewService(paymentprovider.NewStaticStore(paymentprovider.DefaultCatalog(), slogger), slogger)
	})

	expectAppError := func(err error, code internal.ErrorCode, status int) {
		Expect(err).To(HaveOccurred())
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(code))
		Expect(appErr.StatusCode).To(Equal(status))
	}

	Describe("ResolveProviders", func() {
		It("should resolve eligible providers", func() {
			resp, err := service.ResolveProviders(paymentprovider.ResolveRequest{Country: "SN", Method: "mobile"})
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.Country).To(Equal("SN"))
			Expect(resp.Method).To(Equal("mobile"))
			ids := make([]string, len(resp.Providers))
			for i, p := range resp.Providers {
				ids[i] = p.ID
			}
			Expect(ids).To(Equal([]string{"paydunya", "cinetpay", "flutterwave", "orange_money", "wave"}))
		})

		It("should answer an unknown method with an empty list", func() {
			resp, err := service.ResolveProviders(paymentprovider.ResolveRequest{Country: "SN", Method: "crypto"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Providers).NotTo(BeNil())
			Expect(resp.Providers).To(BeEmpty())
		})

		It("should answer a lowercase country with an empty list", func() {
			resp, err := service.ResolveProviders(paymentprovider.ResolveRequest{Country: "sn", Method: "mobile"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Providers).To(BeEmpty())
		})

		DescribeTable("should reject malformed requests",
			func(req paymentprovider.ResolveRequest) {
				_, err := service.ResolveProviders(req)
				expectAppError(err, internal.ErrCodeValidationFailed, 400)
			},
			Entry("missing country", paymentprovider.ResolveRequest{Method: "mobile"}),
			Entry("missing method", paymentprovider.ResolveRequest{Country: "SN"}),
			Entry("three letter country", paymentprovider.ResolveRequest{Country: "SEN", Method: "mobile"}),
			Entry("numeric country", paymentprovider.ResolveRequest{Country: "S1", Method: "mobile"}),
		)
	})

	It("should list countries and providers in table order", func() {
		countries, err := service.ListCountries()
		Expect(err).NotTo(HaveOccurred())
		Expect(countries).To(HaveLen(24))
		Expect(countries[0].Code).To(Equal("SN"))

		providers, err := service.ListProviders()
		Expect(err).NotTo(HaveOccurred())
		Expect(providers).To(HaveLen(11))
		Expect(providers[0].ID).To(Equal("paydunya"))
		Expect(providers[10].ID).To(Equal("express_cash"))
	})

	It("should return not found errors for unknown ids", func() {
		_, err := service.GetCountry("ZZ")
		expectAppError(err, internal.ErrCodeCountryNotFound, 404)

		_, err = service.GetProvider("stripe")
		expectAppError(err, internal.ErrCodeProviderNotFound, 404)

		country, err := service.GetCountry("GH")
		Expect(err).NotTo(HaveOccurred())
		Expect(country.Name).To(Equal("Ghana"))
	})

	It("should list the payment types available in a country", func() {
		resp, err := service.AvailablePaymentTypes("KE")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.PaymentTypes).To(Equal([]string{"mobile", "bank", "card", "transfer"}))

		_, err = service.AvailablePaymentTypes("KEN")
		expectAppError(err, internal.ErrCodeValidationFailed, 400)
	})

	It("should report catalog unavailable before the first load", func() {
		unloaded := paymentprovider.NewService(paymentprovider.NewStore(paymentprovider.BuiltinLoader{}, slogger), slogger)

		_, err := unloaded.ListCountries()
		expectAppError(err, internal.ErrCodeCatalogUnavailable, 503)

		_, err = unloaded.ResolveProviders(paymentprovider.ResolveRequest{Country: "SN", Method: "card"})
		expectAppError(err, internal.ErrCodeCatalogUnavailable, 503)

		_, err = unloaded.CatalogStatus()
		expectAppError(err, internal.ErrCodeCatalogUnavailable, 503)
	})

	Describe("ReloadCatalog", func() {
		It("should report the reloaded catalog", func() {
			store := paymentprovider.NewStore(paymentprovider.BuiltinLoader{}, slogger)
			svc := paymentprovider.NewService(store, slogger)

			status, err := svc.ReloadCatalog(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Countries).To(Equal(24))
			Expect(status.Providers).To(Equal(11))
			Expect(status.LoadedAt).To(Equal(store.LoadedAt()))
		})

		It("should map a failing source to a reload error and keep serving", func() {
			fail := false
			store := paymentprovider.NewStore(paymentprovider.LoaderFunc(func(context.Context) (*paymentprovider.Catalog, error) {
				if fail {
					return nil, errors.New("connection refused")
				}
				return paymentprovider.DefaultCatalog(), nil
			}), slogger)
			Expect(store.Load(ctx)).To(Succeed())
			svc := paymentprovider.NewService(store, slogger)

			fail = true
			_, err := svc.ReloadCatalog(ctx)
			expectAppError(err, internal.ErrCodeCatalogReloadFailed, 502)

			status, err := svc.CatalogStatus()
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Providers).To(Equal(11))
		})

		It("should report an invalid source catalog as unprocessable", func() {
			invalid := false
			store := paymentprovider.NewStore(paymentprovider.LoaderFunc(func(context.Context) (*paymentprovider.Catalog, error) {
				if invalid {
					return paymentprovider.ParseCatalog([]byte("providers:\n  - id: empty\n"))
				}
				return paymentprovider.DefaultCatalog(), nil
			}), slogger)
			Expect(store.Load(ctx)).To(Succeed())
			svc := paymentprovider.NewService(store, slogger)

			invalid = true
			_, err := svc.ReloadCatalog(ctx)
			expectAppError(err, internal.ErrCodeInvalidCatalog, 422)

			status, err := svc.CatalogStatus()
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Providers).To(Equal(11))
		})
	})
})
