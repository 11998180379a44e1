package paymentprovider_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/frahmantamala/worldsell/internal/paymentprovider"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const sampleCatalog = `
countries:
  - code: SN
    name: Sénégal
  - code: GH
    name: Ghana
providers:
  - id: wave
    name: Wave
    logo: /images/providers/wave.png
    supported_countries: [SN]
    supported_methods:
      - id: wave_mobile
        name: Wave
        icon: smartphone
  - id: flutterwave
    name: Flutterwave
    logo: /images/providers/flutterwave.png
    supported_countries: [GH, SN]
    supported_methods:
      - id: card
        name: Carte bancaire
        icon: credit-card
      - id: mobile_money
        name: Mobile Money
        icon: smartphone
`

var _ = Describe("Catalog loaders", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("ParseCatalog", func() {
		It("should decode a YAML catalog in document order", func() {
			catalog, err := paymentprovider.ParseCatalog([]byte(sampleCatalog))
			Expect(err).NotTo(HaveOccurred())

			Expect(catalog.Countries()).To(Equal([]paymentprovider.Country{
				{Code: "SN", Name: "Sénégal"},
				{Code: "GH", Name: "Ghana"},
			}))
			Expect(providerIDs(catalog.Resolve("SN", paymentprovider.PaymentTypeMobile))).To(Equal([]string{"wave", "flutterwave"}))
			Expect(providerIDs(catalog.Resolve("GH", paymentprovider.PaymentTypeCard))).To(Equal([]string{"flutterwave"}))
		})

		It("should reject malformed YAML", func() {
			_, err := paymentprovider.ParseCatalog([]byte("providers: [unterminated"))
			Expect(err).To(MatchError(ContainSubstring("failed to decode catalog")))
		})

		It("should reject a catalog that breaks the table invariants", func() {
			_, err := paymentprovider.ParseCatalog([]byte(`
providers:
  - id: empty
    name: Empty
`))
			Expect(err).To(MatchError(ContainSubstring(`provider "empty" has no supported countries`)))
		})

		It("should reject duplicate entries inside one provider", func() {
			_, err := paymentprovider.ParseCatalog([]byte(`
countries:
  - code: SN
    name: Sénégal
providers:
  - id: paydunya
    name: PayDunya
    supported_countries: [SN, SN]
    supported_methods:
      - id: card
        name: Carte bancaire
      - id: card
        name: Carte bancaire
`))
			Expect(err).To(MatchError(ContainSubstring(`lists country "SN" twice`)))
			Expect(err).To(MatchError(ContainSubstring(`lists method "card" twice`)))
		})
	})

	Describe("FileLoader", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("should load a catalog file", func() {
			path := filepath.Join(dir, "catalog.yml")
			Expect(os.WriteFile(path, []byte(sampleCatalog), 0o644)).To(Succeed())

			catalog, err := paymentprovider.FileLoader{Path: path}.Load(ctx)
			Expect(err).NotTo(HaveOccurred())

			_, providers := catalog.Size()
			Expect(providers).To(Equal(2))
		})

		It("should fail on a missing file", func() {
			_, err := paymentprovider.FileLoader{Path: filepath.Join(dir, "missing.yml")}.Load(ctx)
			Expect(err).To(MatchError(ContainSubstring("failed to read catalog file")))
		})

		It("should read back what WriteCatalogFile wrote", func() {
			path := filepath.Join(dir, "export.yml")
			original := paymentprovider.DefaultCatalog()
			Expect(paymentprovider.WriteCatalogFile(path, original)).To(Succeed())

			loaded, err := paymentprovider.FileLoader{Path: path}.Load(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Countries()).To(Equal(original.Countries()))
			Expect(loaded.Providers()).To(Equal(original.Providers()))
		})

		It("should honor a cancelled context", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := paymentprovider.FileLoader{Path: "unused"}.Load(cancelled)
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	It("should load the built-in catalog", func() {
		catalog, err := paymentprovider.BuiltinLoader{}.Load(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(catalog.Providers()).To(Equal(paymentprovider.DefaultCatalog().Providers()))
	})
})
