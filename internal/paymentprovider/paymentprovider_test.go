package paymentprovider_test

import (
	"strings"

	"github.com/frahmantamala/worldsell/internal/paymentprovider"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func providerIDs(providers []paymentprovider.PaymentProvider) []string {
	ids := make([]string, len(providers))
	for i, p := range providers {
		ids[i] = p.ID
	}
	return ids
}

var _ = Describe("Resolve", func() {
	var catalog *paymentprovider.Catalog

	BeforeEach(func() {
		catalog = paymentprovider.DefaultCatalog()
		Expect(catalog.Validate()).To(Succeed())
	})

	It("should include mobile money providers for SN and exclude cash-only providers", func() {
		ids := providerIDs(catalog.Resolve("SN", paymentprovider.PaymentTypeMobile))

		Expect(ids).To(ContainElements("paydunya", "orange_money"))
		Expect(ids).NotTo(ContainElement("western_union"))
		Expect(ids).NotTo(ContainElement("express_cash"))
	})

	It("should include card providers for NG and exclude providers not serving NG", func() {
		ids := providerIDs(catalog.Resolve("NG", paymentprovider.PaymentTypeCard))

		Expect(ids).To(ContainElement("flutterwave"))
		Expect(ids).NotTo(ContainElement("mtn_momo"))
	})

	It("should return an empty, non-nil list for an unserved country", func() {
		providers := catalog.Resolve("ZZ", paymentprovider.PaymentTypeMobile)

		Expect(providers).NotTo(BeNil())
		Expect(providers).To(BeEmpty())
	})

	It("should fail closed on an unrecognized category", func() {
		providers := catalog.Resolve("SN", paymentprovider.PaymentType("unknown_category"))

		Expect(providers).NotTo(BeNil())
		Expect(providers).To(BeEmpty())
	})

	It("should not normalize the country code case", func() {
		Expect(catalog.Resolve("sn", paymentprovider.PaymentTypeMobile)).To(BeEmpty())
		Expect(catalog.Resolve("SN", paymentprovider.PaymentTypeMobile)).NotTo(BeEmpty())
	})

	It("should return identical results on repeated calls", func() {
		first := catalog.Resolve("CI", paymentprovider.PaymentTypeTransfer)
		second := catalog.Resolve("CI", paymentprovider.PaymentTypeTransfer)

		Expect(second).To(Equal(first))
	})

	It("should preserve the provider table order", func() {
		all := providerIDs(catalog.Providers())

		for _, country := range catalog.Countries() {
			for _, t := range paymentprovider.PaymentTypes() {
				ids := providerIDs(catalog.Resolve(country.Code, t))

				last := -1
				for _, id := range ids {
					idx := indexOf(all, id)
					Expect(idx).To(BeNumerically(">", last), "country %s type %s", country.Code, t)
					last = idx
				}
			}
		}
	})

	It("should include every provider serving the country with a matching method id", func() {
		ids := providerIDs(catalog.Resolve("SN", paymentprovider.PaymentTypeMobile))

		for _, p := range catalog.Providers() {
			if !p.SupportsCountry("SN") {
				continue
			}
			for _, m := range p.SupportedMethods {
				if strings.Contains(m.ID, "mobile") {
					Expect(ids).To(ContainElement(p.ID))
				}
			}
		}
	})

	It("should return nothing for any category in a country no provider lists", func() {
		for _, t := range paymentprovider.PaymentTypes() {
			Expect(catalog.Resolve("AQ", t)).To(BeEmpty())
		}
	})

	It("should skip providers without countries or methods", func() {
		providers := []paymentprovider.PaymentProvider{
			{ID: "no_countries", SupportedMethods: []paymentprovider.PaymentMethod{{ID: "card"}}},
			{ID: "no_methods", SupportedCountries: []string{"SN"}},
			{ID: "ok", SupportedCountries: []string{"SN"}, SupportedMethods: []paymentprovider.PaymentMethod{{ID: "card"}}},
		}

		Expect(providerIDs(paymentprovider.Resolve(providers, "SN", paymentprovider.PaymentTypeCard))).To(Equal([]string{"ok"}))
		Expect(paymentprovider.Resolve(nil, "SN", paymentprovider.PaymentTypeCard)).To(BeEmpty())
	})

	It("should not let callers mutate the catalog through results", func() {
		providers := catalog.Resolve("SN", paymentprovider.PaymentTypeMobile)
		providers[0].SupportedCountries[0] = "XX"
		providers[0].SupportedMethods[0].ID = "tampered"

		again := catalog.Resolve("SN", paymentprovider.PaymentTypeMobile)
		Expect(again[0].SupportedCountries[0]).NotTo(Equal("XX"))
		Expect(again[0].SupportedMethods[0].ID).NotTo(Equal("tampered"))
	})
})

var _ = Describe("PaymentMethod", func() {
	DescribeTable("category matching on method id",
		func(id string, t paymentprovider.PaymentType, expected bool) {
			Expect(paymentprovider.PaymentMethod{ID: id}.Matches(t)).To(Equal(expected))
		},
		Entry("mobile_money is mobile", "mobile_money", paymentprovider.PaymentTypeMobile, true),
		Entry("orange_money is mobile", "orange_money", paymentprovider.PaymentTypeMobile, true),
		Entry("mtn_momo is mobile", "mtn_momo", paymentprovider.PaymentTypeMobile, true),
		Entry("wave_mobile is mobile", "wave_mobile", paymentprovider.PaymentTypeMobile, true),
		Entry("card is not mobile", "card", paymentprovider.PaymentTypeMobile, false),
		Entry("bank_transfer is bank", "bank_transfer", paymentprovider.PaymentTypeBank, true),
		Entry("bank_transfer is transfer", "bank_transfer", paymentprovider.PaymentTypeTransfer, true),
		Entry("bank_account is not transfer", "bank_account", paymentprovider.PaymentTypeTransfer, false),
		Entry("card is card", "card", paymentprovider.PaymentTypeCard, true),
		Entry("cash_pickup matches nothing", "cash_pickup", paymentprovider.PaymentTypeBank, false),
		Entry("ussd matches nothing", "ussd", paymentprovider.PaymentTypeCard, false),
		Entry("unknown category never matches", "mobile_money", paymentprovider.PaymentType("crypto"), false),
		Entry("matching is case sensitive", "CARD", paymentprovider.PaymentTypeCard, false),
	)

	It("should parse only the four categories", func() {
		for _, t := range paymentprovider.PaymentTypes() {
			parsed, ok := paymentprovider.ParsePaymentType(t.String())
			Expect(ok).To(BeTrue())
			Expect(parsed).To(Equal(t))
		}

		_, ok := paymentprovider.ParsePaymentType("Mobile")
		Expect(ok).To(BeFalse())
	})
})

func indexOf(ids []string, id string) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}
