package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/worldsell/internal/paymentprovider"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("printProviders", func() {
	It("should say so when nothing serves the country", func() {
		var buf bytes.Buffer
		err := printProviders(&buf, &paymentprovider.EligibleProvidersResponse{
			Country:   "ZZ",
			Method:    "mobile",
			Providers: []paymentprovider.ProviderResponse{},
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(Equal("no providers available for ZZ / mobile\n"))
	})

	It("should print one aligned row per provider", func() {
		result := &paymentprovider.EligibleProvidersResponse{
			Country: "NG",
			Method:  "card",
			Providers: paymentprovider.ToProviderResponses(
				paymentprovider.DefaultCatalog().Resolve("NG", paymentprovider.PaymentTypeCard),
			),
		}

		var buf bytes.Buffer
		Expect(printProviders(&buf, result)).To(Succeed())

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		Expect(lines).To(HaveLen(3))
		Expect(strings.Fields(lines[0])).To(Equal([]string{"ID", "NAME", "METHODS"}))
		Expect(lines[1]).To(HavePrefix("flutterwave"))
		Expect(lines[1]).To(ContainSubstring("card, bank_transfer, mobile_money, ussd"))
		Expect(lines[2]).To(HavePrefix("paystack"))
		Expect(strings.Index(lines[1], "Flutterwave")).To(Equal(strings.Index(lines[0], "NAME")))
	})
})

var _ = Describe("resolve command", func() {
	It("should print the eligible providers as JSON", func() {
		GinkgoT().Setenv("APP_ENV", "")
		GinkgoT().Setenv("DOCKER_ENV", "")

		dir := GinkgoT().TempDir()
		config := "catalog:\n  source: builtin\nobservability:\n  logging:\n    level: error\n    format: text\n"
		Expect(os.WriteFile(filepath.Join(dir, "config.yml"), []byte(config), 0o644)).To(Succeed())

		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"resolve", "--config", dir, "--country", "SN", "--method", "mobile", "--json"})
		DeferCleanup(func() {
			rootCmd.SetOut(nil)
			rootCmd.SetArgs(nil)
			resolveJSON = false
		})

		Expect(rootCmd.Execute()).To(Succeed())

		var result paymentprovider.EligibleProvidersResponse
		Expect(json.Unmarshal(out.Bytes(), &result)).To(Succeed())
		ids := make([]string, len(result.Providers))
		for i, p := range result.Providers {
			ids[i] = p.ID
		}
		Expect(ids).To(Equal([]string{"paydunya", "cinetpay", "flutterwave", "orange_money", "wave"}))
	})
})
