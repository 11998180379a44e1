package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/frahmantamala/worldsell/internal"
	"github.com/frahmantamala/worldsell/internal/paymentprovider"
	"github.com/frahmantamala/worldsell/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var (
	resolveCountry string
	resolveMethod  string
	resolveJSON    bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "List the providers serving a country for a payment category",
	Example: `  worldsell resolve --country SN --method mobile
  worldsell resolve -C GH -m card --json`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveCountry, "country", "C", "", "country code, e.g. SN")
	resolveCmd.Flags().StringVarP(&resolveMethod, "method", "m", "", "payment category: mobile, bank, card or transfer")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "print the result as JSON")
	_ = resolveCmd.MarkFlagRequired("country")
	_ = resolveCmd.MarkFlagRequired("method")
}

func runResolve(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	var db *sqlx.DB
	if cfg.Catalog.Source == internal.CatalogSourceDatabase {
		if db, err = initDB(cfg.Database); err != nil {
			return err
		}
		defer db.Close()
	}

	loader, err := newCatalogLoader(cfg.Catalog, db)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), initialLoadTimeout)
	defer cancel()
	catalog, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	svc := paymentprovider.NewService(paymentprovider.NewStaticStore(catalog, logger.L()), logger.L())
	result, err := svc.ResolveProviders(paymentprovider.ResolveRequest{
		Country: resolveCountry,
		Method:  resolveMethod,
	})
	if err != nil {
		return err
	}

	if resolveJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printProviders(cmd.OutOrStdout(), result)
}

func printProviders(w io.Writer, result *paymentprovider.EligibleProvidersResponse) error {
	if len(result.Providers) == 0 {
		_, err := fmt.Fprintf(w, "no providers available for %s / %s\n", result.Country, result.Method)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMETHODS")
	for _, p := range result.Providers {
		methods := make([]string, len(p.SupportedMethods))
		for i, m := range p.SupportedMethods {
			methods[i] = m.ID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, strings.Join(methods, ", "))
	}
	return tw.Flush()
}
