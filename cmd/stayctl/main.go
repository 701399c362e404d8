// The stayctl binary is the operator CLI for the listing-intelligence
// service: it queries the API and injects domain events for backfills.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stayscope/listing-intelligence/internal/config"
	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/messaging/kafka"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/stayscope/listing-intelligence/pkg/client"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "stayctl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var addr string

	root := &cobra.Command{
		Use:           "stayctl",
		Short:         "Operator CLI for the listing-intelligence service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&addr, "addr", "http://localhost:8080", "base URL of the API server")

	api := func() *client.Client { return client.New(addr) }
	root.AddCommand(
		newProfileCmd(api),
		newOwnerCmd(api),
		newMarketCmd(api),
		newEmitCmd(),
		newVersionCmd(),
	)
	return root
}

func newProfileCmd(api func() *client.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and recompute listing profiles",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <listing-id>",
			Short: "Fetch the intelligence profile of a listing",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := api().GetProfile(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), p)
			},
		},
		&cobra.Command{
			Use:   "recompute <listing-id>",
			Short: "Force a fresh profile computation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := api().RecomputeProfile(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), p)
			},
		},
	)
	return cmd
}

func newOwnerCmd(api func() *client.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Owner-level aggregation and recomputation",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "summary <owner-id>",
			Short: "Aggregate an owner's portfolio",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				sum, err := api().OwnerSummary(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), sum)
			},
		},
		&cobra.Command{
			Use:   "recompute <owner-id>",
			Short: "Recompute every listing of an owner",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := api().RecomputeOwner(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			},
		},
	)
	return cmd
}

func newMarketCmd(api func() *client.Client) *cobra.Command {
	var city string
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Show the market overview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ov, err := api().MarketOverview(cmd.Context(), city)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ov)
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "restrict to one city")
	return cmd
}

func newEmitCmd() *cobra.Command {
	var (
		configPath string
		kind       string
		listingID  string
		fields     string
	)
	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Publish a listing domain event (testing and backfills)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				cfg *config.Config
				err error
			)
			if configPath != "" {
				cfg, err = config.Load(configPath)
			} else {
				cfg, err = config.LoadFromEnv()
			}
			if err != nil {
				return err
			}
			logger, err := logging.NewLogger(cfg.Logging)
			if err != nil {
				return err
			}

			var changed []string
			if fields != "" {
				changed = strings.Split(fields, ",")
			}
			ev := listing.NewEvent(listing.EventKind(kind), common.ID(listingID), changed...)

			producer := kafka.NewProducer(cfg.Kafka, logger)
			defer producer.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if err := producer.Publish(ctx, ev); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %s for %s (event %s)\n", kind, listingID, ev.EventID)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to config file (env-only when empty)")
	cmd.Flags().StringVar(&kind, "kind", string(listing.EventListingUpdated), "event kind")
	cmd.Flags().StringVar(&listingID, "listing", "", "listing id (required)")
	cmd.Flags().StringVar(&fields, "fields", "", "comma-separated changed fields for update events")
	_ = cmd.MarkFlagRequired("listing")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
