package cli

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"profile_scraper/infrastructure/storage"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Logs in and saves the browser session for later runs.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := start(cmd, "login")
		if err != nil {
			return err
		}
		defer r.close()
		return r.finish(r.runner.Login(cmd.Context(), r.cfg.Credential))
	},
}

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Collects every profile link from the search listing.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := start(cmd, "harvest")
		if err != nil {
			return err
		}
		defer r.close()

		links := storage.NewLinkFile(filepath.Join(r.outDir, storage.LinksFileName))
		_, err = r.runner.Harvest(cmd.Context(), r.cfg.Credential, links)
		return r.finish(errors.Join(err, links.Close()))
	},
}

var extractLinks *string

var extractCmd = &cobra.Command{
	Use:   "extract --links <path/to/Profile Links.CSV>",
	Short: "Visits every harvested link and writes one profile row per link.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := start(cmd, "extract")
		if err != nil {
			return err
		}
		defer r.close()

		records := storage.NewProfileFile(filepath.Join(r.outDir, storage.ProfilesFileName))
		skips := storage.NewSkipLedger(r.outDir)
		_, err = r.runner.Extract(cmd.Context(), r.cfg.Credential, storage.NewLinkSource(*extractLinks), records, skips)
		return r.finish(errors.Join(err, records.Close(), skips.Close()))
	},
}

func init() {
	extractLinks = extractCmd.Flags().String("links", "", "Link list produced by harvest, or a Skipped Links.CSV to retry.")
	_ = extractCmd.MarkFlagRequired("links")

	rootCmd.AddCommand(loginCmd, harvestCmd, extractCmd)
}
