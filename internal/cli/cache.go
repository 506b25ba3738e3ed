package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/compoundscan/internal/cache"
	"github.com/ppiankov/compoundscan/internal/model"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the PubChem response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached PubChem response",
	Long:  `Remove the on-disk response cache (cache.dir) so the next fetch goes to PubChem.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Cache.Dir == "" {
			fmt.Println("No cache directory configured; nothing to clear")
			return nil
		}
		if err := clearCache(cfg.Cache); err != nil {
			return err
		}
		fmt.Printf("✓ Cleared cache: %s\n", cfg.Cache.Dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// clearCache empties the configured cache even when caching is turned off for fetches
func clearCache(cfg model.CacheConfig) error {
	cfg.Enabled = true
	if err := cache.FromConfig(cfg).Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
