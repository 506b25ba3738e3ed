package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/compoundscan/internal/logging"
	"github.com/ppiankov/compoundscan/internal/model"
)

const version = "v0.1.0"

var (
	cfgFile  string
	verbose  bool
	jsonLogs bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "compoundscan",
	Short: "compoundscan - PubChem compound metadata aggregator",
	Long: `compoundscan resolves a chemical compound name against PubChem and
collects everything PubChem publishes about it into one CSV row:

- Descriptive properties (formula, weights, SMILES, InChI, counts)
- Synonyms and ChEMBL ID
- Chemical vendors
- Protein-bound 3D structures
- Bioassay summary
- Patents and depositor-supplied patents
- Literature links

A category that PubChem cannot serve is written as an empty value;
only a failed name lookup fails the run.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("compoundscan %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.compoundscan/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug diagnostics)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "write diagnostics as JSON lines")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// envKeys are the config keys that COMPOUNDSCAN_* variables may set,
// e.g. COMPOUNDSCAN_HTTP_MAX_RETRIES for http.max_retries
var envKeys = []string{
	"pubchem.base_url",
	"http.request_timeout", "http.user_agent", "http.max_body_bytes",
	"http.max_retries", "http.http_proxy", "http.https_proxy", "http.no_proxy", "http.respect_robots",
	"cache.enabled", "cache.dir",
	"concurrency.extractors", "concurrency.batch_workers",
	"rate_limiting.requests_per_second", "rate_limiting.burst_size",
	"output.dir", "output.sqlite_path", "output.assay_limit", "output.log_format",
	"llm.provider", "llm.model", "llm.api_key", "llm.base_url",
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".compoundscan"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// COMPOUNDSCAN_HTTP_REQUEST_TIMEOUT -> http.request_timeout
	viper.SetEnvPrefix("COMPOUNDSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range envKeys {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file and environment over the defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if jsonLogs {
		cfg.Output.LogFormat = "json"
	}
	return cfg, nil
}

func newLogger(cfg *model.Config) *logging.Logger {
	level := slog.LevelInfo
	if cfg.Output.Verbose {
		level = slog.LevelDebug
	}
	return logging.NewWithFormat(os.Stderr, cfg.Output.LogFormat, level)
}
