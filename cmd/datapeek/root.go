package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/datapeek/datapeek/dataset"
	"github.com/datapeek/datapeek/internal/ingest"
	"github.com/datapeek/datapeek/pkg/log"
)

var (
	cfgFile  string
	loglevel string
	output   string
	seed     int64

	flagDelimiter string
	flagMaxRows   int
	flagThreshold float64
)

var rootCmd = &cobra.Command{
	Use:   "datapeek",
	Short: "Explore tabular data: summaries, regression, clustering, PCA",
	Long: `datapeek loads a CSV file and runs numeric analyses over it: column
summaries and correlations, linear and logistic regression, k-means
clustering and principal component analysis. Results are written as a
YAML or JSON report to stdout.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch loglevel {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("unsupported --loglevel %q", loglevel)
		}
		if output != "yaml" && output != "json" {
			return fmt.Errorf("unsupported --output %q (want yaml or json)", output)
		}
		log.SetupLogger(loglevel)
		log.RouteEngineWarnings(os.Stderr)
		return nil
	},
}

// Execute is the entry point called by main.main().
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.datapeek/config.yaml)")
	pf.StringVar(&loglevel, "loglevel", "warn", "log level: debug, info, warn, error")
	pf.StringVarP(&output, "output", "o", "yaml", "report format: yaml or json")
	pf.Int64Var(&seed, "seed", 0, "random seed; 0 uses the current time")
	pf.StringVar(&flagDelimiter, "delimiter", "", "field delimiter (default sniffs , ; tab)")
	pf.IntVar(&flagMaxRows, "max-rows", 0, "cap on data rows read; 0 means unlimited")
	pf.Float64Var(&flagThreshold, "numeric-threshold", dataset.DefaultNumericThreshold,
		"fraction of parsable values required to call a column numeric")
}

// loadConfig merges defaults, an optional config file and DATAPEEK_* env vars
// into the flag values. Flags set on the command line win.
func loadConfig() {
	v := viper.New()
	v.SetEnvPrefix("DATAPEEK")
	v.AutomaticEnv()

	v.SetDefault("loglevel", "warn")
	v.SetDefault("output", "yaml")
	v.SetDefault("numeric_threshold", dataset.DefaultNumericThreshold)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home + "/.datapeek")
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is worth a note.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		}
	}

	pf := rootCmd.PersistentFlags()
	if !pf.Changed("loglevel") {
		loglevel = v.GetString("loglevel")
	}
	if !pf.Changed("output") {
		output = v.GetString("output")
	}
	if !pf.Changed("numeric-threshold") {
		flagThreshold = v.GetFloat64("numeric_threshold")
	}
}

// loadDataset reads the CSV file named by the positional argument, honoring
// the shared ingestion flags.
func loadDataset(path string) (*dataset.Dataset, error) {
	var opts []ingest.Option
	switch flagDelimiter {
	case "":
	case ",":
		opts = append(opts, ingest.WithDelimiter(','))
	case ";":
		opts = append(opts, ingest.WithDelimiter(';'))
	case "\t", "tab":
		opts = append(opts, ingest.WithDelimiter('\t'))
	default:
		return nil, fmt.Errorf("unsupported --delimiter %q", flagDelimiter)
	}
	if flagMaxRows > 0 {
		opts = append(opts, ingest.WithMaxRows(flagMaxRows))
	}
	return ingest.ReadFile(path, opts...)
}

// newRand builds the random source shared by the fitting subcommands.
func newRand() *rand.Rand {
	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(s))
}

// report is the envelope every subcommand writes to stdout.
type report struct {
	RunID       string `json:"run_id" yaml:"run_id"`
	Command     string `json:"command" yaml:"command"`
	Input       string `json:"input" yaml:"input"`
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Result      any    `json:"result" yaml:"result"`
}

// writeReport renders the result in the selected output format.
func writeReport(command, input string, result any) error {
	rep := report{
		RunID:       uuid.NewString(),
		Command:     command,
		Input:       input,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Result:      result,
	}
	if output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	// Round-trip through JSON so the YAML keys follow the json struct tags of
	// the engine result types.
	raw, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(tree)
}
