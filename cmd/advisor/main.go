package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/maomaoaichibing/portfolio-advisor/internal/common"
	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
	"github.com/maomaoaichibing/portfolio-advisor/internal/services/diagnosis"
	"github.com/maomaoaichibing/portfolio-advisor/internal/services/rebalance"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "version":
		common.LoadVersionFromFile()
		fmt.Println(common.GetFullVersion())
	case "diagnose":
		runDiagnose(os.Args[2:])
	case "rebalance":
		runRebalance(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: advisor <command> [flags]

Commands:
  diagnose   -input holdings.json [-config advisor.toml]
  rebalance  -input holdings.json [-risk low|medium|high] [-chart out.png] [-config advisor.toml]
  version

The input file is a JSON array of holdings; "-" reads from stdin.
Results are written to stdout as JSON; logs go to stderr.
`)
}

// setup loads config and builds a logger tagged with a per-run id
func setup(configPath string) (*common.Config, *common.Logger) {
	config, err := common.LoadConfig(os.Getenv("ADVISOR_CONFIG"), configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	base := common.NewLogger(config.Logging.Level)
	logger := &common.Logger{Logger: base.With().Str("run_id", uuid.NewString()).Logger()}

	common.LoadVersionFromFile()
	common.PrintBanner(config, logger)

	return config, logger
}

func runDiagnose(args []string) {
	fs := flag.NewFlagSet("diagnose", flag.ExitOnError)
	input := fs.String("input", "", "holdings JSON file, or - for stdin")
	configPath := fs.String("config", "advisor.toml", "config file path")
	fs.Parse(args)

	config, logger := setup(*configPath)
	holdings := readHoldings(*input, logger)

	svc := diagnosis.NewService(config.Diagnosis, logger)
	result, err := svc.Diagnose(holdings)
	if err != nil {
		logger.Error().Err(err).Msg("Diagnosis failed")
		os.Exit(1)
	}

	writeJSON(result, logger)
}

func runRebalance(args []string) {
	fs := flag.NewFlagSet("rebalance", flag.ExitOnError)
	input := fs.String("input", "", "holdings JSON file, or - for stdin")
	risk := fs.String("risk", "medium", "target risk profile: low, medium or high")
	chartPath := fs.String("chart", "", "write a target-allocation PNG to this path")
	configPath := fs.String("config", "advisor.toml", "config file path")
	fs.Parse(args)

	config, logger := setup(*configPath)
	holdings := readHoldings(*input, logger)

	svc := rebalance.NewService(config.Rebalance, logger)
	plan, err := svc.Rebalance(holdings, models.RiskProfile(*risk), nil)
	if err != nil {
		logger.Error().Err(err).Msg("Rebalance failed")
		os.Exit(1)
	}

	if *chartPath != "" {
		png, err := rebalance.RenderAllocationChart(plan)
		if err != nil {
			logger.Error().Err(err).Msg("Chart rendering failed")
			os.Exit(1)
		}
		if err := os.WriteFile(*chartPath, png, 0o644); err != nil {
			logger.Error().Err(err).Str("path", *chartPath).Msg("Failed to write chart")
			os.Exit(1)
		}
		logger.Info().Str("path", *chartPath).Msg("Allocation chart written")
	}

	writeJSON(plan, logger)
}

func readHoldings(path string, logger *common.Logger) []models.Holding {
	if path == "" {
		fmt.Fprintln(os.Stderr, "missing required -input flag")
		os.Exit(2)
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to read holdings")
		os.Exit(1)
	}

	var holdings []models.Holding
	if err := json.Unmarshal(data, &holdings); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to parse holdings JSON")
		os.Exit(1)
	}

	logger.Info().Int("holdings", len(holdings)).Str("path", path).Msg("Holdings loaded")
	return holdings
}

func writeJSON(v interface{}, logger *common.Logger) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to encode result")
		os.Exit(1)
	}
	fmt.Println(string(out))
}
