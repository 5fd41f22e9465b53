// Command tablepipe runs the tabular regression pipeline: it loads a CSV,
// cleans and encodes it with train-fitted transforms, trains a linear model
// and a cross-validated random forest sweep, and prints the report.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/YuminosukeSato/tablepipe/pipeline"
	"github.com/YuminosukeSato/tablepipe/pkg/log"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file (defaults apply when omitted)")
	dataPath := flag.String("data", "", "input CSV path, overrides the config file")
	plotPath := flag.String("plot", "", "sweep plot PNG path, overrides the config file")
	logLevel := flag.String("log-level", "", "debug, info, warn or error, overrides the config file")
	flag.Parse()

	cfg := pipeline.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = pipeline.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *dataPath != "" {
		cfg.DataPath = *dataPath
	}
	if *plotPath != "" {
		cfg.PlotPath = *plotPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	log.SetupLogger(cfg.LogLevel)

	result, err := pipeline.Run(cfg)
	if err != nil {
		slog.Error("pipeline failed", log.ErrAttr(err))
		os.Exit(1)
	}
	if err := pipeline.Print(os.Stdout, result); err != nil {
		slog.Error("report failed", log.ErrAttr(err))
		os.Exit(1)
	}
}
