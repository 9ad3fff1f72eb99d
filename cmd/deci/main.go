// Command deci performs exact decimal arithmetic from the command line.
//
// Usage:
//
//	deci [flags] eval <prefix expression>
//	deci [flags] round <value>
//	deci [flags] sum <value>...
//
// Examples:
//
//	deci eval '* 10 + 1.23 4.56'
//	deci -scale 2 -rounding half_up eval '/ 2 3'
//	deci -scale 0 round 2.5
//	deci -lenient sum 1.10 abc 2,20
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ChiliNoodles/Deci"
	"github.com/ChiliNoodles/Deci/diag"
	"github.com/ChiliNoodles/Deci/internal/calc"
	"github.com/ChiliNoodles/Deci/internal/config"
	"github.com/ChiliNoodles/Deci/internal/logging"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("deci", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML configuration file")
	scale := fs.Int("scale", -1, "digits after the decimal point for division and rounding (-1 keeps the configured value)")
	rounding := fs.String("rounding", "", "rounding mode: up, down, ceiling, floor, half_up, half_down or half_even")
	lenient := fs.Bool("lenient", false, "skip malformed values in sum instead of failing")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "deci: %v\n", err)
		return 1
	}
	if *scale >= 0 {
		cfg.Scale = scale
	}
	if *rounding != "" {
		m, err := deci.ParseRoundingMode(*rounding)
		if err != nil {
			fmt.Fprintf(stderr, "deci: %v\n", err)
			return 2
		}
		cfg.Rounding = m
	}

	log, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Output: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "deci: %v\n", err)
		return 1
	}
	defer func() { _ = closeLog() }()
	deci.SetDiagnosticSink(diag.Zap(log))
	defer deci.SetDiagnosticSink(diag.ZapGlobal())

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	cmd, rest := fs.Arg(0), fs.Args()[1:]
	log.Debug("running command",
		zap.String("command", cmd),
		zap.String("engine", deci.EngineName()),
		zap.Stringer("rounding", cfg.Rounding),
	)

	var res deci.Deci
	switch cmd {
	case "eval":
		res, err = eval(cfg, rest)
	case "round":
		res, err = round(cfg, rest)
	case "sum":
		res, err = sum(rest, *lenient)
	default:
		err = errors.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		log.Error("command failed", zap.String("command", cmd), zap.Error(err))
		return 1
	}
	fmt.Fprintln(stdout, res)
	return 0
}

func eval(cfg config.Config, args []string) (deci.Deci, error) {
	c := calc.Calculator{Scale: cfg.Scale, Mode: cfg.Rounding}
	return c.Evaluate(strings.Join(args, " "))
}

func round(cfg config.Config, args []string) (deci.Deci, error) {
	if len(args) != 1 {
		return deci.Deci{}, errors.Errorf("round takes one value, got %d", len(args))
	}
	d, err := deci.Parse(args[0])
	if err != nil {
		return deci.Deci{}, err
	}
	scale := 0
	if cfg.Scale != nil {
		scale = *cfg.Scale
	}
	return d.SetScale(scale, cfg.Rounding)
}

func sum(args []string, lenient bool) (deci.Deci, error) {
	ds := make([]deci.Deci, 0, len(args))
	for _, s := range args {
		if lenient {
			if d, ok := deci.ParseOrNone(s); ok {
				ds = append(ds, d)
			}
			continue
		}
		d, err := deci.Parse(s)
		if err != nil {
			return deci.Deci{}, err
		}
		ds = append(ds, d)
	}
	return deci.Sum(ds...), nil
}
