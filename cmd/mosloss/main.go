package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ja7ad/mosloss/pkg/config"
	"github.com/ja7ad/mosloss/pkg/device"
	"github.com/ja7ad/mosloss/pkg/loss"
	"github.com/ja7ad/mosloss/pkg/report"
	"github.com/ja7ad/mosloss/pkg/util"
)

type opts struct {
	configPath string
	verbose    bool

	// bench
	dataset   string
	sheet     string
	part      string
	voltage   float64
	current   float64
	duty      float64
	frequency float64

	// sweep
	start  int
	stop   int
	values []string

	// outputs
	pretty   bool
	csvPath  string
	jsonPath string
	htmlPath string
	plotPath string
}

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var o opts

	root := &cobra.Command{
		Use:   "mosloss",
		Short: "MOSFET power loss estimation and sweeps",
		Long: `The mosloss tool estimates the power dissipated by a MOSFET switch from
its datasheet parameters (Rds(on), Coss, Qg, Qrr, tr, tf) at an operating
point (I, V, D, f), using closed-form conduction, switching, reverse
recovery, output charge and gate charge equations.

Parts are read from a CSV, YAML or XLSX table keyed by part number.

Copyright (c) 2024 Javad Rajabzadeh Inc. All rights reserved.

* GitHub: https://github.com/ja7ad/mosloss

Examples:
  mosloss parts --dataset data.xlsx
  mosloss eval --dataset data.xlsx --part BSC010N04LS -V 48 -I 10 -f 250k
  mosloss sweep frequency --dataset data.xlsx --part BSC010N04LS --values 1k,10k,100k,1M --plot out/f.svg
  mosloss sweep current --config bench.yaml --start 0 --stop 30 --csv out/i.csv`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if o.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.SetOut(stdout)

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "YAML bench file (dataset, part, operating point, sweep)")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&o.dataset, "dataset", "", "parts table (.csv, .yaml, .xlsx)")
	pf.StringVar(&o.sheet, "sheet", device.DefaultSheet, "worksheet name for .xlsx datasets")

	root.AddCommand(newPartsCmd(&o), newEvalCmd(&o), newSweepCmd(&o))
	return root
}

func benchFlags(fs *pflag.FlagSet, o *opts) {
	fs.StringVarP(&o.part, "part", "p", "", "part number to evaluate")
	fs.VarP(quantity{&o.voltage}, "voltage", "V", "blocking voltage in V (default 100)")
	fs.VarP(quantity{&o.current}, "current", "I", "drain current in A (default 2)")
	fs.VarP(quantity{&o.duty}, "duty", "D", "duty cycle [0..1] (default 0.5)")
	fs.VarP(quantity{&o.frequency}, "frequency", "f", "switching frequency in Hz (default 100k)")
}

func newPartsCmd(o *opts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parts",
		Short: "List the parts in a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, o)
			if err != nil {
				return err
			}
			if cfg.Dataset == "" {
				return fmt.Errorf("dataset not set")
			}
			ds, err := device.Open(cfg.Dataset, cfg.Sheet, device.DefaultSchema())
			if err != nil {
				return err
			}
			devices, err := device.LoadAll(ds)
			if err != nil {
				return err
			}
			slog.Debug("dataset loaded", "path", cfg.Dataset, "parts", len(devices))

			if o.plotPath != "" {
				err := writeFile(o.plotPath, func(w io.Writer, f report.Format) error {
					return report.WriteScatter(w, devices, f)
				})
				if err != nil {
					return err
				}
			}
			return report.WriteParts(cmd.OutOrStdout(), devices)
		},
	}
	cmd.Flags().StringVar(&o.plotPath, "plot", "", "write a q_g vs r_ds_on scatter (.png, .svg, .pdf)")
	return cmd
}

func newEvalCmd(o *opts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate every loss mechanism at one operating point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, e, err := setup(cmd, o)
			if err != nil {
				return err
			}
			r, err := e.Evaluate(loss.Overrides{})
			if err != nil {
				return err
			}
			return report.WritePoint(cmd.OutOrStdout(), cfg.Part, e.OperatingPoint(), r)
		},
	}
	benchFlags(cmd.Flags(), o)
	return cmd
}

func newSweepCmd(o *opts) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "sweep {frequency|current|duty}",
		Short:     "Sweep one operating point dimension and tabulate the losses",
		Long:      "Sweep frequency or current over --start/--stop (integers, stop exclusive) or --values.\nA duty sweep always covers 0.00 to 0.99 in 0.01 steps.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"frequency", "current", "duty"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, e, err := setup(cmd, o)
			if err != nil {
				return err
			}
			if err := configureSweep(cmd, o, cfg, e); err != nil {
				return err
			}

			var t *loss.ResultTable
			switch args[0] {
			case "frequency":
				t, err = e.FrequencySweep()
			case "current":
				t, err = e.CurrentSweep()
			case "duty":
				t, err = e.DutySweep()
			}
			if err != nil {
				return err
			}
			slog.Debug("sweep done", "dimension", t.Meta.Dimension, "rows", t.Len())
			return emit(cmd.OutOrStdout(), o, t)
		},
	}

	fs := cmd.Flags()
	benchFlags(fs, o)
	fs.IntVar(&o.start, "start", 0, "sweep range start (inclusive)")
	fs.IntVar(&o.stop, "stop", 0, "sweep range stop (exclusive)")
	fs.StringSliceVar(&o.values, "values", nil, "explicit sweep values, e.g. 1k,10k,100k or 1..10")
	fs.BoolVar(&o.pretty, "pretty", true, "format output as a table instead of CSV")
	fs.StringVar(&o.csvPath, "csv", "", "write rows to CSV file")
	fs.StringVar(&o.jsonPath, "json", "", "write rows and metadata to JSON file")
	fs.StringVar(&o.htmlPath, "html", "", "write an interactive chart to HTML file")
	fs.StringVar(&o.plotPath, "plot", "", "write loss curves to an image (.png, .svg, .pdf)")
	return cmd
}

// resolveConfig layers defaults, the --config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command, o *opts) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		c, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	set := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if set("dataset") {
		cfg.Dataset = o.dataset
	}
	if set("sheet") {
		cfg.Sheet = o.sheet
	}
	if set("part") {
		cfg.Part = o.part
	}
	if set("voltage") {
		cfg.Voltage = o.voltage
	}
	if set("current") {
		cfg.Current = o.current
	}
	if set("duty") {
		cfg.Duty = o.duty
	}
	if set("frequency") {
		cfg.Frequency = o.frequency
	}
	return cfg, nil
}

// setup resolves the configuration, loads the part and builds the engine.
func setup(cmd *cobra.Command, o *opts) (*config.Config, *loss.Engine, error) {
	cfg, err := resolveConfig(cmd, o)
	if err != nil {
		return nil, nil, err
	}
	warnings, err := cfg.Validate()
	if err != nil {
		return nil, nil, err
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ds, err := device.Open(cfg.Dataset, cfg.Sheet, device.DefaultSchema())
	if err != nil {
		return nil, nil, err
	}
	dev, err := device.Load(ds, cfg.Part)
	if err != nil {
		return nil, nil, err
	}

	e := loss.New(cfg.Voltage, cfg.Current, cfg.Duty, cfg.Frequency)
	part := e.AttachDevice(&dev)
	slog.Debug("device attached", "part", part, "dataset", cfg.Dataset,
		"voltage", cfg.Voltage, "current", cfg.Current, "duty", cfg.Duty, "frequency", cfg.Frequency)
	return cfg, e, nil
}

// configureSweep applies --values, --start/--stop or the config file's sweep,
// in that order of precedence.
func configureSweep(cmd *cobra.Command, o *opts, cfg *config.Config, e *loss.Engine) error {
	fs := cmd.Flags()
	switch {
	case fs.Changed("values"):
		values, err := util.ParseValues(o.values)
		if err != nil {
			return err
		}
		e.SetSweepList(values)
	case fs.Changed("start") || fs.Changed("stop"):
		if !fs.Changed("start") || !fs.Changed("stop") {
			return errors.New("--start and --stop must be given together")
		}
		return e.SetSweepRange(o.start, o.stop)
	case len(cfg.Sweep.Values) > 0:
		e.SetSweepList(cfg.Sweep.Values)
	case cfg.HasSweep():
		return e.SetSweepRange(*cfg.Sweep.Start, *cfg.Sweep.Stop)
	}
	return nil
}

func emit(stdout io.Writer, o *opts, t *loss.ResultTable) error {
	var err error
	if o.pretty {
		err = report.WriteText(stdout, t)
	} else {
		err = report.WriteCSV(stdout, t)
	}
	if err != nil {
		return err
	}

	outputs := []struct {
		path  string
		write func(io.Writer, report.Format) error
	}{
		{o.csvPath, func(w io.Writer, _ report.Format) error { return report.WriteCSV(w, t) }},
		{o.jsonPath, func(w io.Writer, _ report.Format) error { return report.WriteJSON(w, t) }},
		{o.htmlPath, func(w io.Writer, _ report.Format) error { return report.WriteHTML(w, t) }},
		{o.plotPath, func(w io.Writer, f report.Format) error { return report.WritePlot(w, t, f) }},
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := writeFile(out.path, out.write); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer, report.Format) error) (err error) {
	f, err := report.FormatFor(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	if err := write(file, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("wrote", "path", path)
	return nil
}
