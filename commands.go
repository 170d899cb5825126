package main

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"swhe_calc/config"
	"swhe_calc/swhe"
	"swhe_calc/system"
)

type rootOptions struct {
	CasePath     string
	SettingsPath string
	OutputDir    string
	LogLevel     string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "swhe_calc",
		Short: "Steady-state simulation of a surface water heat exchanger loop",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger(opts.LogLevel)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.CasePath, "input", "i", "example/case.json", "case file (JSON or YAML)")
	pf.StringVarP(&opts.SettingsPath, "settings", "s", "", "solver settings INI file")
	pf.StringVarP(&opts.OutputDir, "output", "o", ".", "output directory")
	pf.StringVar(&opts.LogLevel, "log", "ERROR", "log level (DEBUG, INFO, WARN, ERROR)")

	cmd.AddCommand(
		newSWHECommand(opts),
		newSystemCommand(opts),
		newSweepCommand(opts),
	)
	return cmd
}

func initLogger(level string) error {
	lv, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lv)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return nil
}

// inputs holds a loaded case with its solver settings.
type inputs struct {
	Case     *config.Case
	Settings config.Settings
}

func loadInputs(opts *rootOptions) (*inputs, error) {
	log.WithFields(log.Fields{
		"case":     opts.CasePath,
		"settings": opts.SettingsPath,
	}).Info("load inputs")

	c, err := config.LoadCase(opts.CasePath)
	if err != nil {
		return nil, err
	}
	s, err := config.LoadSettings(opts.SettingsPath)
	if err != nil {
		return nil, err
	}
	return &inputs{Case: c, Settings: s}, nil
}

func (in *inputs) exchanger() (*swhe.SWHE, error) {
	cfg := in.Case.SWHE
	cfg.Fluid = in.Case.Fluid
	return swhe.New(cfg, in.Settings.SWHE)
}

func (in *inputs) loop() (*system.System, error) {
	return system.New(in.Case.Config, in.Settings.SWHE, in.Settings.System)
}

func newSWHECommand(opts *rootOptions) *cobra.Command {
	var mDot, inlet, water float64

	cmd := &cobra.Command{
		Use:   "swhe",
		Short: "Outlet temperature of the coil for a given inlet",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInputs(opts)
			if err != nil {
				return err
			}
			s, err := in.exchanger()
			if err != nil {
				return err
			}
			r, err := s.Simulate(mDot, inlet, water)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "outlet_temp: %0.4f [C]\n", r.OutletTemp)
			fmt.Fprintf(out, "approach_temp: %0.4f [C]\n", r.ApproachTemp)
			fmt.Fprintf(out, "q_coil: %0.2f [W]\n", r.CoilDuty)
			fmt.Fprintf(out, "ua: %0.3f [W/K]\n", r.UA)
			fmt.Fprintf(out, "reynolds: %0.1f [-]\n", r.Inside.Reynolds)
			fmt.Fprintf(out, "r_inside_conv: %0.6g [K/W]\n", r.Resistances.InsideConvection)
			fmt.Fprintf(out, "r_outside_conv: %0.6g [K/W]\n", r.Resistances.OutsideConvection)
			fmt.Fprintf(out, "iterations: %d\n", r.Iterations)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&mDot, "m-dot", 1.0, "brine mass flow rate [kg/s]")
	f.Float64Var(&inlet, "inlet", 20.0, "brine inlet temperature [C]")
	f.Float64Var(&water, "water", 15.0, "surface water temperature [C]")
	return cmd
}

func newSystemCommand(opts *rootOptions) *cobra.Command {
	var load, mDot, water float64

	cmd := &cobra.Command{
		Use:   "system",
		Short: "Approach temperature of the heat pump and coil loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInputs(opts)
			if err != nil {
				return err
			}
			s, err := in.loop()
			if err != nil {
				return err
			}
			r, err := s.Simulate(load, mDot, water)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "approach_temp: %0.4f [C]\n", r.Approach)
			fmt.Fprintf(out, "hp_outlet_temp: %0.4f [C]\n", r.HPOutlet)
			fmt.Fprintf(out, "swhe_outlet_temp: %0.4f [C]\n", r.SWHEOutlet)
			fmt.Fprintf(out, "iterations: %d\n", r.Iterations)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&load, "load", -1000.0, "zone load [W], positive for heating")
	f.Float64Var(&mDot, "m-dot", 0.5, "loop mass flow rate [kg/s]")
	f.Float64Var(&water, "water", 15.0, "surface water temperature [C]")
	return cmd
}
