package main

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"swhe_calc/swhe"
	"swhe_calc/system"
)

// Sweep kinds.
const (
	SweepMassFlow         = "m-dot"             // coil outlet vs mass flow rate at a fixed inlet
	SweepInletTemp        = "inlet"             // coil outlet vs inlet temperature at a fixed mass flow rate
	SweepZoneLoad         = "load"              // loop approach vs zone load
	SweepInsideResistance = "inside-resistance" // inside convection resistance vs mass flow rate
)

var sweepKinds = []string{SweepMassFlow, SweepInletTemp, SweepZoneLoad, SweepInsideResistance}

type sweepOptions struct {
	Kind    string
	From    float64
	To      float64
	Points  int
	Workers int

	MassFlow  float64
	InletTemp float64
	WaterTemp float64
	ZoneLoad  float64
}

func (o *sweepOptions) validate() error {
	known := false
	for _, k := range sweepKinds {
		known = known || k == o.Kind
	}
	if !known {
		return fmt.Errorf("unknown sweep %q (one of %s)", o.Kind, strings.Join(sweepKinds, ", "))
	}
	if o.Points < 2 {
		return fmt.Errorf("sweep needs at least 2 points, got %d", o.Points)
	}
	if o.Workers < 1 {
		return fmt.Errorf("sweep needs at least 1 worker, got %d", o.Workers)
	}
	return nil
}

func newSweepCommand(opts *rootOptions) *cobra.Command {
	so := &sweepOptions{}

	cmd := &cobra.Command{
		Use:       "sweep " + strings.Join(sweepKinds, "|"),
		Short:     "Evaluate the coil or the loop over a range and write CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: sweepKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			so.Kind = args[0]
			if err := so.validate(); err != nil {
				return err
			}
			in, err := loadInputs(opts)
			if err != nil {
				return err
			}
			s, err := in.loop()
			if err != nil {
				return err
			}

			rec, err := runSweep(cmd.Context(), s, so)
			if err != nil {
				return err
			}
			path, err := rec.Export(opts.OutputDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&so.From, "from", 0.1, "first value of the swept variable")
	f.Float64Var(&so.To, "to", 1.0, "last value of the swept variable")
	f.IntVarP(&so.Points, "points", "n", 10, "number of points")
	f.IntVar(&so.Workers, "workers", runtime.NumCPU(), "concurrent evaluations")
	f.Float64Var(&so.MassFlow, "m-dot", 0.5, "mass flow rate when not swept [kg/s]")
	f.Float64Var(&so.InletTemp, "inlet", 20.0, "coil inlet temperature when not swept [C]")
	f.Float64Var(&so.WaterTemp, "water", 15.0, "surface water temperature [C]")
	f.Float64Var(&so.ZoneLoad, "load", -1000.0, "zone load when not swept [W]")
	return cmd
}

/*
Evaluate a sweep.

	Args:
	    ctx: cancels pending points
	    s: loop to evaluate; coil sweeps use its exchanger
	    so: sweep definition

	Returns:
	    recorder holding one row per point, in sweep order
*/
func runSweep(ctx context.Context, s *system.System, so *sweepOptions) (*Recorder, error) {
	if err := so.validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	xs := floats.Span(make([]float64, so.Points), so.From, so.To)
	rec := NewRecorder("sweep_"+so.Kind, so.Points)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(so.Workers)

	for i, x := range xs {
		i, x := i, x
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			r := rec.At(i)
			r.MassFlow = so.MassFlow
			r.InletTemp = so.InletTemp
			r.WaterTemp = so.WaterTemp
			r.ZoneLoad = so.ZoneLoad

			var err error
			switch so.Kind {
			case SweepMassFlow:
				r.MassFlow = x
				err = recordExchanger(s.SWHE(), r)
			case SweepInletTemp:
				r.InletTemp = x
				err = recordExchanger(s.SWHE(), r)
			case SweepZoneLoad:
				r.ZoneLoad = x
				err = recordLoop(s, r)
			case SweepInsideResistance:
				r.MassFlow = x
				err = recordInside(s.SWHE(), r)
			}
			if err != nil {
				return fmt.Errorf("sweep %s at %g: %w", so.Kind, x, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	switch so.Kind {
	case SweepZoneLoad:
		rec.Summary("approach_temp", func(r *Record) float64 { return r.Approach })
	case SweepInsideResistance:
		rec.Summary("r_inside_conv", func(r *Record) float64 { return r.RInside })
	default:
		rec.Summary("outlet_temp", func(r *Record) float64 { return r.OutletTemp })
	}
	return rec, nil
}

func recordExchanger(s *swhe.SWHE, r *Record) error {
	res, err := s.Simulate(r.MassFlow, r.InletTemp, r.WaterTemp)
	if err != nil {
		return err
	}
	fillExchanger(r, res)
	return nil
}

func recordLoop(s *system.System, r *Record) error {
	res, err := s.Simulate(r.ZoneLoad, r.MassFlow, r.WaterTemp)
	if err != nil {
		return err
	}
	fillExchanger(r, res.Exchanger)
	r.HPOutlet = res.HPOutlet
	r.Approach = res.Approach
	r.Iterations = res.Iterations

	log.WithFields(log.Fields{
		"q_zone":   r.ZoneLoad,
		"approach": r.Approach,
	}).Debug("sweep point")
	return nil
}

func recordInside(s *swhe.SWHE, r *Record) error {
	c, err := s.InsideConvection(r.MassFlow, r.InletTemp)
	if err != nil {
		return err
	}
	r.Reynolds = c.Reynolds
	r.RInside = c.Resistance
	return nil
}

func fillExchanger(r *Record, res swhe.Result) {
	r.InletTemp = res.InletTemp
	r.OutletTemp = res.OutletTemp
	r.Approach = res.ApproachTemp
	r.Reynolds = res.Inside.Reynolds
	r.RInside = res.Resistances.InsideConvection
	r.ROutside = res.Resistances.OutsideConvection
	r.UA = res.UA
	r.CoilDuty = res.CoilDuty
	r.Iterations = res.Iterations
}
