package main

import (
	"fmt"

	"gopkg.in/gcfg.v1"
)

// RunConfig is an optional named run preset, loaded from an INI-style file
// with gcfg so a benchmark configuration can be kept under version control
// instead of retyped as flags every time.
type RunConfig struct {
	N     int
	Ncrit int
	Theta float64
	Order int
	Mode  string
	Seed  int64
}

// CheckInit validates a run preset after gcfg has populated it, following
// the same validate-after-parse shape BallConfig.CheckInit and
// BoxConfig.CheckInit use: required fields are checked for sane ranges,
// missing optional fields are defaulted.
func (r *RunConfig) CheckInit(name string) error {
	if r.N <= 0 {
		return fmt.Errorf("run '%s': N must be positive, got %d", name, r.N)
	}
	if r.Ncrit <= 0 {
		return fmt.Errorf("run '%s': Ncrit must be positive, got %d", name, r.Ncrit)
	}
	if r.Theta <= 0 {
		return fmt.Errorf("run '%s': Theta must be positive, got %g", name, r.Theta)
	}
	if r.Order < 2 {
		return fmt.Errorf("run '%s': Order must be >= 2, got %d", name, r.Order)
	}
	if r.Mode == "" {
		r.Mode = "fmm"
	}
	if r.Mode != "fmm" && r.Mode != "bh" {
		return fmt.Errorf("run '%s': Mode must be 'fmm' or 'bh', got %q", name, r.Mode)
	}
	return nil
}

type runFile struct {
	Run map[string]*RunConfig
}

// ReadRunConfig reads every named [Run "name"] section of fname and returns
// the validated presets it contains, keyed by name.
func ReadRunConfig(fname string) (map[string]*RunConfig, error) {
	rf := runFile{}
	if err := gcfg.ReadFileInto(&rf, fname); err != nil {
		return nil, err
	}
	for name, run := range rf.Run {
		if err := run.CheckInit(name); err != nil {
			return nil, err
		}
	}
	return rf.Run, nil
}
