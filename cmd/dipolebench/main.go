// Command dipolebench drives this module's FMM and Barnes-Hut dipole field
// solvers against the direct O(N^2) sum and reports the per-particle
// relative potential error, following the positional driver contract of
// the original lazy/scaling_test benchmarks this implementation replaces:
//
//	dipolebench Nparticles ncrit theta maxorder [type]
//
// type 0 selects FMM (the default), type 1 selects Barnes-Hut. Exit code 0
// on success, non-zero on parameter parse failure.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"

	dipole "github.com/pmansfield-lab/dipolefmm"
	"github.com/pmansfield-lab/dipolefmm/kernel"
)

func main() {
	var (
		logPath, configPath, runName, particlesPath string
		seed                                         int64
		verbose                                      bool
	)

	flag.StringVar(&logPath, "Log", "",
		"Location to write log statements to. Default is stderr.")
	flag.StringVar(&configPath, "Config", "",
		"Optional run-preset config file, read instead of positional args.")
	flag.StringVar(&runName, "Run", "",
		"Named [Run \"name\"] section to use from -Config.")
	flag.StringVar(&particlesPath, "Particles", "",
		"Optional x y z mux muy muz table file, instead of random generation.")
	flag.Int64Var(&seed, "Seed", 1, "Seed for random particle generation.")
	flag.BoolVar(&verbose, "Verbose", false, "Log build/phase progress.")
	flag.Parse()

	if logPath != "" {
		lf, err := os.Create(logPath)
		if err != nil {
			log.Fatalf("dipolebench: %s", err.Error())
		}
		log.SetOutput(lf)
		defer lf.Close()
	}

	n, ncrit, theta, order, kind, err := parseArgs(flag.Args(), configPath, runName)
	if err != nil {
		log.Printf("dipolebench: %s", err.Error())
		os.Exit(1)
	}

	var positions, moments []float64
	if particlesPath != "" {
		positions, moments, n, err = ReadParticleFile(particlesPath)
		if err != nil {
			log.Printf("dipolebench: %s", err.Error())
			os.Exit(1)
		}
	} else {
		positions, moments = randomCloud(n, seed)
	}

	tree, err := dipole.BuildTree(positions, moments, n, ncrit, order, theta)
	if err != nil {
		log.Printf("dipolebench: build failed: %s", err.Error())
		os.Exit(1)
	}
	if verbose {
		log.Printf("built tree: N=%d ncrit=%d order=%d theta=%g type=%s",
			n, ncrit, order, theta, kind)
	}

	direct := make([]float64, n)
	tree.ComputeFieldExact(kernel.Potential, direct)

	approx := make([]float64, n)
	switch kind {
	case "bh":
		tree.ComputeFieldBH(kernel.Potential, approx)
	default:
		tree.ComputeFieldFMM(kernel.Potential, approx)
	}

	outPath := fmt.Sprintf("errors_lazy_p_%d_n_%d_ncrit_%d_theta_%.6f_type_%d.txt",
		order, n, ncrit, theta, typeCode(kind))
	if err := writeRelativeErrors(outPath, direct, approx); err != nil {
		log.Printf("dipolebench: %s", err.Error())
		os.Exit(1)
	}
	if verbose {
		log.Printf("wrote %s", outPath)
	}
}

// parseArgs resolves the run parameters either from positional CLI
// arguments (Nparticles ncrit theta maxorder [type]) or, when none are
// given, from a named section of an optional config file.
func parseArgs(args []string, configPath, runName string) (n, ncrit int, theta float64, order int, kind string, err error) {
	if len(args) >= 4 {
		if n, err = strconv.Atoi(args[0]); err != nil {
			return 0, 0, 0, 0, "", fmt.Errorf("invalid Nparticles %q: %w", args[0], err)
		}
		if ncrit, err = strconv.Atoi(args[1]); err != nil {
			return 0, 0, 0, 0, "", fmt.Errorf("invalid ncrit %q: %w", args[1], err)
		}
		if theta, err = strconv.ParseFloat(args[2], 64); err != nil {
			return 0, 0, 0, 0, "", fmt.Errorf("invalid theta %q: %w", args[2], err)
		}
		if order, err = strconv.Atoi(args[3]); err != nil {
			return 0, 0, 0, 0, "", fmt.Errorf("invalid maxorder %q: %w", args[3], err)
		}
		kind = "fmm"
		if len(args) >= 5 {
			t, terr := strconv.Atoi(args[4])
			if terr != nil {
				return 0, 0, 0, 0, "", fmt.Errorf("invalid type %q: %w", args[4], terr)
			}
			switch t {
			case 0:
				kind = "fmm"
			case 1:
				kind = "bh"
			default:
				return 0, 0, 0, 0, "", fmt.Errorf("type must be 0 or 1, got %d", t)
			}
		}
		return n, ncrit, theta, order, kind, nil
	}

	if configPath != "" {
		presets, cerr := ReadRunConfig(configPath)
		if cerr != nil {
			return 0, 0, 0, 0, "", cerr
		}
		preset, ok := presets[runName]
		if !ok {
			return 0, 0, 0, 0, "", fmt.Errorf("no [Run %q] section in %s", runName, configPath)
		}
		return preset.N, preset.Ncrit, preset.Theta, preset.Order, preset.Mode, nil
	}

	return 0, 0, 0, 0, "", fmt.Errorf("usage: dipolebench Nparticles ncrit theta maxorder [type]")
}

func typeCode(kind string) int {
	if kind == "bh" {
		return 1
	}
	return 0
}

// randomCloud generates n point dipoles uniform in [-1,1]^3 with random
// unit moments, seeded explicitly for reproducibility.
func randomCloud(n int, seed int64) (positions, moments []float64) {
	rng := rand.New(rand.NewSource(seed))
	positions = make([]float64, 3*n)
	moments = make([]float64, 3*n)
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			positions[3*i+k] = 2*rng.Float64() - 1
		}
		mx, my, mz := rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()
		norm := mx*mx + my*my + mz*mz
		if norm == 0 {
			mx, my, mz, norm = 0, 0, 1, 1
		}
		scale := 1 / math.Sqrt(norm)
		moments[3*i], moments[3*i+1], moments[3*i+2] = mx*scale, my*scale, mz*scale
	}
	return positions, moments
}

func writeRelativeErrors(path string, want, got []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for i := range want {
		rel := got[i] - want[i]
		if want[i] != 0 {
			rel /= want[i]
		}
		if _, err := fmt.Fprintf(f, "%g\n", rel); err != nil {
			return err
		}
	}
	return nil
}
