// Command sn2g trains the two-group slab-transport PINN and prints the
// resulting scalar flux profile.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ravi9216/Two-group-transport/sn"
)

func main() {
	var (
		order  = flag.Int("order", 8, "discrete-ordinates quadrature order (positive even)")
		hidden = flag.Int("hidden", 20, "hidden-layer width")
		points = flag.Int("points", 50, "spatial grid points")
		length = flag.Float64("length", 100, "slab length")
		lr     = flag.Float64("lr", 1e-3, "Adam learning rate")
		eps    = flag.Float64("epsilon", 1e-6, "convergence threshold on |Δloss|")
		iters  = flag.Int("max-iters", 20000, "iteration cap (0 removes the cap)")
		every  = flag.Int("log-every", 100, "iterations between log writes")
		logp   = flag.String("log", "training.log", "training log path")
	)
	flag.Parse()

	solver, err := sn.New(sn.Config{
		Quadrature: *order,
		Hidden:     *hidden,
		Points:     *points,
		Length:     *length,
		LearnRate:  *lr,
		Epsilon:    *eps,
		LogPath:    *logp,
	})
	if err != nil {
		fatal(err)
	}

	history, err := solver.Train(*every, *iters)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("trained %d iterations, final loss %v\n", len(history), history[len(history)-1])

	flux, err := solver.PredictGroups(nil)
	if err != nil {
		fatal(err)
	}
	fmt.Println("\nscalar flux:")
	for i, z := range solver.Grid() {
		fmt.Printf("z=%8.3f  group1=%12.6g  group2=%12.6g\n", z, flux[0][i], flux[1][i])
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "sn2g:", err)
	os.Exit(1)
}
