// Copyright 2025 the Two-group-transport authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sn solves a two-energy-group, one-dimensional (slab geometry)
// neutron transport problem with a physics-informed neural network.
//
// # Overview
//
// Instead of fitting labelled data, the solver substitutes a small
// feed-forward network's angular-flux outputs and their spatial derivatives
// into the discrete-ordinates transport equation and minimises the resulting
// residual plus weak vacuum boundary penalties:
//
//   - A Legendre-Gauss quadrature discretises the angular variable into N
//     directions.
//   - The slab is partitioned into moderator and fuel zones with
//     piecewise-constant cross sections and an external source region.
//   - One tanh network maps position to all N directional flux values;
//     group 2 shares the network, evaluated at a rescaled position.
//   - Adam drives the loss until |Δloss| falls below the configured epsilon.
//
// # Basic Usage
//
//	solver, err := sn.New(sn.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Train with a log entry every 100 iterations, capped at 20000.
//	history, err := solver.Train(100, 20000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Scalar flux on the training grid.
//	flux, err := solver.Predict(nil)
//
// # Training Log
//
// Every logged iteration writes three lines to the configured sink:
//
//	Iter <n>: <loss>
//	phi0 group 1: <vector>
//	phi0 group 2: <vector>
//
// By default the log goes to Config.LogPath, created at the start of a run
// and closed at the end. Inject a custom destination with WithSink.
package sn
