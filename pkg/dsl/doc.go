/*
Package dsl provides a fluent Go builder for simchain trajectories.

It appends steps in order and lets the most recent step be decorated with a tag or a
priority. The result is a *chain.Trajectory that owns every node it built.

Example usage:

	package main

	import (
		"log/slog"

		"github.com/aretw0/simchain/pkg/dsl"
		"github.com/aretw0/simchain/pkg/param"
	)

	func main() {
		traj := dsl.New("patient").
			SetAttribute([]string{"visits"}, []float64{1}, '+').Tag("checkin").
			Timeout(param.Const(5.0)).Priority(1).
			Log(param.Const("seen"), slog.LevelInfo).
			RollbackTo("checkin", 2).
			Build()

		_ = traj
	}
*/
package dsl
