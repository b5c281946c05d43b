/*
Package simchain runs entities through chains of activities in simulated time.

A trajectory is an ordered chain of steps (timeouts, attribute updates, log lines,
rollbacks). Every entity walks the same shared chain; steps that need per-entity memory
keep it keyed by entity and drop it when the entity leaves.

# Usage

Load a trajectory from YAML and simulate it:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/simchain"
	)

	func main() {
		eng, err := simchain.Load("patient.yaml", simchain.WithSeed(42))
		if err != nil {
			log.Fatal(err)
		}

		gap, err := eng.Interarrival("exponential(1.0)")
		if err != nil {
			log.Fatal(err)
		}

		sum, err := eng.Simulate(context.Background(), 100, gap)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%d/%d finished by t=%.2f\n", sum.Finished, sum.Arrivals, sum.End)
	}

Trajectories can also be built in code with pkg/dsl and wrapped with New.

# Definition files

	name: patient
	seed: 42
	vars:
	  service: 2.5
	steps:
	  - type: set_attribute
	    tag: arrive
	    keys: [visits]
	    values: [1]
	    mod: "+"
	  - type: timeout
	    delay: "exponential(1 / service)"
	  - type: rollback
	    target: arrive
	    check: {attribute: retry}

Numbers are constants, strings are expressions and {attribute: key} reads the entity.
*/
package simchain
