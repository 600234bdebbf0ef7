// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oxbowlabs/wayfind/pkg/ux"
	"github.com/oxbowlabs/wayfind/services/solver"
	"github.com/oxbowlabs/wayfind/services/solver/river"
	"github.com/oxbowlabs/wayfind/services/solver/search"
	"github.com/spf13/cobra"
)

// errExhausted signals the no-path outcome to main, which maps it to
// exit code 1 without printing a second error line.
var errExhausted = errors.New("no path exists from the start position")

var (
	farmerBank    string
	wolfBank      string
	duckBank      string
	cornBank      string
	showTrace     bool
	jsonOutput    bool
	noColor       bool
	maxExpansions int

	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Solve the puzzle from a given start position",
		Long: `Solve runs the search once and prints the expansion trace followed
by the shortest path, or a failure banner when no path exists.

Each actor starts on the right bank unless its flag says otherwise:

  wayfind solve --duck left --farmer left`,
		Args: cobra.NoArgs,
		RunE: runSolveCommand,
	}
)

func init() {
	solveCmd.Flags().StringVar(&farmerBank, "farmer", "right", "farmer's starting bank (left or right)")
	solveCmd.Flags().StringVar(&wolfBank, "wolf", "right", "wolf's starting bank")
	solveCmd.Flags().StringVar(&duckBank, "duck", "right", "duck's starting bank")
	solveCmd.Flags().StringVar(&cornBank, "corn", "right", "corn's starting bank")
	solveCmd.Flags().BoolVar(&showTrace, "trace", true, "print the expansion trace")
	solveCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON instead of text")
	solveCmd.Flags().BoolVar(&noColor, "no-color", false, "disable styled output")
	solveCmd.Flags().IntVar(&maxExpansions, "max-expansions", 0, "abort after this many expansions (0 = engine default)")
}

// solveOutput is the --json shape of one CLI solve.
type solveOutput struct {
	Outcome string            `json:"outcome"`
	Moves   int               `json:"moves"`
	Path    []solver.PathStep `json:"path,omitempty"`
	Stats   solver.SolveStats `json:"stats"`
}

func runSolveCommand(cmd *cobra.Command, args []string) error {
	if noColor {
		ux.SetPlain(true)
	}

	start, err := startFromFlags(farmerBank, wolfBank, duckBank, cornBank)
	if err != nil {
		return err
	}

	renderer := ux.NewTraceRenderer(cmd.OutOrStdout(), noColor)

	var options []search.Option
	if maxExpansions > 0 {
		options = append(options, search.WithMaxExpansions(maxExpansions))
	}
	if showTrace && !jsonOutput {
		options = append(options, search.WithObserver(traceObserver(renderer)))
	}

	result, err := search.New[river.State](river.Domain{}, start, options...).Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("solve from %s: %w", start, err)
	}

	if jsonOutput {
		return printJSON(cmd, result)
	}

	if result.Outcome == search.OutcomeExhausted {
		renderer.Failure()
		renderer.Stats(result.Expanded, result.Generated, result.Relaxed)
		return errExhausted
	}

	renderer.Path(result.PathDisplay, moveLabels(result.Path))
	renderer.Stats(result.Expanded, result.Generated, result.Relaxed)
	return nil
}

// startFromFlags maps the four bank flags onto a board state.
func startFromFlags(farmer, wolf, duck, corn string) (river.State, error) {
	position := solver.StartPosition{Farmer: farmer, Wolf: wolf, Duck: duck, Corn: corn}
	state, err := position.State()
	if err != nil {
		return river.State{}, fmt.Errorf("bad start position: %w", err)
	}
	return state, nil
}

// traceObserver renders search events in the classic trace format.
func traceObserver(renderer *ux.TraceRenderer) search.Observer {
	return func(ev search.Event) {
		switch ev.Kind {
		case search.EventExpand:
			rows := make([]ux.FrontierRow, len(ev.Frontier))
			for i, line := range ev.Frontier {
				rows[i] = ux.FrontierRow{State: line.State, G: line.G, H: line.H, F: line.F}
			}
			renderer.Frontier(rows)
			renderer.Expand(ev.State, ev.G, ev.H, ev.F)
		case search.EventGenerate:
			renderer.Generated(ev.State, ev.G, ev.H, ev.F, ev.NewNode, ev.Improved)
		case search.EventRelax:
			renderer.Relaxed(ev.State, ev.OldG, ev.G)
		}
	}
}

// moveLabels names the move behind each transition of the path.
func moveLabels(path []river.State) []string {
	if len(path) < 2 {
		return nil
	}
	labels := make([]string, len(path)-1)
	for i := 1; i < len(path); i++ {
		if move, ok := river.MoveBetween(path[i-1], path[i]); ok {
			labels[i-1] = move.String()
		}
	}
	return labels
}

// printJSON writes the result in the machine-readable shape.
func printJSON(cmd *cobra.Command, result *search.Result[river.State]) error {
	output := solveOutput{
		Outcome: result.Outcome.String(),
		Moves:   result.Moves,
		Stats: solver.SolveStats{
			Expanded:   result.Expanded,
			Generated:  result.Generated,
			Relaxed:    result.Relaxed,
			DurationMS: result.Duration.Milliseconds(),
		},
	}
	labels := moveLabels(result.Path)
	for i, display := range result.PathDisplay {
		step := solver.PathStep{State: display}
		if i > 0 {
			step.Move = labels[i-1]
		}
		output.Path = append(output.Path, step)
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))

	if result.Outcome == search.OutcomeExhausted {
		return errExhausted
	}
	return nil
}
