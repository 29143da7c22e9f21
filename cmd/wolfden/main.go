// wolfden is the reference host for the wolfden simulation core: a
// fixed-dt tick loop driving a *sim.World, grounded on the cobra
// subcommand layout of melisai and wingthing in the example pack.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wolfden/debugserver"
	"wolfden/sim"
)

const defaultDt float32 = 1.0 / 60.0

func main() {
	rootCmd := &cobra.Command{
		Use:   "wolfden",
		Short: "Deterministic wolf-pack combat simulation core",
		Long: `wolfden drives the headless wolfden simulation core: a fixed-dt
tick loop over a single *sim.World, with optional read-only spectator
streaming via --serve.`,
	}

	rootCmd.AddCommand(newRunCmd(), newBenchCmd(), newReplayCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "wolfden: %v\n", err)
		os.Exit(1)
	}
}

// --- run ---

func newRunCmd() *cobra.Command {
	var (
		seed  uint64
		ticks int
		serve string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a fixed-dt tick loop and print the final snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			world := sim.InitRun(seed, 0)
			world.Start()

			if serve != "" {
				srv := debugserver.NewServer(serve, world)
				go func() {
					if err := srv.ListenAndServe(); err != nil {
						fmt.Fprintf(os.Stderr, "wolfden: debugserver: %v\n", err)
					}
				}()
				fmt.Fprintf(os.Stderr, "wolfden: spectator server listening on %s\n", serve)
			}

			for i := 0; i < ticks; i++ {
				world.Step(defaultDt)
			}

			return printSnapshot(world)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 1, "RNG seed for init_run")
	cmd.Flags().IntVar(&ticks, "ticks", 600, "Number of fixed-dt ticks to run")
	cmd.Flags().StringVar(&serve, "serve", "", "Optional address to serve the debug spectator on (e.g. :8080)")
	return cmd
}

// --- bench ---

func newBenchCmd() *cobra.Command {
	var (
		seed  uint64
		ticks int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Tick with no I/O and report wall-clock per tick",
		Long:  "A convenience for local profiling; never part of the deterministic contract.",
		RunE: func(cmd *cobra.Command, args []string) error {
			world := sim.InitRun(seed, 0)
			world.Start()

			start := time.Now()
			for i := 0; i < ticks; i++ {
				world.Step(defaultDt)
			}
			elapsed := time.Since(start)

			fmt.Printf("%d ticks in %s (%.3f us/tick)\n",
				ticks, elapsed, float64(elapsed.Microseconds())/float64(ticks))
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 1, "RNG seed for init_run")
	cmd.Flags().IntVar(&ticks, "ticks", 6000, "Number of fixed-dt ticks to run")
	return cmd
}

// --- replay ---

// inputRecord is one line of a recorded input stream: the exact
// per-tick control surface set_player_input accepts (spec.md §6).
type inputRecord struct {
	MoveX   float32 `json:"move_x"`
	MoveY   float32 `json:"move_y"`
	Rolling bool    `json:"rolling"`
	Jumping bool    `json:"jumping"`
	Light   bool    `json:"light"`
	Heavy   bool    `json:"heavy"`
	Block   bool    `json:"block"`
	Special bool    `json:"special"`
}

func newReplayCmd() *cobra.Command {
	var (
		seed   uint64
		inputs string
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Feed a recorded input stream and print the final snapshot",
		Long:  "Each line of --inputs is one tick's JSON-encoded input record, applied before that tick's Step.",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(inputs)
			if err != nil {
				return fmt.Errorf("open inputs: %w", err)
			}
			defer f.Close()

			world := sim.InitRun(seed, 0)
			world.Start()

			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				line := scanner.Bytes()
				if len(line) == 0 {
					continue
				}
				var rec inputRecord
				if err := json.Unmarshal(line, &rec); err != nil {
					return fmt.Errorf("decode input record: %w", err)
				}
				world.SetPlayerInput(rec.MoveX, rec.MoveY, rec.Rolling, rec.Jumping,
					rec.Light, rec.Heavy, rec.Block, rec.Special)
				world.Step(defaultDt)
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read inputs: %w", err)
			}

			return printSnapshot(world)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 1, "RNG seed for init_run")
	cmd.Flags().StringVar(&inputs, "inputs", "", "Path to a newline-delimited JSON input recording")
	_ = cmd.MarkFlagRequired("inputs")
	return cmd
}

func printSnapshot(world *sim.World) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(world.Snapshot())
}
