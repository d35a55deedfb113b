package main

import (
	"fmt"
	"os"
	"time"

	"github.com/akasaka-miraina/lambdust-sub010/asm"
	"github.com/akasaka-miraina/lambdust-sub010/internal/tbl"
	"github.com/akasaka-miraina/lambdust-sub010/object"
	"github.com/akasaka-miraina/lambdust-sub010/optimizer"
	"github.com/akasaka-miraina/lambdust-sub010/vm"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Assemble, optimize, and execute an assembly file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHandler,
}

func init() {
	runCmd.Flags().Bool("no-optimize", false, "Execute the unit exactly as assembled")
	runCmd.Flags().Bool("timing", false, "Show execution time")
	runCmd.Flags().Bool("stats", false, "Show optimizer and machine statistics")
	runCmd.Flags().Int("max-stack", vm.DefaultMaxStackSize, "Maximum value stack depth")
}

func runHandler(cmd *cobra.Command, args []string) error {
	source, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger()

	symbols := object.NewSymbolTable()
	code, err := asm.New(asm.WithSymbols(symbols)).Assemble(source)
	if err != nil {
		return err
	}

	opt := optimizer.New(optimizer.WithLogger(logger))
	noOptimize, _ := cmd.Flags().GetBool("no-optimize")
	if !noOptimize {
		code = opt.Optimize(code)
	}

	maxStack, _ := cmd.Flags().GetInt("max-stack")
	config := vm.DefaultConfig()
	config.MaxStackSize = maxStack
	machine := vm.New(
		vm.WithConfig(config),
		vm.WithSymbols(symbols),
		vm.WithLogger(logger),
	)

	start := time.Now()
	result, err := machine.Execute(code)
	if err != nil {
		return err
	}
	dt := time.Since(start)

	switch result.Kind() {
	case vm.ResultError:
		return result.Err()
	default:
		if value := result.Value(); value != nil {
			fmt.Println(value.Inspect())
		}
	}

	if timing, _ := cmd.Flags().GetBool("timing"); timing {
		fmt.Printf("%v\n", dt)
	}
	if showStats, _ := cmd.Flags().GetBool("stats"); showStats {
		printStats(opt.Stats(), machine.GetStats())
	}
	return nil
}

func printStats(optStats optimizer.Stats, vmStats vm.Stats) {
	rows := [][]string{
		{"passes applied", fmt.Sprintf("%d", optStats.PassesApplied)},
		{"instructions before", fmt.Sprintf("%d", optStats.InstructionsBefore)},
		{"instructions after", fmt.Sprintf("%d", optStats.InstructionsAfter)},
		{"instructions eliminated", fmt.Sprintf("%d", optStats.InstructionsEliminated)},
		{"estimated bytes saved", fmt.Sprintf("%d", optStats.EstimatedBytesSaved)},
		{"optimization time", optStats.OptimizationTime.String()},
		{"instructions executed", fmt.Sprintf("%d", vmStats.InstructionsExecuted)},
		{"max stack depth", fmt.Sprintf("%d", vmStats.MaxStackDepth)},
		{"optimized operations", fmt.Sprintf("%d", vmStats.OptimizedOps)},
		{"execution time", vmStats.ExecutionTime.String()},
	}
	tbl.NewTable(os.Stdout).
		WithHeader([]string{"STATISTIC", "VALUE"}).
		WithColumnAlignment([]tbl.Alignment{tbl.AlignLeft, tbl.AlignRight}).
		WithRows(rows).
		Render()
}
