package main

import (
	"fmt"

	"github.com/akasaka-miraina/lambdust-sub010/asm"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Assemble and validate without executing",
	Args:  cobra.MaximumNArgs(1),
	RunE:  checkHandler,
}

func checkHandler(cmd *cobra.Command, args []string) error {
	source, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	code, err := asm.New().Assemble(source)
	if err != nil {
		return err
	}
	stats := code.Stats()
	fmt.Printf("%s %d instructions, %d constants, %d bytes encoded\n",
		color.GreenString("OK:"),
		stats.InstructionCount, stats.ConstantCount, stats.EncodedSize)
	return nil
}
