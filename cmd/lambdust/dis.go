package main

import (
	"fmt"
	"os"

	"github.com/akasaka-miraina/lambdust-sub010/asm"
	"github.com/akasaka-miraina/lambdust-sub010/dis"
	"github.com/akasaka-miraina/lambdust-sub010/object"
	"github.com/akasaka-miraina/lambdust-sub010/optimizer"
	"github.com/spf13/cobra"
)

var disCmd = &cobra.Command{
	Use:   "dis [file]",
	Short: "Disassemble Lambdust bytecode",
	Args:  cobra.MaximumNArgs(1),
	RunE:  disHandler,
}

func init() {
	disCmd.Flags().Bool("optimize", false, "Disassemble the optimized unit")
	disCmd.Flags().Bool("raw", false, "Use the plain fixed-format listing")
}

func disHandler(cmd *cobra.Command, args []string) error {
	source, err := getSource(cmd, args)
	if err != nil {
		return err
	}

	symbols := object.NewSymbolTable()
	code, err := asm.New(asm.WithSymbols(symbols)).Assemble(source)
	if err != nil {
		return err
	}

	if optimize, _ := cmd.Flags().GetBool("optimize"); optimize {
		code = optimizer.New(optimizer.WithLogger(newLogger())).Optimize(code)
	}

	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		fmt.Print(code.Disassemble())
		return nil
	}
	return dis.Fprint(code, os.Stdout, dis.WithSymbols(symbols))
}
