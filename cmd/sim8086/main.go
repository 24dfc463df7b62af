// Command sim8086 decodes and optionally executes a raw 8086 instruction
// stream produced by an assembler, printing NASM-compatible disassembly,
// a post-execution register diff trail, and (optionally) a clock-cycle
// estimate.
package main

import (
	"fmt"
	"os"

	"github.com/oisee/sim8086/pkg/cpu"
	"github.com/oisee/sim8086/pkg/run"
	"github.com/spf13/cobra"
)

func main() {
	var exec bool
	var dump bool
	var clockEstimate bool

	rootCmd := &cobra.Command{
		Use:   "sim8086 <path>",
		Short: "Decode and simulate a subset of the 8086 instruction set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dump && !exec {
				return fmt.Errorf("--dump requires --exec")
			}

			buf, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			if !exec {
				for _, line := range run.Disassemble(buf, clockEstimate) {
					fmt.Println(line)
				}
				return nil
			}

			result := run.Execute(buf, clockEstimate)
			for _, line := range result.Lines {
				fmt.Println(line)
			}
			printFinalState(result.Regs)

			if dump {
				if err := run.DumpMemory(result.Mem); err != nil {
					return fmt.Errorf("writing %s: %w", run.DumpFileName, err)
				}
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&exec, "exec", false, "Execute the decoded instructions instead of only disassembling them")
	rootCmd.Flags().BoolVar(&dump, "dump", false, "Write the final memory image to sim86_memory_0.data (requires --exec)")
	rootCmd.Flags().BoolVarP(&clockEstimate, "clock-estimate", "c", false, "Print an estimated clock-cycle cost alongside each instruction")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printFinalState prints the "Final registers" trailer execution mode shows
// after the last decoded instruction: every nonzero general register in
// order, hex-formatted, followed by ip and the set flag letters (if any).
func printFinalState(regs cpu.RegisterFile) {
	fmt.Println()
	fmt.Println("Final registers:")
	order := []struct {
		name string
		val  uint16
	}{
		{"ax", regs.AX.ToU16()},
		{"bx", regs.BX.ToU16()},
		{"cx", regs.CX.ToU16()},
		{"dx", regs.DX.ToU16()},
		{"sp", regs.SP},
		{"bp", regs.BP},
		{"si", regs.SI},
		{"di", regs.DI},
	}
	for _, r := range order {
		if r.val != 0 {
			fmt.Printf("      %s: 0x%04x (%d)\n", r.name, r.val, r.val)
		}
	}
	fmt.Printf("      ip: 0x%04x (%d)\n", regs.IP, regs.IP)

	var flags string
	if regs.Sign {
		flags += "S"
	}
	if regs.Zero {
		flags += "Z"
	}
	if flags != "" {
		fmt.Printf("   flags: %s\n", flags)
	}
}
