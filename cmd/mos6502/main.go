package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/halvorsen-dev/mos6502/cpu"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mos6502",
		Short: "A MOS 6502 CPU core: run, disassemble, or step a program",
	}

	var loadAddr int

	runCmd := &cobra.Command{
		Use:   "run <program>",
		Short: "Load a program at the ROM base and run it to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cpu.New()
			if err := loadFile(c, args[0], uint16(loadAddr)); err != nil {
				return err
			}

			if err := c.Run(); err != nil {
				return errors.Wrap(err, "run halted")
			}

			fmt.Printf("PC=%#04x A=%#02x X=%#02x Y=%#02x SP=%#02x P=%#02x\n",
				c.Pc, c.A, c.X, c.Y, c.Sp, c.Status)
			return nil
		},
	}
	runCmd.Flags().IntVar(&loadAddr, "addr", 0x0400, "Address to load the program at")

	var disasmAddr int
	var disasmEnd int
	disasmCmd := &cobra.Command{
		Use:   "disasm <program>",
		Short: "Disassemble a loaded program without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cpu.New()
			if err := loadFile(c, args[0], uint16(disasmAddr)); err != nil {
				return err
			}

			listing := c.Disassemble(uint16(disasmAddr), uint16(disasmEnd))
			addrs := make([]uint16, 0, len(listing))
			for addr := range listing {
				addrs = append(addrs, addr)
			}
			sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
			for _, addr := range addrs {
				fmt.Println(listing[addr])
			}
			return nil
		},
	}
	disasmCmd.Flags().IntVar(&disasmAddr, "addr", 0x0400, "Address to load and start disassembling at")
	disasmCmd.Flags().IntVar(&disasmEnd, "end", 0x07FF, "Last address to disassemble")

	var debugAddr int
	debugCmd := &cobra.Command{
		Use:   "debug <program>",
		Short: "Step a program interactively in a terminal UI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cpu.New()
			if err := loadFile(c, args[0], uint16(debugAddr)); err != nil {
				return err
			}
			return runDebugger(c)
		},
	}
	debugCmd.Flags().IntVar(&debugAddr, "addr", 0x0400, "Address to load the program at")

	rootCmd.AddCommand(runCmd, disasmCmd, debugCmd)

	if err := rootCmd.Execute(); err != nil {
		log.SetFlags(0)
		log.Println(err)
		os.Exit(1)
	}
}
