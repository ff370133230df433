package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/clocktree/regio"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the clock controller's registers as a snapshot to stdout.",
	Run: func(cmd *cobra.Command, args []string) {
		tree, space, closer, err := openTree()
		if err != nil {
			log.Fatalf("Error opening registers: %v", err)
		}
		if closer != nil {
			defer closer.Close()
		}

		// Pull every register the table names into a store, then emit it.
		store := regio.NewMemStore()
		seen := make(map[uint32]bool)
		dump := func(off uint32) {
			if seen[off] {
				return
			}
			seen[off] = true

			val, err := space.Read32(off)
			if err != nil {
				log.Fatalf("Error reading 0x%02x: %v", off, err)
			}
			store.Write32(off, val)
		}

		for _, d := range tree.Registry().All() {
			if d.DivField.Valid() || d.PLL != nil {
				dump(d.DivReg)
			}
			if d.SelField.Valid() {
				dump(d.SelReg)
			}
		}

		if err := regio.SaveSnapshot(os.Stdout, store); err != nil {
			log.Fatalf("Error writing snapshot: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
