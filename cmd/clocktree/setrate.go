package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"
)

var setRateCmd = &cobra.Command{
	Use:   "set-rate <clock> <target_hz>",
	Short: "Drive a settable clock as close to the target rate as possible.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		tree, _, closer, err := openTree()
		if err != nil {
			log.Fatalf("Error opening registers: %v", err)
		}
		if closer != nil {
			defer closer.Close()
		}

		id, err := clockByName(tree, args[0])
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		target, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			log.Fatalf("Error: bad target rate %q: %v", args[1], err)
		}

		achieved, err := tree.SetRate(id, target)
		if err != nil {
			log.Fatalf("Error setting rate: %v", err)
		}

		fmt.Printf("%s now runs at %d Hz (target %d Hz)\n",
			args[0], achieved, target)
	},
}

func init() {
	rootCmd.AddCommand(setRateCmd)
}
