package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sarchlab/clocktree/clock"
)

var rateCmd = &cobra.Command{
	Use:   "rate [clock...]",
	Short: "Print the rate of one clock, or of every clock in the table.",
	Run: func(cmd *cobra.Command, args []string) {
		tree, _, closer, err := openTree()
		if err != nil {
			log.Fatalf("Error opening registers: %v", err)
		}
		if closer != nil {
			defer closer.Close()
		}

		if len(args) == 0 {
			for _, d := range tree.Registry().All() {
				printRate(tree, d.Name)
			}
			return
		}

		for _, arg := range args {
			printRate(tree, arg)
		}
	},
}

func printRate(tree *clock.Tree, arg string) {
	id, err := clockByName(tree, arg)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	rate, err := tree.GetRate(id)
	if err != nil {
		fmt.Printf("%-10s unavailable: %v\n", arg, err)
		return
	}

	fmt.Printf("%-10s %d Hz\n", arg, rate)
}

func init() {
	rootCmd.AddCommand(rateCmd)
}
