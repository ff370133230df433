package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sarchlab/clocktree/clock"
	"github.com/sarchlab/clocktree/npcm8xx"
	"github.com/sarchlab/clocktree/recording"
	"github.com/sarchlab/clocktree/regio"
)

var (
	snapshotPath string
	devmemBase   string
	recordPath   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clocktree",
	Short: "Clocktree inspects and programs a NPCM8xx clock generation tree.",
	Long: `Clocktree resolves and programs the clocks of the NPCM8xx BMC ` +
		`family. It works against live hardware (--devmem-base), a register ` +
		`snapshot file (--snapshot), or simulated power-on defaults.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// A .env file can carry the flag defaults.
	godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot",
		os.Getenv("CLOCKTREE_SNAPSHOT"),
		"register snapshot file to load instead of hardware")
	rootCmd.PersistentFlags().StringVar(&devmemBase, "devmem-base",
		os.Getenv("CLOCKTREE_DEVMEM_BASE"),
		"physical base address of the clock controller, e.g. 0xf0801000")
	rootCmd.PersistentFlags().StringVar(&recordPath, "record", "",
		"record register accesses into this SQLite database")

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// openTree builds the tree over whatever register backing the flags chose.
// The returned closer is nil unless hardware was mapped.
func openTree() (*clock.Tree, *regio.Space, io.Closer, error) {
	acc, closer, err := openAccessor()
	if err != nil {
		return nil, nil, nil, err
	}

	space := regio.NewSpace(acc)
	if recordPath != "" {
		space.AcceptHook(recording.NewTraceRecorder(recordPath))
	}

	return npcm8xx.NewTreeWithSpace(space), space, closer, nil
}

func openAccessor() (regio.Accessor, io.Closer, error) {
	switch {
	case devmemBase != "":
		base, err := strconv.ParseUint(devmemBase, 0, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("bad --devmem-base %q: %v", devmemBase, err)
		}

		mem, err := regio.OpenDevMem(base, 0x100)
		if err != nil {
			return nil, nil, err
		}

		return mem, mem, nil

	case snapshotPath != "":
		f, err := os.Open(snapshotPath)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()

		store, err := regio.LoadSnapshot(f)
		if err != nil {
			return nil, nil, err
		}

		return store, nil, nil

	default:
		fmt.Fprintln(os.Stderr,
			"No --devmem-base or --snapshot given, using simulated defaults.")
		return npcm8xx.SimDefaults(), nil, nil
	}
}

// clockByName accepts either a decimal id or a table name like "uart1".
func clockByName(tree *clock.Tree, arg string) (clock.ID, error) {
	if id, err := strconv.ParseUint(arg, 10, 32); err == nil {
		return clock.ID(id), nil
	}

	for _, d := range tree.Registry().All() {
		if d.Name == arg {
			return d.ID, nil
		}
	}

	return 0, fmt.Errorf("unknown clock %q", arg)
}
