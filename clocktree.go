// Package clocktree wires a complete simulated NPCM8xx clock tree in one
// call, for programs that want a tree without touching hardware or tables.
package clocktree

import (
	"github.com/sarchlab/clocktree/clock"
	"github.com/sarchlab/clocktree/npcm8xx"
	"github.com/sarchlab/clocktree/regio"
)

// NewSimulatedNPCM8xx builds an NPCM8xx clock tree over simulated power-on
// register defaults. The returned space accepts access hooks and backs the
// tree's register traffic.
func NewSimulatedNPCM8xx() (*clock.Tree, *regio.Space) {
	space := regio.NewSpace(npcm8xx.SimDefaults())
	return npcm8xx.NewTreeWithSpace(space), space
}
