// Package npcm8xx carries the fixed clock-tree table of the Nuvoton
// NPCM8xx BMC family: register offsets, bit-field locations, the two mux
// domains, and one descriptor per clock. The table is data for the clock
// package; nothing here computes.
package npcm8xx

import (
	"github.com/sarchlab/clocktree/bitfield"
	"github.com/sarchlab/clocktree/clock"
	"github.com/sarchlab/clocktree/regio"
)

// Clock ids. The namespace is dense; ids past the table entries exist on
// the chip (gates and peripherals this model does not rate) and stay
// valid for Request while answering rate calls with "not supported".
const (
	Refclk clock.ID = iota
	PLL0
	PLL1
	PLL2
	PLL2Div2
	AHB
	APB2
	APB5
	UART1
	UART2
	SDHC
	Timer
	SPI0
	SPI3
	GFX
	PCI
	USB
	ADC

	numClocks
)

// Count is the size of the clock id namespace.
const Count = uint32(numClocks)

// RefclkRate is the fixed reference oscillator frequency.
const RefclkRate = 25_000_000

// Register offsets from the clock controller base.
const (
	CLKSEL  = 0x04
	CLKDIV1 = 0x08
	PLLCON0 = 0x0C
	PLLCON1 = 0x10
	CLKDIV2 = 0x2C
	PLLCON2 = 0x54
	CLKDIV3 = 0x58
)

// PLLCON field layout, shared by all three PLLs.
var pllFields = clock.PLLFields{
	InDiv:   bitfield.New(5, 0),
	FBDiv:   bitfield.New(27, 16),
	OutDiv1: bitfield.New(10, 8),
	OutDiv2: bitfield.New(15, 13),
}

// CLKSEL selector fields.
var (
	cpuSel  = bitfield.New(2, 0)
	sdSel   = bitfield.New(7, 6)
	uartSel = bitfield.New(9, 8)
)

// Divider fields.
var (
	clk4Div  = bitfield.New(27, 26) // CLKDIV1
	uartDiv1 = bitfield.New(20, 16) // CLKDIV1
	mmcDiv   = bitfield.New(15, 11) // CLKDIV1
	apb2Div  = bitfield.New(27, 26) // CLKDIV2
	apb5Div  = bitfield.New(23, 22) // CLKDIV2
	uartDiv2 = bitfield.New(15, 11) // CLKDIV3
)

// Selector values. The CPU mux encodes PLL2 as 7; the general mux reuses
// 2 and 3 for the reference clock and the post-halved PLL2.
const (
	cpuSelPLL0   = 0
	cpuSelPLL1   = 1
	cpuSelRefclk = 2
	cpuSelPLL2   = 7

	selPLL0     = 0
	selPLL1     = 1
	selRefclk   = 2
	selPLL2Div2 = 3
)

var cpuMux = clock.NewMuxMap("cpu",
	clock.MuxEntry{Selector: cpuSelPLL0, Clock: PLL0},
	clock.MuxEntry{Selector: cpuSelPLL1, Clock: PLL1},
	clock.MuxEntry{Selector: cpuSelRefclk, Clock: Refclk},
	clock.MuxEntry{Selector: cpuSelPLL2, Clock: PLL2},
)

var sysMux = clock.NewMuxMap("sys",
	clock.MuxEntry{Selector: selPLL0, Clock: PLL0},
	clock.MuxEntry{Selector: selPLL1, Clock: PLL1},
	clock.MuxEntry{Selector: selRefclk, Clock: Refclk},
	clock.MuxEntry{Selector: selPLL2Div2, Clock: PLL2Div2},
)

// table lists every rate-bearing clock of the family.
// Fout = ((Fin / PreHalve) / div) / PostHalve.
var table = []clock.Descriptor{
	{
		ID: Refclk, Name: "refclk", Kind: clock.KindReference,
		Rate: RefclkRate,
	},
	{
		ID: PLL0, Name: "pll0", Kind: clock.KindPLL,
		Parent: Refclk, DivReg: PLLCON0, PLL: &pllFields,
		SelValue: clock.NoSelValue,
		Flags:    clock.FixedSource,
	},
	{
		ID: PLL1, Name: "pll1", Kind: clock.KindPLL,
		Parent: Refclk, DivReg: PLLCON1, PLL: &pllFields,
		SelValue: clock.NoSelValue,
		Flags:    clock.FixedSource,
	},
	{
		ID: PLL2, Name: "pll2", Kind: clock.KindPLL,
		Parent: Refclk, DivReg: PLLCON2, PLL: &pllFields,
		SelValue: clock.NoSelValue,
		Flags:    clock.FixedSource,
	},
	{
		ID: PLL2Div2, Name: "pll2div2", Kind: clock.KindPLL,
		Parent: Refclk, DivReg: PLLCON2, PLL: &pllFields,
		SelValue: clock.NoSelValue,
		Flags:    clock.FixedSource | clock.PostHalve,
	},
	{
		// The AHB selector follows the CPU mux but is owned by firmware;
		// the clock reads it and never programs it.
		ID: AHB, Name: "ahb", Kind: clock.KindDivider,
		DivReg: CLKDIV1, DivField: clk4Div,
		SelReg: CLKSEL, SelField: cpuSel, SelValue: clock.NoSelValue,
		Mux:   cpuMux,
		Flags: clock.DivAdd1 | clock.PreHalve,
	},
	{
		ID: APB2, Name: "apb2", Kind: clock.KindDivider,
		Parent: AHB, DivReg: CLKDIV2, DivField: apb2Div,
		SelValue: clock.NoSelValue,
		Flags:    clock.FixedSource | clock.DivPow2,
	},
	{
		ID: APB5, Name: "apb5", Kind: clock.KindDivider,
		Parent: AHB, DivReg: CLKDIV2, DivField: apb5Div,
		SelValue: clock.NoSelValue,
		Flags:    clock.FixedSource | clock.DivPow2,
	},
	{
		ID: UART1, Name: "uart1", Kind: clock.KindDivider,
		Parent: PLL2Div2, DivReg: CLKDIV1, DivField: uartDiv1,
		SelReg: CLKSEL, SelField: uartSel, SelValue: selPLL2Div2,
		Mux:   sysMux,
		Flags: clock.DivAdd1,
	},
	{
		ID: UART2, Name: "uart2", Kind: clock.KindDivider,
		Parent: PLL2Div2, DivReg: CLKDIV3, DivField: uartDiv2,
		SelReg: CLKSEL, SelField: uartSel, SelValue: selPLL2Div2,
		Mux:   sysMux,
		Flags: clock.DivAdd1,
	},
	{
		ID: SDHC, Name: "sdhc", Kind: clock.KindDivider,
		Parent: PLL0, DivReg: CLKDIV1, DivField: mmcDiv,
		SelReg: CLKSEL, SelField: sdSel, SelValue: selPLL0,
		Mux:   sysMux,
		Flags: clock.DivAdd1,
	},
	{
		ID: Timer, Name: "timer", Kind: clock.KindPassthrough,
		Parent: Refclk, SelValue: clock.NoSelValue,
		Flags: clock.FixedSource,
	},
}

// NewRegistry builds the validated NPCM8xx clock registry.
func NewRegistry() *clock.Registry {
	return clock.NewRegistry(Count, table)
}

// NewTree binds the NPCM8xx table to a register accessor. This is what a
// device-binding layer calls once it knows the controller's base address.
func NewTree(acc regio.Accessor) *clock.Tree {
	return NewTreeWithSpace(regio.NewSpace(acc))
}

// NewTreeWithSpace is NewTree for callers that already wrapped the
// accessor, usually to register access hooks first.
func NewTreeWithSpace(space *regio.Space) *clock.Tree {
	return clock.MakeTreeBuilder().
		WithRegistry(NewRegistry()).
		WithSpace(space).
		Build()
}
