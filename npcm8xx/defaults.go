package npcm8xx

import "github.com/sarchlab/clocktree/regio"

// SimDefaults fills a MemStore with typical power-on register values, for
// runs without hardware. PLL0 and PLL2 lock at 1.2 GHz, PLL1 at 1 GHz;
// the CPU and SDHC muxes sit on PLL0 and the UART mux on the post-halved
// PLL2.
func SimDefaults() *regio.MemStore {
	store := regio.NewMemStore()

	// indv=1, fbdv=96, otdv1=2, otdv2=1 -> 25 MHz * 96 / 2 = 1.2 GHz
	store.Write32(PLLCON0, 0x00602201)
	// fbdv=80 -> 1 GHz
	store.Write32(PLLCON1, 0x00502201)
	store.Write32(PLLCON2, 0x00602201)

	// CPUCKSEL=PLL0, SDCKSEL=PLL0, UARTCKSEL=PLL2DIV2
	store.Write32(CLKSEL, 0x00000300)

	// CLK4DIV=1 (AHB 300 MHz), UARTDIV1=23 (25 MHz), MMCCKDIV=2 (400 MHz)
	store.Write32(CLKDIV1, 0x04171000)
	// APB2CKDIV=1, APB5CKDIV=1 (both AHB/2)
	store.Write32(CLKDIV2, 0x04400000)
	// UARTDIV2=23
	store.Write32(CLKDIV3, 0x0000B800)

	return store
}
