// Command clocktree inspects and programs the NPCM8xx clock tree, against
// live hardware through /dev/mem, a register snapshot file, or simulated
// power-on defaults.
package main

func main() {
	Execute()
}
