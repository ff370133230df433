package regio

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// LoadSnapshot builds a MemStore from a textual register snapshot. Each
// line holds an offset and a value in hex, separated by whitespace. Blank
// lines and lines starting with '#' are skipped.
func LoadSnapshot(r io.Reader) (*MemStore, error) {
	store := NewMemStore()
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var offset, value uint32
		if _, err := fmt.Sscanf(line, "%x %x", &offset, &value); err != nil {
			return nil, fmt.Errorf("snapshot line %d: %q: %v", lineNo, line, err)
		}

		store.regs[offset] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot: %v", err)
	}

	return store, nil
}

// SaveSnapshot writes the store's contents in the format LoadSnapshot
// reads, ordered by offset.
func SaveSnapshot(w io.Writer, store *MemStore) error {
	offsets := store.Offsets()
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	for _, off := range offsets {
		val, _ := store.Read32(off)
		if _, err := fmt.Fprintf(w, "%02x %08x\n", off, val); err != nil {
			return err
		}
	}

	return nil
}
