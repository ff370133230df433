// Package monitoring serves a live clock tree over HTTP, allowing external
// inspection of clock rates and the registers behind them.
package monitoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"

	"github.com/sarchlab/clocktree/clock"
	"github.com/sarchlab/clocktree/regio"
)

// Monitor can turn a clock tree into a server and allows external
// monitoring of rates and register state.
type Monitor struct {
	tree       *clock.Tree
	space      *regio.Space
	portNumber int
	openUI     bool
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser opens the server's address in the local browser on start.
func (m *Monitor) WithBrowser() *Monitor {
	m.openUI = true
	return m
}

// RegisterTree registers the tree to be monitored, together with the
// register space it runs over.
func (m *Monitor) RegisterTree(t *clock.Tree, s *regio.Space) {
	m.tree = t
	m.space = s
}

type clockEntry struct {
	ID       uint32 `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Settable bool   `json:"settable"`
	RateHz   uint64 `json:"rate_hz,omitempty"`
	Error    string `json:"error,omitempty"`
}

type rateResponse struct {
	ID     uint32 `json:"id"`
	RateHz uint64 `json:"rate_hz"`
}

type registerEntry struct {
	Offset string `json:"offset"`
	Value  string `json:"value"`
}

// StartServer starts the monitor as a web server, on the configured port
// or a random one.
func (m *Monitor) StartServer() {
	r := m.router()
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring clock tree with %s\n", url)

	if m.openUI {
		if err := browser.OpenURL(url); err != nil {
			fmt.Fprintf(os.Stderr, "couldn't open browser: %v\n", err)
		}
	}

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/clocks", m.listClocks).Methods(http.MethodGet)
	r.HandleFunc("/api/clock/{id}", m.clockRate).Methods(http.MethodGet)
	r.HandleFunc("/api/clock/{id}/rate", m.setClockRate).Methods(http.MethodPost)
	r.HandleFunc("/api/registers", m.listRegisters).Methods(http.MethodGet)

	return r
}

func (m *Monitor) listClocks(w http.ResponseWriter, _ *http.Request) {
	var entries []clockEntry

	for _, d := range m.tree.Registry().All() {
		e := clockEntry{
			ID:       uint32(d.ID),
			Name:     d.Name,
			Kind:     d.Kind.String(),
			Settable: d.Settable(),
		}

		rate, err := m.tree.GetRate(d.ID)
		if err != nil {
			e.Error = err.Error()
		} else {
			e.RateHz = rate
		}

		entries = append(entries, e)
	}

	writeJSON(w, entries)
}

func (m *Monitor) clockRate(w http.ResponseWriter, r *http.Request) {
	id, ok := clockIDOr404(w, r)
	if !ok {
		return
	}

	rate, err := m.tree.GetRate(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, rateResponse{ID: uint32(id), RateHz: rate})
}

func (m *Monitor) setClockRate(w http.ResponseWriter, r *http.Request) {
	id, ok := clockIDOr404(w, r)
	if !ok {
		return
	}

	target, err := strconv.ParseUint(r.URL.Query().Get("target_hz"), 10, 64)
	if err != nil {
		http.Error(w, "target_hz must be a positive integer",
			http.StatusBadRequest)
		return
	}

	achieved, err := m.tree.SetRate(id, target)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, rateResponse{ID: uint32(id), RateHz: achieved})
}

func (m *Monitor) listRegisters(w http.ResponseWriter, _ *http.Request) {
	offsets := make(map[uint32]bool)
	for _, d := range m.tree.Registry().All() {
		if d.DivField.Valid() || d.PLL != nil {
			offsets[d.DivReg] = true
		}
		if d.SelField.Valid() {
			offsets[d.SelReg] = true
		}
	}

	sorted := make([]uint32, 0, len(offsets))
	for off := range offsets {
		sorted = append(sorted, off)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var entries []registerEntry
	for _, off := range sorted {
		val, err := m.space.Read32(off)
		if err != nil {
			writeError(w, err)
			return
		}

		entries = append(entries, registerEntry{
			Offset: fmt.Sprintf("0x%02x", off),
			Value:  fmt.Sprintf("0x%08x", val),
		})
	}

	writeJSON(w, entries)
}

func clockIDOr404(w http.ResponseWriter, r *http.Request) (clock.ID, bool) {
	vars := mux.Vars(r)

	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "clock id must be an integer", http.StatusNotFound)
		return 0, false
	}

	return clock.ID(id), true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(v)
	dieOnErr(err)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, clock.ErrInvalidID),
		errors.Is(err, clock.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, clock.ErrNotSupported),
		errors.Is(err, clock.ErrBadRate):
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
