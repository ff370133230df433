// Package recording persists register-access traces into SQLite files, so
// a boot sequence's register traffic can be inspected after the fact.
package recording

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/clocktree/regio"
)

// An AccessEntry is one recorded register access.
type AccessEntry struct {
	Seq    int
	Op     string
	Offset uint32
	Value  uint32
}

// A TraceRecorder is a regio hook that batches every register read and
// write it sees into a SQLite database.
type TraceRecorder struct {
	*sql.DB

	dbName    string
	buf       []AccessEntry
	seq       int
	batchSize int
}

// NewTraceRecorder creates a TraceRecorder writing to path. With an empty
// path, a unique name is generated.
func NewTraceRecorder(path string) *TraceRecorder {
	r := &TraceRecorder{
		dbName:    path,
		batchSize: 1024,
	}

	r.init()

	atexit.Register(func() { r.Flush() })

	return r
}

// NewTraceRecorderWithDB creates a TraceRecorder over an open database.
func NewTraceRecorderWithDB(db *sql.DB) *TraceRecorder {
	r := &TraceRecorder{
		DB:        db,
		batchSize: 1024,
	}

	r.createTable()

	atexit.Register(func() { r.Flush() })

	return r
}

// init establishes a connection to the database.
func (r *TraceRecorder) init() {
	if r.dbName == "" {
		r.dbName = "clocktree_trace_" + xid.New().String()
	}

	filename := r.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	r.DB = db
	r.createTable()
}

func (r *TraceRecorder) createTable() {
	_, err := r.Exec(
		`CREATE TABLE IF NOT EXISTS register_trace (
			seq INTEGER,
			op TEXT,
			offset INTEGER,
			value INTEGER
		)`)
	if err != nil {
		panic(err)
	}
}

// Func implements regio.Hook. Entries are buffered and land in the
// database on Flush or when the batch fills up.
func (r *TraceRecorder) Func(ctx regio.HookCtx) {
	op := "read"
	if ctx.Pos == regio.HookPosWrite {
		op = "write"
	}

	r.seq++
	r.buf = append(r.buf, AccessEntry{
		Seq:    r.seq,
		Op:     op,
		Offset: ctx.Offset,
		Value:  ctx.Value,
	})

	if len(r.buf) >= r.batchSize {
		r.Flush()
	}
}

// Flush writes all buffered entries into the database.
func (r *TraceRecorder) Flush() {
	if len(r.buf) == 0 {
		return
	}

	tx, err := r.Begin()
	if err != nil {
		panic(err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO register_trace (seq, op, offset, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		panic(err)
	}

	for _, e := range r.buf {
		if _, err := stmt.Exec(e.Seq, e.Op, e.Offset, e.Value); err != nil {
			panic(err)
		}
	}

	if err := tx.Commit(); err != nil {
		panic(err)
	}

	r.buf = r.buf[:0]
}
