// Package recording writes simulation results to SQLite databases. Rows
// are buffered and inserted in batches; the tables are derived from the
// exported fields of the entry structs.
package recording

import (
	"database/sql"
	"fmt"
	"log"
	"reflect"
	"strings"

	// Imported for the sqlite3 database/sql driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/tebeka/atexit"
)

// A DataRecorder records tabular simulation results.
type DataRecorder interface {
	// CreateTable prepares a table whose columns mirror the exported
	// fields of the sample entry.
	CreateTable(table string, sample any)

	// Insert buffers one entry for the given table.
	Insert(table string, entry any)

	// Flush writes all the buffered entries out.
	Flush()

	// ListTables returns the names of the created tables.
	ListTables() []string
}

// batchSize is the number of buffered rows that triggers a write.
const batchSize = 100000

// NewSQLiteWriter creates a DataRecorder backed by a SQLite database. The
// ".sqlite3" suffix is appended to the path. The writer flushes and closes
// at program exit.
func NewSQLiteWriter(path string) *SQLiteWriter {
	w := &SQLiteWriter{
		path:   path,
		tables: make(map[string]*tableBuffer),
	}

	atexit.Register(w.Close)

	return w
}

// An SQLiteWriter is the SQLite implementation of DataRecorder.
type SQLiteWriter struct {
	path string
	db   *sql.DB

	tableNames []string
	tables     map[string]*tableBuffer
}

type tableBuffer struct {
	columns []string
	rows    [][]any
}

// Init opens the database file. It must be called before CreateTable.
func (w *SQLiteWriter) Init() {
	if w.db != nil {
		panic("sqlite writer is already initialized")
	}

	db, err := sql.Open("sqlite3", w.path+".sqlite3")
	if err != nil {
		log.Panic(err)
	}

	w.db = db
}

// Filename returns the name of the database file.
func (w *SQLiteWriter) Filename() string {
	return w.path + ".sqlite3"
}

// CreateTable prepares a table for the entry type of the sample.
func (w *SQLiteWriter) CreateTable(table string, sample any) {
	if _, found := w.tables[table]; found {
		panic(fmt.Sprintf("table %s already created", table))
	}

	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	columns := make([]string, 0, t.NumField())
	defs := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		columns = append(columns, field.Name)
		defs = append(defs,
			fmt.Sprintf("%s %s", field.Name, columnType(field.Type)))
	}

	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s);",
		table, strings.Join(defs, ", "))
	if _, err := w.db.Exec(stmt); err != nil {
		log.Panic(err)
	}

	w.tableNames = append(w.tableNames, table)
	w.tables[table] = &tableBuffer{columns: columns}
}

func columnType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64:
		return "INTEGER"
	case reflect.Float32, reflect.Float64:
		return "REAL"
	default:
		return "TEXT"
	}
}

// Insert buffers one entry.
func (w *SQLiteWriter) Insert(table string, entry any) {
	buf, found := w.tables[table]
	if !found {
		panic(fmt.Sprintf("table %s is not created", table))
	}

	v := reflect.ValueOf(entry)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	row := make([]any, 0, len(buf.columns))
	for _, column := range buf.columns {
		row = append(row, normalize(v.FieldByName(column)))
	}
	buf.rows = append(buf.rows, row)

	if len(buf.rows) >= batchSize {
		w.flushTable(table, buf)
	}
}

func normalize(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return 1
		}
		return 0
	case reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64:
		return int64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		return v.String()
	default:
		return fmt.Sprint(v.Interface())
	}
}

// Flush writes all the buffered rows out.
func (w *SQLiteWriter) Flush() {
	for _, name := range w.tableNames {
		w.flushTable(name, w.tables[name])
	}
}

func (w *SQLiteWriter) flushTable(name string, buf *tableBuffer) {
	if len(buf.rows) == 0 {
		return
	}

	tx, err := w.db.Begin()
	if err != nil {
		log.Panic(err)
	}

	placeholders := "?" + strings.Repeat(", ?", len(buf.columns)-1)
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s);",
		name, strings.Join(buf.columns, ", "), placeholders))
	if err != nil {
		log.Panic(err)
	}

	for _, row := range buf.rows {
		if _, err := stmt.Exec(row...); err != nil {
			log.Panic(err)
		}
	}

	if err := stmt.Close(); err != nil {
		log.Panic(err)
	}

	if err := tx.Commit(); err != nil {
		log.Panic(err)
	}

	buf.rows = buf.rows[:0]
}

// ListTables returns the names of the created tables.
func (w *SQLiteWriter) ListTables() []string {
	names := make([]string, len(w.tableNames))
	copy(names, w.tableNames)

	return names
}

// Close flushes the buffers and closes the database.
func (w *SQLiteWriter) Close() {
	if w.db == nil {
		return
	}

	w.Flush()

	if err := w.db.Close(); err != nil {
		log.Panic(err)
	}

	w.db = nil
}
