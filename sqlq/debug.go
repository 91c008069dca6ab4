package sqlq

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/qjebbs/go-sqlf/v4/dialect"
	"github.com/qjebbs/go-sqlf/v4/util"
)

var errIncompleteInterpolation = errors.New("query is not fully interpolated")

// interpolate returns the query with args interpolated for dialect d,
// followed by the slog attributes of an incomplete interpolation.
func interpolate(d dialect.Dialect, query string, args []any) (string, []any) {
	interpolated, ok := util.Interpolate(query, args, d)
	if !ok {
		return interpolated, []any{"args", args, "error", errIncompleteInterpolation}
	}
	return interpolated, nil
}

type debugger struct {
	debug bool // debug mode
	name  string
}

// Debug enables debug mode which logs the built query.
func (b *debugger) Debug(name ...string) {
	b.debug = true
	if len(name) == 0 {
		b.name = "sqlq"
		return
	}
	b.name = strings.Replace(strings.Join(name, "_"), " ", "_", -1)
}

// printIfDebug logs the interpolated query with slog.
func (b *debugger) printIfDebug(ctx Context, query string, args []any) {
	if !b.debug {
		return
	}
	prefix := b.name
	if prefix == "" {
		prefix = "sqlq"
	}
	interpolated, attrs := interpolate(ctx.Dialect(), query, args)
	slog.Info("built query", append([]any{"name", prefix, "query", interpolated}, attrs...)...)
}

// execDebugger traces a query execution.
type execDebugger struct {
	logger      *slog.Logger
	dialect     dialect.Dialect
	name        string
	measureTime bool

	query string
	args  []any
	attrs []any

	start time.Time
}

func newExecDebugger(logger *slog.Logger, d dialect.Dialect, funcName string, value any, measureTime bool) *execDebugger {
	if logger == nil {
		logger = slog.Default()
	}
	return &execDebugger{
		logger:      logger,
		dialect:     d,
		name:        fmt.Sprintf("%s(%T)", funcName, value),
		measureTime: measureTime,
		start:       time.Now(),
	}
}

func (d *execDebugger) print() {
	query, attrs := interpolate(d.dialect, d.query, d.args)
	attrs = append([]any{"name", d.name, "query", query}, attrs...)
	d.logger.Info("query executed", append(attrs, d.attrs...)...)
}

func (d *execDebugger) onQuery(query string, args []any) {
	d.query = query
	d.args = args
	if !d.measureTime {
		return
	}
	d.attrs = append(d.attrs, "build", time.Since(d.start))
	d.start = time.Now()
}

func (d *execDebugger) onExec(err error) {
	if err != nil {
		d.attrs = append(d.attrs, "error", err)
		return
	}
	if !d.measureTime {
		return
	}
	d.attrs = append(d.attrs, "exec", time.Since(d.start))
	d.start = time.Now()
}

func wrapErrWithDebugName(funcName string, value any, err error) error {
	if err == nil {
		return err
	}
	// not wrapping well known errors for easier checking
	if errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return fmt.Errorf("%s(%T): %w", funcName, value, err)
}
