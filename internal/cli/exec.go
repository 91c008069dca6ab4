package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ikonglong/querydsl"
	"github.com/ikonglong/querydsl/dialect"
	"github.com/ikonglong/querydsl/internal/querydoc"
	"github.com/ikonglong/querydsl/mongodb"
	"github.com/ikonglong/querydsl/sqlq"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// drivers maps the targets to their registered database/sql drivers.
var drivers = map[querydsl.Target]string{
	querydsl.TargetPostgreSQL: "postgres",
	querydsl.TargetMySQL:      "mysql",
	querydsl.TargetSQLite:     "sqlite",
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <query.yaml>",
		Short: "Run a query document and print the results",
		Long: `Run a query document against the configured database and print one line
per result. Table queries connect with the dsn of the config, collection
queries with the mongo uri and database.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := querydoc.ReadFile(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if d.IsCollection() {
				return runMongo(ctx, cmd.OutOrStdout(), rootOpts, d)
			}
			return runSQL(ctx, cmd.OutOrStdout(), rootOpts, d)
		},
	}
}

func runSQL(ctx context.Context, w io.Writer, opts *RootOptions, d *querydoc.Document) error {
	target, dia, err := opts.dialect()
	if err != nil {
		return err
	}
	driver, ok := drivers[target]
	if !ok {
		return fmt.Errorf("no driver for target %s", target)
	}
	if opts.Config.DSN == "" {
		return errors.New("dsn is not configured")
	}
	db, err := sql.Open(driver, opts.Config.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	return execSQL(ctx, w, db, dia, d, opts.Format, opts.sqlOptions()...)
}

// execSQL runs a table document on db and writes the rows to w.
func execSQL(ctx context.Context, w io.Writer, db sqlq.QueryAble, dia dialect.Dialect, d *querydoc.Document, format string, opt ...sqlq.Option) error {
	if len(d.Select) == 0 {
		return errors.New("exec: select is required for table queries")
	}
	q, err := d.SQLQuery()
	if err != nil {
		return err
	}
	rows, err := sqlq.Fetch(sqlq.NewContext(ctx, dia), db, q, func() ([]any, []any) {
		values := make([]any, len(d.Select))
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		return values, dest
	}, opt...)
	if err != nil {
		return err
	}
	if format == "json" {
		enc := json.NewEncoder(w)
		for _, row := range rows {
			m := make(map[string]any, len(row))
			for i, label := range d.Select {
				m[label] = cell(row[i])
			}
			if err := enc.Encode(m); err != nil {
				return err
			}
		}
		return nil
	}
	if _, err := fmt.Fprintln(w, strings.Join(d.Select, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(cell(v))
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func cell(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func runMongo(ctx context.Context, w io.Writer, opts *RootOptions, d *querydoc.Document) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.Config.Mongo.URI))
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			opts.Logger.Warn("disconnect", "error", err)
		}
	}()
	coll := client.Database(opts.Config.Mongo.Database).Collection(d.From.Collection)
	return execMongo(ctx, w, coll, d, opts.mongoOptions()...)
}

// execMongo runs a collection document on coll and writes the documents
// to w as relaxed extended JSON, one per line.
func execMongo(ctx context.Context, w io.Writer, coll *mongo.Collection, d *querydoc.Document, opt ...mongodb.Option) error {
	q, err := d.MongoQuery(coll, opt...)
	if err != nil {
		return err
	}
	keys, err := d.Keys()
	if err != nil {
		return err
	}
	docs, err := q.Fetch(ctx, keys...)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		b, err := bson.MarshalExtJSON(doc, false, false)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", b); err != nil {
			return err
		}
	}
	return nil
}

func (o *RootOptions) debug() bool {
	return o.Config != nil && strings.EqualFold(o.Config.Log.Level, "debug")
}

func (o *RootOptions) sqlOptions() []sqlq.Option {
	if o.Logger == nil {
		return nil
	}
	opts := []sqlq.Option{sqlq.WithLogger(o.Logger)}
	if o.debug() {
		opts = append(opts, sqlq.WithDebug(), sqlq.WithMeasureTime())
	}
	return opts
}

func (o *RootOptions) mongoOptions() []mongodb.Option {
	if o.Logger == nil {
		return nil
	}
	opts := []mongodb.Option{mongodb.WithLogger(o.Logger)}
	if o.debug() {
		opts = append(opts, mongodb.WithDebug(), mongodb.WithMeasureTime())
	}
	return opts
}
