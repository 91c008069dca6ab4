package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ikonglong/querydsl"
	"github.com/ikonglong/querydsl/dialect"
	"github.com/ikonglong/querydsl/internal/querydoc"
	"github.com/ikonglong/querydsl/mongodb"
	"github.com/ikonglong/querydsl/sqlq"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
)

// SQLOutput is the JSON output of a rendered SQL query.
type SQLOutput struct {
	Name   string `json:"name,omitempty"`
	Target string `json:"target"`
	Query  string `json:"query"`
	Args   []any  `json:"args"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render <query.yaml>",
		Short: "Render a query document",
		Long: `Render a query document into SQL with its arguments for the target dialect,
or into a MongoDB find command if it queries a collection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := querydoc.ReadFile(args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), rootOpts, d)
		},
	}
}

func render(w io.Writer, opts *RootOptions, d *querydoc.Document) error {
	if d.IsCollection() {
		return renderMongo(w, d)
	}
	target, dia, err := opts.dialect()
	if err != nil {
		return err
	}
	q, err := d.SQLQuery()
	if err != nil {
		return err
	}
	query, args, err := q.Build(sqlq.NewContext(context.Background(), dia))
	if err != nil {
		return err
	}
	if opts.Format == "json" {
		if args == nil {
			args = []any{}
		}
		return json.NewEncoder(w).Encode(SQLOutput{
			Name:   d.Name,
			Target: target.String(),
			Query:  query,
			Args:   args,
		})
	}
	_, err = fmt.Fprintf(w, "%s\nargs: %v\n", query, args)
	return err
}

func renderMongo(w io.Writer, d *querydoc.Document) error {
	command, err := findCommand(d)
	if err != nil {
		return err
	}
	b, err := bson.MarshalExtJSON(command, false, false)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

// findCommand returns the find command of a collection document.
func findCommand(d *querydoc.Document) (bson.D, error) {
	q, err := d.MongoQuery(nil)
	if err != nil {
		return nil, err
	}
	filter, err := q.Filter()
	if err != nil {
		return nil, err
	}
	s := mongodb.NewSerializer(nil)
	sort, err := s.Sort(q.Metadata().OrderBy())
	if err != nil {
		return nil, err
	}
	keys, err := d.Keys()
	if err != nil {
		return nil, err
	}
	proj, err := s.Projection(keys)
	if err != nil {
		return nil, err
	}
	command := bson.D{
		{Key: "find", Value: d.From.Collection},
		{Key: "filter", Value: filter},
	}
	if len(sort) > 0 {
		command = append(command, bson.E{Key: "sort", Value: sort})
	}
	if len(proj) > 0 {
		command = append(command, bson.E{Key: "projection", Value: proj})
	}
	if d.Limit > 0 {
		command = append(command, bson.E{Key: "limit", Value: d.Limit})
	}
	if d.Offset > 0 {
		command = append(command, bson.E{Key: "skip", Value: d.Offset})
	}
	return command, nil
}

var errMongoTarget = errors.New("a table query cannot target " + querydsl.TargetMongoDB.String())

// dialect returns the target and the SQL dialect of a table query.
func (o *RootOptions) dialect() (querydsl.Target, dialect.Dialect, error) {
	target, err := o.target()
	if err != nil {
		return querydsl.TargetUnknown, nil, err
	}
	if target == querydsl.TargetMongoDB {
		return target, nil, errMongoTarget
	}
	d, err := dialect.ForTarget(target)
	if err != nil {
		return target, nil, err
	}
	return target, d, nil
}
