package cli

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderGolden(t *testing.T) {
	testCases := []struct {
		name   string
		target string
		format string
		file   string
	}{
		{"render_postgres", "postgres", "text", "testdata/queries/employees.yaml"},
		{"render_mysql", "mysql", "text", "testdata/queries/by_initial.yaml"},
		{"render_json", "postgres", "json", "testdata/queries/by_id.yaml"},
		{"render_mongo", "postgres", "text", "testdata/queries/users.yaml"},
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			cmd := NewRenderCommand(&RootOptions{Target: tc.target, Format: tc.format})
			cmd.SetOut(buf)
			cmd.SetArgs([]string{tc.file})
			require.NoError(t, cmd.Execute())
			g.Assert(t, tc.name, buf.Bytes())
		})
	}
}

func TestRenderErrors(t *testing.T) {
	testCases := []struct {
		name   string
		target string
		args   []string
		want   string
	}{
		{"missing file", "postgres", []string{"testdata/queries/missing.yaml"}, "missing.yaml"},
		{"table on mongodb", "mongodb", []string{"testdata/queries/by_id.yaml"}, "cannot target mongodb"},
		{"unknown target", "db2", []string{"testdata/queries/by_id.yaml"}, "unknown target"},
		{"no args", "postgres", []string{}, "accepts 1 arg(s)"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := NewRenderCommand(&RootOptions{Target: tc.target, Format: "text"})
			cmd.SetOut(new(bytes.Buffer))
			cmd.SetErr(new(bytes.Buffer))
			cmd.SetArgs(tc.args)
			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
