// Command querydsl renders and runs YAML query documents.
package main

import (
	"os"

	"github.com/ikonglong/querydsl/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
