package main

import (
	"fmt"
	"os"

	"github.com/janus-lang/janus/internal/astdb"
	"github.com/janus-lang/janus/internal/query"
)

func tryQueryCommand() bool {
	if len(os.Args) < 2 || os.Args[1] != "query" {
		return false
	}
	handleQuery()
	return true
}

// handleQuery implements the CLI query surface (spec §6): one matching
// declaration per line as kind\tname\tfile:line:col. Exit codes: 0
// normal, 1 parse error in expr, 2 I/O error reading the declaration
// set.
func handleQuery() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: janusc query <expr> [--decls path]")
		os.Exit(2)
	}
	expr := os.Args[2]

	declsPath := "decls.json"
	for i := 3; i < len(os.Args)-1; i++ {
		if os.Args[i] == "--decls" {
			declsPath = os.Args[i+1]
		}
	}

	db, err := astdb.LoadJSON(declsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "janusc: %v\n", err)
		os.Exit(2)
	}

	results, err := query.Run(db, expr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "janusc: %v\n", err)
		os.Exit(1)
	}

	for _, d := range results {
		fmt.Printf("%s\t%s\t%s:%d:%d\n", d.Kind, d.Name, d.File, d.Line, d.Column)
	}
}
