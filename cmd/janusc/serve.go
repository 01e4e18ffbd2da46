package main

import (
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/janus-lang/janus/internal/astdb"
	"github.com/janus-lang/janus/internal/introspection"
)

func tryServeCommand() bool {
	if len(os.Args) < 2 || os.Args[1] != "serve" {
		return false
	}
	handleServe()
	return true
}

// handleServe starts the gRPC Introspection Service (internal/introspection)
// over a declaration set loaded from disk, the second surface over the
// same query core alongside the `query` CLI subcommand.
func handleServe() {
	addr := ":50505"
	declsPath := "decls.json"
	for i := 2; i < len(os.Args)-1; i++ {
		switch os.Args[i] {
		case "--addr":
			addr = os.Args[i+1]
		case "--decls":
			declsPath = os.Args[i+1]
		}
	}

	db, err := astdb.LoadJSON(declsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "janusc: %v\n", err)
		os.Exit(2)
	}

	introSrv, err := introspection.NewServer(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "janusc: %v\n", err)
		os.Exit(2)
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "janusc: %v\n", err)
		os.Exit(2)
	}

	grpcServer := grpc.NewServer()
	introSrv.Register(grpcServer)

	fmt.Fprintf(os.Stderr, "janusc: introspection service listening on %s\n", addr)
	if err := grpcServer.Serve(lis); err != nil {
		fmt.Fprintf(os.Stderr, "janusc: %v\n", err)
		os.Exit(2)
	}
}
