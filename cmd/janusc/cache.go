package main

import (
	"fmt"
	"os"

	"github.com/janus-lang/janus/internal/cache"
)

func tryCacheCommand() bool {
	if len(os.Args) < 2 || os.Args[1] != "cache" {
		return false
	}
	handleCache()
	return true
}

func handleCache() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "usage: janusc cache <inspect|stats> <dir>")
		os.Exit(2)
	}

	sub := os.Args[2]
	dir := os.Args[3]

	c, err := cache.New(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "janusc: %v\n", err)
		os.Exit(2)
	}

	switch sub {
	case "inspect":
		for _, e := range c.Entries() {
			fmt.Printf("%s\tsig=%#x\ttype_sig=%#x\tsize=%d\taccesses=%d\n", e.File, e.SigHash, e.TypeSigHash, e.Size, e.Accesses)
		}
	case "stats":
		s := c.StatsSnapshot()
		fmt.Printf("hits=%d misses=%d avg_serialize_ns=%d avg_deserialize_ns=%d\n",
			s.Hits, s.Misses, s.AvgSerializeNanos(), s.AvgDeserializeNanos())
	default:
		fmt.Fprintf(os.Stderr, "janusc: unknown cache subcommand %q\n", sub)
		os.Exit(2)
	}
}
