// Package introspection is a gRPC front for the Query Predicate
// Language (internal/query): the same "second surface over the same
// core" shape as shipping both a CLI and an LSP over one analyzer, here
// wrapping internal/query instead.
//
// The service schema is parsed from schema.proto at process startup
// with jhump/protoreflect's protoparse and served with its dynamic
// message type, the same descriptors-without-protoc, dynamic.Message
// pattern funxy's own gRPC builtins use
// (internal/evaluator/builtins_grpc.go) for a generic proto runtime with
// no generated stub.
package introspection

import (
	_ "embed"
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
)

//go:embed schema.proto
var schemaSource string

const schemaFileName = "schema.proto"

// loadSchema parses schema.proto in memory, without a protoc step.
func loadSchema() (*desc.FileDescriptor, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{
			schemaFileName: schemaSource,
		}),
	}
	fds, err := parser.ParseFiles(schemaFileName)
	if err != nil {
		return nil, fmt.Errorf("introspection: parsing %s: %w", schemaFileName, err)
	}
	return fds[0], nil
}

// findMessage looks up a message descriptor by its unqualified name.
func findMessage(fd *desc.FileDescriptor, name string) (*desc.MessageDescriptor, error) {
	md := fd.FindMessage(fd.GetPackage() + "." + name)
	if md == nil {
		return nil, fmt.Errorf("introspection: schema %s has no message %q", schemaFileName, name)
	}
	return md, nil
}
