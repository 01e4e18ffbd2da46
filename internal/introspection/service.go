package introspection

import (
	"context"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"

	"github.com/janus-lang/janus/internal/astdb"
	"github.com/janus-lang/janus/internal/query"
)

// Server answers Query Predicate Language requests over gRPC, backed by
// one in-memory declaration store.
type Server struct {
	fd *desc.FileDescriptor

	requestMD *desc.MessageDescriptor
	resultMD  *desc.MessageDescriptor
	declMD    *desc.MessageDescriptor

	exprField   *desc.FieldDescriptor
	declsField  *desc.FieldDescriptor
	errorField  *desc.FieldDescriptor
	kindField   *desc.FieldDescriptor
	nameField   *desc.FieldDescriptor
	fileField   *desc.FieldDescriptor
	lineField   *desc.FieldDescriptor
	columnField *desc.FieldDescriptor

	db *astdb.DB
}

// NewServer loads the introspection schema and wraps db for querying.
func NewServer(db *astdb.DB) (*Server, error) {
	fd, err := loadSchema()
	if err != nil {
		return nil, err
	}

	requestMD, err := findMessage(fd, "QueryRequest")
	if err != nil {
		return nil, err
	}
	resultMD, err := findMessage(fd, "QueryResult")
	if err != nil {
		return nil, err
	}
	declMD, err := findMessage(fd, "Decl")
	if err != nil {
		return nil, err
	}

	return &Server{
		fd:        fd,
		requestMD: requestMD,
		resultMD:  resultMD,
		declMD:    declMD,

		exprField:   requestMD.FindFieldByName("expr"),
		declsField:  resultMD.FindFieldByName("decls"),
		errorField:  resultMD.FindFieldByName("error"),
		kindField:   declMD.FindFieldByName("kind"),
		nameField:   declMD.FindFieldByName("name"),
		fileField:   declMD.FindFieldByName("file"),
		lineField:   declMD.FindFieldByName("line"),
		columnField: declMD.FindFieldByName("column"),

		db: db,
	}, nil
}

// FileDescriptor exposes the parsed schema so reflection-capable clients
// (grpcurl-style tooling) can discover the service without a compiled
// stub.
func (s *Server) FileDescriptor() *desc.FileDescriptor {
	return s.fd
}

// handleQuery runs one query against s.db and builds a QueryResult
// message. It never returns a gRPC-level error for a bad expression;
// the query language's own ParseError is reported in the error field
// instead, mirroring how §4.O expects a malformed expression to be a
// reportable outcome, not a transport failure.
func (s *Server) handleQuery(req *dynamic.Message) *dynamic.Message {
	result := dynamic.NewMessage(s.resultMD)

	expr, _ := req.GetField(s.exprField).(string)
	decls, err := query.Run(s.db, expr)
	if err != nil {
		result.SetField(s.errorField, err.Error())
		return result
	}

	entries := make([]interface{}, 0, len(decls))
	for _, d := range decls {
		dm := dynamic.NewMessage(s.declMD)
		dm.SetField(s.kindField, d.Kind.String())
		dm.SetField(s.nameField, d.Name)
		dm.SetField(s.fileField, d.File)
		dm.SetField(s.lineField, int32(d.Line))
		dm.SetField(s.columnField, int32(d.Column))
		entries = append(entries, dm)
	}
	result.SetField(s.declsField, entries)
	return result
}

// ServiceDesc builds a grpc.ServiceDesc for the schema's single Query
// method. Hand-built rather than protoc-gen-go-grpc generated, since the
// schema itself is parsed at runtime rather than compiled ahead of
// time — the same shape funxy's own grpcRegister builtin assembles at
// runtime from a *desc.ServiceDescriptor.
func (s *Server) ServiceDesc() *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: "janus.introspection.Introspection",
		HandlerType: (*any)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "Query",
				Handler: func(_ any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					req := dynamic.NewMessage(s.requestMD)
					if err := dec(req); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return s.handleQuery(req), nil
					}
					info := &grpc.UnaryServerInfo{FullMethod: "/janus.introspection.Introspection/Query"}
					handler := func(ctx context.Context, r any) (any, error) {
						return s.handleQuery(r.(*dynamic.Message)), nil
					}
					return interceptor(ctx, req, info, handler)
				},
			},
		},
		Metadata: schemaFileName,
	}
}

// Register adds the Introspection service to grpcServer. The second
// argument to RegisterService is deliberately nil: the method handler
// closes over s directly rather than receiving it through grpc's usual
// typed-interface dispatch, since there is no generated service
// interface to satisfy.
func (s *Server) Register(grpcServer *grpc.Server) {
	grpcServer.RegisterService(s.ServiceDesc(), nil)
}
