package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the entry form service
const ServiceName = "smartlog.entry.v1.EntryFormService"

// EntryFormServiceServer is the server API for the entry form service.
// Requests and responses are google.protobuf.Struct documents.
type EntryFormServiceServer interface {
	OpenForm(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateField(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SelectSuggestion(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FocusCategory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	BlurCategory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Validate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Submit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CloseForm(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetForm(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTransactions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(EntryFormServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodDesc(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}

			server := srv.(EntryFormServiceServer)
			if interceptor == nil {
				return call(server, ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(server, ctx, req.(*structpb.Struct))
			})
		},
	}
}

// EntryFormService_ServiceDesc describes the entry form service for grpc.Server.RegisterService
var EntryFormService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EntryFormServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc("OpenForm", EntryFormServiceServer.OpenForm),
		methodDesc("UpdateField", EntryFormServiceServer.UpdateField),
		methodDesc("SelectSuggestion", EntryFormServiceServer.SelectSuggestion),
		methodDesc("FocusCategory", EntryFormServiceServer.FocusCategory),
		methodDesc("BlurCategory", EntryFormServiceServer.BlurCategory),
		methodDesc("Validate", EntryFormServiceServer.Validate),
		methodDesc("Submit", EntryFormServiceServer.Submit),
		methodDesc("CloseForm", EntryFormServiceServer.CloseForm),
		methodDesc("GetForm", EntryFormServiceServer.GetForm),
		methodDesc("ListTransactions", EntryFormServiceServer.ListTransactions),
		methodDesc("GetSummary", EntryFormServiceServer.GetSummary),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "smartlog/entry/v1/entry.proto",
}

// RegisterEntryFormServiceServer registers srv on s
func RegisterEntryFormServiceServer(s grpc.ServiceRegistrar, srv EntryFormServiceServer) {
	s.RegisterService(&EntryFormService_ServiceDesc, srv)
}
