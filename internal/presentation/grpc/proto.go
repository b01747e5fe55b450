package grpc

// proto.go is the hand-written equivalent of generated service code for
// onboardiq.onboarding.v1.OnboardingService. Messages travel as JSON (see codec.go).

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onboardiq/onboardiq/internal/application/dto"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "onboardiq.onboarding.v1.OnboardingService"

// OnboardingServiceServer is the server API for OnboardingService.
type OnboardingServiceServer interface {
	AssessApplication(context.Context, *AssessApplicationRequest) (*dto.AssessmentPreviewResponse, error)
	SubmitApplication(context.Context, *SubmitApplicationRequest) (*SubmissionReply, error)
	GetSubmission(context.Context, *GetSubmissionRequest) (*SubmissionReply, error)
	ListSubmissions(context.Context, *ListSubmissionsRequest) (*dto.ListSubmissionsResponse, error)
	UpdateSubmission(context.Context, *UpdateSubmissionRequest) (*SubmissionReply, error)
	OverrideStatus(context.Context, *OverrideStatusRequest) (*SubmissionReply, error)
	DeleteSubmission(context.Context, *DeleteSubmissionRequest) (*DeleteSubmissionResponse, error)
	GetStatistics(context.Context, *GetStatisticsRequest) (*dto.StatisticsResponse, error)
	mustEmbedUnimplementedOnboardingServiceServer()
}

// UnimplementedOnboardingServiceServer provides forward-compatible default implementations.
type UnimplementedOnboardingServiceServer struct{}

func (UnimplementedOnboardingServiceServer) AssessApplication(context.Context, *AssessApplicationRequest) (*dto.AssessmentPreviewResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessApplication not implemented")
}
func (UnimplementedOnboardingServiceServer) SubmitApplication(context.Context, *SubmitApplicationRequest) (*SubmissionReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitApplication not implemented")
}
func (UnimplementedOnboardingServiceServer) GetSubmission(context.Context, *GetSubmissionRequest) (*SubmissionReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSubmission not implemented")
}
func (UnimplementedOnboardingServiceServer) ListSubmissions(context.Context, *ListSubmissionsRequest) (*dto.ListSubmissionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListSubmissions not implemented")
}
func (UnimplementedOnboardingServiceServer) UpdateSubmission(context.Context, *UpdateSubmissionRequest) (*SubmissionReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateSubmission not implemented")
}
func (UnimplementedOnboardingServiceServer) OverrideStatus(context.Context, *OverrideStatusRequest) (*SubmissionReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method OverrideStatus not implemented")
}
func (UnimplementedOnboardingServiceServer) DeleteSubmission(context.Context, *DeleteSubmissionRequest) (*DeleteSubmissionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteSubmission not implemented")
}
func (UnimplementedOnboardingServiceServer) GetStatistics(context.Context, *GetStatisticsRequest) (*dto.StatisticsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetStatistics not implemented")
}
func (UnimplementedOnboardingServiceServer) mustEmbedUnimplementedOnboardingServiceServer() {}

// RegisterOnboardingServiceServer registers srv with the gRPC server.
func RegisterOnboardingServiceServer(s grpclib.ServiceRegistrar, srv OnboardingServiceServer) {
	s.RegisterService(&onboardingServiceDesc, srv)
}

var onboardingServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OnboardingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessApplication", Handler: unaryHandler("AssessApplication", OnboardingServiceServer.AssessApplication)},
		{MethodName: "SubmitApplication", Handler: unaryHandler("SubmitApplication", OnboardingServiceServer.SubmitApplication)},
		{MethodName: "GetSubmission", Handler: unaryHandler("GetSubmission", OnboardingServiceServer.GetSubmission)},
		{MethodName: "ListSubmissions", Handler: unaryHandler("ListSubmissions", OnboardingServiceServer.ListSubmissions)},
		{MethodName: "UpdateSubmission", Handler: unaryHandler("UpdateSubmission", OnboardingServiceServer.UpdateSubmission)},
		{MethodName: "OverrideStatus", Handler: unaryHandler("OverrideStatus", OnboardingServiceServer.OverrideStatus)},
		{MethodName: "DeleteSubmission", Handler: unaryHandler("DeleteSubmission", OnboardingServiceServer.DeleteSubmission)},
		{MethodName: "GetStatistics", Handler: unaryHandler("GetStatistics", OnboardingServiceServer.GetStatistics)},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "onboardiq/onboarding/v1/onboarding.proto",
}

// unaryHandler adapts a typed method to grpc.MethodDesc, running the server's
// unary interceptor chain the way generated code does.
func unaryHandler[Req, Resp any](
	method string,
	call func(OnboardingServiceServer, context.Context, *Req) (*Resp, error),
) func(any, context.Context, func(any) error, grpclib.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		req := new(Req)
		if err := dec(req); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(OnboardingServiceServer), ctx, req)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(OnboardingServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, req, info, handler)
	}
}
