package grpc

import (
	"context"

	"github.com/dsmelov/authsvc/internal/common"
	pb "github.com/dsmelov/authsvc/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type contextKey string

const userIDKey contextKey = "userID"

// protectedMethods lists the full method names that require a valid session
// token in the request metadata.
var protectedMethods = map[string]struct{}{
	pb.Auth_ChangePassword_FullMethodName: {},
}

// UserIDFromContext returns the authenticated user id placed into the context
// by the session token interceptor.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// sessionTokenInterceptor authenticates requests to protected methods. It
// reads the session token from incoming metadata, validates it against the
// session store and injects the owning user id into the handler context.
func (s *GRPCServer) sessionTokenInterceptor(ctx context.Context, req any,
	info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if _, ok := protectedMethods[info.FullMethod]; !ok {
		return handler(ctx, req)
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing session token")
	}

	values := md.Get(common.SessionTokenHeaderName)
	if len(values) == 0 || values[0] == "" {
		return nil, status.Error(codes.Unauthenticated, "missing session token")
	}

	userID, err := s.auth.Authenticate(ctx, values[0])
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid session token")
	}

	return handler(context.WithValue(ctx, userIDKey, userID), req)
}
