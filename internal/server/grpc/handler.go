package grpc

import (
	"context"
	"errors"

	"github.com/dsmelov/authsvc/internal/common"
	pb "github.com/dsmelov/authsvc/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Handlers translate sentinel errors from the auth service into gRPC status
// codes. The unknown-user and wrong-password sign-in failures share one
// message so the response leaks nothing about which check failed.

func (s *GRPCServer) SignUp(ctx context.Context, req *pb.SignUpRequest) (*pb.SignUpResponse, error) {

	s.logger.Info(ctx, "Sign-up request")

	userID, err := s.auth.SignUp(ctx, req.GetUsername(), req.GetPassword())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidInput):
			return nil, status.Error(codes.InvalidArgument, "username and password must not be empty")
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, status.Error(codes.AlreadyExists, "username already taken")
		default:
			s.logger.Error(ctx, err.Error())
			return nil, status.Error(codes.Internal, "internal error")
		}
	}

	s.logger.Info(ctx, "Signed up", "username", req.GetUsername())
	return &pb.SignUpResponse{UserId: userID}, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *pb.SignInRequest) (*pb.SignInResponse, error) {

	sess, err := s.auth.SignIn(ctx, req.GetUsername(), req.GetPassword())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidInput):
			return nil, status.Error(codes.InvalidArgument, "username and password must not be empty")
		case errors.Is(err, common.ErrorUnauthorized):
			return nil, status.Error(codes.Unauthenticated, "invalid username or password")
		default:
			s.logger.Error(ctx, err.Error())
			return nil, status.Error(codes.Internal, "internal error")
		}
	}

	resp := &pb.SignInResponse{SessionToken: sess.Token}
	if !sess.ExpiresAt.IsZero() {
		resp.ExpiresAt = sess.ExpiresAt.Unix()
	}
	return resp, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *pb.SignOutRequest) (*pb.SignOutResponse, error) {

	if err := s.auth.SignOut(ctx, req.GetSessionToken()); err != nil {
		if errors.Is(err, common.ErrorInvalidSession) {
			return nil, status.Error(codes.Unauthenticated, "invalid session token")
		}
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &pb.SignOutResponse{}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *pb.ChangePasswordRequest) (*pb.ChangePasswordResponse, error) {

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		// The interceptor always runs first; reaching here without a user
		// means the method set below is out of sync.
		return nil, status.Error(codes.Unauthenticated, "missing session token")
	}

	if err := s.auth.ChangePassword(ctx, userID, req.GetOldPassword(), req.GetNewPassword()); err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidInput):
			return nil, status.Error(codes.InvalidArgument, "passwords must not be empty")
		case errors.Is(err, common.ErrorUnauthorized):
			return nil, status.Error(codes.Unauthenticated, "invalid credentials")
		default:
			s.logger.Error(ctx, err.Error())
			return nil, status.Error(codes.Internal, "internal error")
		}
	}

	s.logger.Info(ctx, "Password changed", "user_id", userID)
	return &pb.ChangePasswordResponse{}, nil
}
