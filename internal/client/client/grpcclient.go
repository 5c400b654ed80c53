package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dsmelov/authsvc/internal/common"
	pb "github.com/dsmelov/authsvc/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL  string
	conn         *grpc.ClientConn
	client       pb.AuthClient
	health       healthpb.HealthClient
	sessionToken string
}

func withSessionToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.SessionTokenHeaderName)
	md.Set(common.SessionTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// sessionTokenInterceptor attaches the active session token, if any, to every
// outgoing call. Sessions are opaque server-side tokens, so there is nothing
// to refresh on expiry; an expired session surfaces as ErrUnauthorized.
func (s *GRPCClient) sessionTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.sessionToken != "" {
		ctx = withSessionToken(ctx, s.sessionToken)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewAuthClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.sessionTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewAuthClient(conn)
	s.health = healthpb.NewHealthClient(conn)
	return nil
}

func (s *GRPCClient) SignUp(ctx context.Context, username, password string) (string, error) {

	req := &pb.SignUpRequest{Username: username, Password: password}

	resp, err := s.client.SignUp(ctx, req)

	if err != nil {
		return "", s.mapError(err)
	}

	return resp.GetUserId(), nil

}

// SignIn authenticates and stores the issued session token for subsequent
// calls. The returned time is the session expiry; zero means no expiry.
func (s *GRPCClient) SignIn(ctx context.Context, username, password string) (time.Time, error) {

	req := &pb.SignInRequest{Username: username, Password: password}

	resp, err := s.client.SignIn(ctx, req)

	if err != nil {
		return time.Time{}, s.mapError(err)
	}

	s.sessionToken = resp.GetSessionToken()

	if resp.GetExpiresAt() == 0 {
		return time.Time{}, nil
	}
	return time.Unix(resp.GetExpiresAt(), 0), nil

}

// SignOut revokes the current session and forgets the token. The token is
// dropped even when the server reports it already invalid.
func (s *GRPCClient) SignOut(ctx context.Context) error {

	if s.sessionToken == "" {
		return ErrNotSignedIn
	}

	req := &pb.SignOutRequest{SessionToken: s.sessionToken}

	_, err := s.client.SignOut(ctx, req)
	s.sessionToken = ""

	if err != nil {
		return s.mapError(err)
	}

	return nil

}

func (s *GRPCClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {

	if s.sessionToken == "" {
		return ErrNotSignedIn
	}

	req := &pb.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}

	if _, err := s.client.ChangePassword(ctx, req); err != nil {
		return s.mapError(err)
	}

	return nil

}

// CheckHealth probes the standard health service for overall server status.
func (s *GRPCClient) CheckHealth(ctx context.Context) error {

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}

	return nil

}

func (s *GRPCClient) SignedIn() bool {
	return s.sessionToken != ""
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return ErrInvalidInput
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
