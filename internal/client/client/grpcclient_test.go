package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dsmelov/authsvc/internal/common"
	pb "github.com/dsmelov/authsvc/internal/proto"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

/*************
 * Fake pb client
 *************/

type fakePB struct {
	// inputs captured
	lastSignUpReq         *pb.SignUpRequest
	lastSignInReq         *pb.SignInRequest
	lastSignOutReq        *pb.SignOutRequest
	lastChangePasswordReq *pb.ChangePasswordRequest

	// outputs preset
	signUpResp *pb.SignUpResponse
	signUpErr  error

	signInResp *pb.SignInResponse
	signInErr  error

	signOutErr error

	changePasswordErr error
}

func (f *fakePB) SignUp(ctx context.Context, in *pb.SignUpRequest, opts ...grpc.CallOption) (*pb.SignUpResponse, error) {
	f.lastSignUpReq = in
	return f.signUpResp, f.signUpErr
}
func (f *fakePB) SignIn(ctx context.Context, in *pb.SignInRequest, opts ...grpc.CallOption) (*pb.SignInResponse, error) {
	f.lastSignInReq = in
	return f.signInResp, f.signInErr
}
func (f *fakePB) SignOut(ctx context.Context, in *pb.SignOutRequest, opts ...grpc.CallOption) (*pb.SignOutResponse, error) {
	f.lastSignOutReq = in
	return &pb.SignOutResponse{}, f.signOutErr
}
func (f *fakePB) ChangePassword(ctx context.Context, in *pb.ChangePasswordRequest, opts ...grpc.CallOption) (*pb.ChangePasswordResponse, error) {
	f.lastChangePasswordReq = in
	return &pb.ChangePasswordResponse{}, f.changePasswordErr
}

type fakeHealth struct {
	checkResp *healthpb.HealthCheckResponse
	checkErr  error
}

func (f *fakeHealth) Check(ctx context.Context, in *healthpb.HealthCheckRequest, opts ...grpc.CallOption) (*healthpb.HealthCheckResponse, error) {
	return f.checkResp, f.checkErr
}
func (f *fakeHealth) List(ctx context.Context, in *healthpb.HealthListRequest, opts ...grpc.CallOption) (*healthpb.HealthListResponse, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeHealth) Watch(ctx context.Context, in *healthpb.HealthCheckRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[healthpb.HealthCheckResponse], error) {
	return nil, errors.New("not implemented")
}

/*************
 * sessionTokenInterceptor tests
 *************/

func TestInterceptor_AttachesSessionToken(t *testing.T) {
	c := &GRPCClient{sessionToken: "T1"}

	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		toks := md.Get(common.SessionTokenHeaderName)
		require.Len(t, toks, 1)
		require.Equal(t, "T1", toks[0])
		return nil
	}

	err := c.sessionTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.NoError(t, err)
}

func TestInterceptor_NoTokenWhenSignedOut(t *testing.T) {
	c := &GRPCClient{}

	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		require.Empty(t, md.Get(common.SessionTokenHeaderName))
		return nil
	}

	err := c.sessionTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.NoError(t, err)
}

/*************
 * RPC wrapper tests
 *************/

func TestSignUp_ReturnsUserID(t *testing.T) {
	f := &fakePB{signUpResp: &pb.SignUpResponse{UserId: "u-42"}}
	c := &GRPCClient{client: f}

	id, err := c.SignUp(context.Background(), "alice", "pw")
	require.NoError(t, err)
	require.Equal(t, "u-42", id)
	require.Equal(t, "alice", f.lastSignUpReq.GetUsername())
}

func TestSignUp_AlreadyExists(t *testing.T) {
	f := &fakePB{signUpErr: status.Error(codes.AlreadyExists, "username already taken")}
	c := &GRPCClient{client: f}

	_, err := c.SignUp(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestSignIn_StoresToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	f := &fakePB{signInResp: &pb.SignInResponse{SessionToken: "T1", ExpiresAt: exp}}
	c := &GRPCClient{client: f}

	got, err := c.SignIn(context.Background(), "alice", "pw")
	require.NoError(t, err)
	require.True(t, c.SignedIn())
	require.Equal(t, exp, got.Unix())
}

func TestSignIn_NoExpiry(t *testing.T) {
	f := &fakePB{signInResp: &pb.SignInResponse{SessionToken: "T1"}}
	c := &GRPCClient{client: f}

	got, err := c.SignIn(context.Background(), "alice", "pw")
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestSignIn_Unauthorized(t *testing.T) {
	f := &fakePB{signInErr: status.Error(codes.Unauthenticated, "invalid username or password")}
	c := &GRPCClient{client: f}

	_, err := c.SignIn(context.Background(), "alice", "bad")
	require.ErrorIs(t, err, ErrUnauthorized)
	require.False(t, c.SignedIn())
}

func TestSignOut_ClearsTokenEvenOnError(t *testing.T) {
	f := &fakePB{signOutErr: status.Error(codes.Unauthenticated, "invalid session token")}
	c := &GRPCClient{client: f, sessionToken: "T1"}

	err := c.SignOut(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	require.False(t, c.SignedIn())
	require.Equal(t, "T1", f.lastSignOutReq.GetSessionToken())
}

func TestSignOut_NotSignedIn(t *testing.T) {
	c := &GRPCClient{client: &fakePB{}}
	require.ErrorIs(t, c.SignOut(context.Background()), ErrNotSignedIn)
}

func TestChangePassword_NotSignedIn(t *testing.T) {
	c := &GRPCClient{client: &fakePB{}}
	require.ErrorIs(t, c.ChangePassword(context.Background(), "a", "b"), ErrNotSignedIn)
}

func TestChangePassword_OK(t *testing.T) {
	f := &fakePB{}
	c := &GRPCClient{client: f, sessionToken: "T1"}

	require.NoError(t, c.ChangePassword(context.Background(), "old", "new"))
	require.Equal(t, "old", f.lastChangePasswordReq.GetOldPassword())
	require.Equal(t, "new", f.lastChangePasswordReq.GetNewPassword())
}

/*************
 * Health and error mapping
 *************/

func TestCheckHealth_Serving(t *testing.T) {
	c := &GRPCClient{health: &fakeHealth{
		checkResp: &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING},
	}}
	require.NoError(t, c.CheckHealth(context.Background()))
}

func TestCheckHealth_NotServing(t *testing.T) {
	c := &GRPCClient{health: &fakeHealth{
		checkResp: &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING},
	}}
	require.ErrorIs(t, c.CheckHealth(context.Background()), ErrUnavailable)
}

func TestCheckHealth_Unavailable(t *testing.T) {
	c := &GRPCClient{health: &fakeHealth{
		checkErr: status.Error(codes.Unavailable, "connection refused"),
	}}
	require.ErrorIs(t, c.CheckHealth(context.Background()), ErrUnavailable)
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	require.NoError(t, c.mapError(nil))
	require.ErrorIs(t, c.mapError(status.Error(codes.DeadlineExceeded, "late")), ErrUnavailable)
	require.ErrorIs(t, c.mapError(status.Error(codes.InvalidArgument, "empty")), ErrInvalidInput)

	wrapped := c.mapError(status.Error(codes.Internal, "boom"))
	require.Error(t, wrapped)
	require.NotErrorIs(t, wrapped, ErrUnauthorized)
}
