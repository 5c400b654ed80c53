// Package grpc exposes the authentication service and the standard health
// protocol over a single gRPC server.
package grpc

import (
	"context"
	"net"

	"github.com/dsmelov/authsvc/internal/logging"
	pb "github.com/dsmelov/authsvc/internal/proto"
	"github.com/dsmelov/authsvc/internal/server/auth"
	"github.com/dsmelov/authsvc/internal/server/health"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// AuthServiceName is the name the auth service registers under in the
// health protocol. The empty name tracks overall server health.
const AuthServiceName = "authsvc.Auth"

type GRPCServer struct {
	pb.UnimplementedAuthServer
	address string
	auth    *auth.Service
	health  *health.Server
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, as *auth.Service, hs *health.Server) (*GRPCServer, error) {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		auth:    as,
		health:  hs,
	}, nil
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.sessionTokenInterceptor))

	// registers services
	pb.RegisterAuthServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(AuthServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
