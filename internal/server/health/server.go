// Package health implements the standard grpc.health.v1 protocol: a
// per-service serving status with point checks and streaming watches.
//
// Status transitions come only from SetServingStatus; nothing in this
// package flips a status on its own.
package health

import (
	"context"
	"sync"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// serviceState holds one service name's status and its watchers. Each state
// has its own mutex so watches and updates for unrelated services never
// contend.
type serviceState struct {
	mu       sync.Mutex
	status   healthpb.HealthCheckResponse_ServingStatus
	watchers map[chan healthpb.HealthCheckResponse_ServingStatus]struct{}
}

// Server implements healthpb.HealthServer.
type Server struct {
	healthpb.UnimplementedHealthServer

	mu       sync.RWMutex
	shutdown bool
	services map[string]*serviceState
}

func NewServer() *Server {
	return &Server{services: make(map[string]*serviceState)}
}

// state returns the tracked state for service, creating it (with status
// SERVICE_UNKNOWN) when absent.
func (s *Server) state(service string) *serviceState {
	s.mu.RLock()
	st, ok := s.services[service]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.services[service]; ok {
		return st
	}
	st = &serviceState{
		status:   healthpb.HealthCheckResponse_SERVICE_UNKNOWN,
		watchers: make(map[chan healthpb.HealthCheckResponse_ServingStatus]struct{}),
	}
	s.services[service] = st
	return st
}

// SetServingStatus records the latest status for service and notifies its
// watchers. Setting the current value again is a no-op, so watchers never
// see duplicate events. Updates after Shutdown are ignored.
func (s *Server) SetServingStatus(service string, st healthpb.HealthCheckResponse_ServingStatus) {
	s.mu.RLock()
	down := s.shutdown
	s.mu.RUnlock()
	if down {
		return
	}

	state := s.state(service)
	state.mu.Lock()
	defer state.mu.Unlock()

	if state.status == st {
		return
	}
	state.status = st
	for ch := range state.watchers {
		notify(ch, st)
	}
}

// Shutdown marks every tracked service NOT_SERVING and drops all further
// status updates. Used when the process begins graceful stop.
func (s *Server) Shutdown() {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return
	}
	states := make([]*serviceState, 0, len(s.services))
	for _, st := range s.services {
		states = append(states, st)
	}
	s.shutdown = true
	s.mu.Unlock()

	for _, state := range states {
		state.mu.Lock()
		if state.status != healthpb.HealthCheckResponse_NOT_SERVING {
			state.status = healthpb.HealthCheckResponse_NOT_SERVING
			for ch := range state.watchers {
				notify(ch, state.status)
			}
		}
		state.mu.Unlock()
	}
}

// notify delivers the newest status on a buffered watcher channel,
// discarding an undelivered older value first. Called with the state mutex
// held, so sends never race.
func notify(ch chan healthpb.HealthCheckResponse_ServingStatus, st healthpb.HealthCheckResponse_ServingStatus) {
	select {
	case ch <- st:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}

// Check returns the latest known status for the requested service. An
// unregistered name fails with NotFound; this mirrors the reference
// grpc.health.v1 behavior and is the documented policy here.
func (s *Server) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	s.mu.RLock()
	state, ok := s.services[req.GetService()]
	s.mu.RUnlock()
	if !ok {
		return nil, status.Error(codes.NotFound, "unknown service")
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	return &healthpb.HealthCheckResponse{Status: state.status}, nil
}

// maxListServices caps a List response the same way the reference
// implementation does.
const maxListServices = 100

// List reports the latest status of every tracked service.
func (s *Server) List(ctx context.Context, req *healthpb.HealthListRequest) (*healthpb.HealthListResponse, error) {
	s.mu.RLock()
	states := make(map[string]*serviceState, len(s.services))
	for name, st := range s.services {
		states[name] = st
	}
	s.mu.RUnlock()

	if len(states) > maxListServices {
		return nil, status.Errorf(codes.ResourceExhausted, "server health list exceeds maximum capacity: %d", maxListServices)
	}

	statuses := make(map[string]*healthpb.HealthCheckResponse, len(states))
	for name, state := range states {
		state.mu.Lock()
		statuses[name] = &healthpb.HealthCheckResponse{Status: state.status}
		state.mu.Unlock()
	}
	return &healthpb.HealthListResponse{Statuses: statuses}, nil
}

// Watch streams the current status immediately, then one event per actual
// change. An unregistered name yields SERVICE_UNKNOWN until someone sets
// its status. The stream ends only when the client cancels or the server
// stops; the watcher channel is released either way.
func (s *Server) Watch(req *healthpb.HealthCheckRequest, stream healthpb.Health_WatchServer) error {
	state := s.state(req.GetService())

	ch := make(chan healthpb.HealthCheckResponse_ServingStatus, 1)
	state.mu.Lock()
	ch <- state.status
	state.watchers[ch] = struct{}{}
	state.mu.Unlock()

	defer func() {
		state.mu.Lock()
		delete(state.watchers, ch)
		state.mu.Unlock()
	}()

	for {
		select {
		case st := <-ch:
			if err := stream.Send(&healthpb.HealthCheckResponse{Status: st}); err != nil {
				return err
			}
		case <-stream.Context().Done():
			return status.Error(codes.Canceled, "stream has ended")
		}
	}
}
