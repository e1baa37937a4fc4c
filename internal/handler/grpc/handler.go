package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/service"
)

// ShareServiceName is the service name reported by the health endpoint next
// to the overall "" status.
const ShareServiceName = "healthshare.ShareService"

// Handler is the root gRPC transport handler. It exposes the standard gRPC
// health service so orchestrators can probe the share backend.
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. Both the overall and the share service
// status start as NOT_SERVING until [Handler.Register] is called.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	h.health.SetServingStatus(ShareServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return h
}

// Register attaches the health and reflection services to s and marks the
// backend as serving.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
	reflection.Register(s)

	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.health.SetServingStatus(ShareServiceName, healthpb.HealthCheckResponse_SERVING)
}

// Shutdown reports NOT_SERVING to every watcher. Called before the server
// stops accepting connections.
func (h *Handler) Shutdown() {
	h.logger.Info().Msg("gRPC health reports not serving")
	h.health.Shutdown()
}
