package grpc

import (
	"context"
	"sync"

	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/gourmet-gacha/gacha/internal/config"
	"github.com/gourmet-gacha/gacha/internal/services"
)

var (
	grpcServerMetrics         *grpcprom.ServerMetrics
	registerServerMetricsOnce sync.Once
)

// interceptorLogger adapts zerolog to the logging interceptor.
func interceptorLogger(l zerolog.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l := l.With().Fields(fields).Logger()
		switch lvl {
		case logging.LevelDebug:
			l.Debug().Msg(msg)
		case logging.LevelInfo:
			l.Info().Msg(msg)
		case logging.LevelWarn:
			l.Warn().Msg(msg)
		default:
			l.Error().Msg(msg)
		}
	})
}

func recoverPanic(p any) error {
	logger := config.GetLogger()
	logger.Error().Interface("panic", p).Msg("Recovered from panic in gRPC handler")
	return status.Error(codes.Internal, "internal error")
}

// NewGRPCServer creates a gRPC server exposing the catalog with Prometheus
// metrics, request logging, panic recovery, health checking and reflection.
func NewGRPCServer(catalog services.Catalog) *grpc.Server {
	registerServerMetricsOnce.Do(func() {
		grpcServerMetrics = grpcprom.NewServerMetrics(
			grpcprom.WithServerHandlingTimeHistogram(),
		)
		prometheus.MustRegister(grpcServerMetrics)
	})

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpcServerMetrics.UnaryServerInterceptor(),
			logging.UnaryServerInterceptor(interceptorLogger(config.GetLogger()), logging.WithLogOnEvents(logging.FinishCall)),
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(recoverPanic)),
		),
	)

	RegisterGachaServiceServer(grpcServer, NewServer(catalog))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	// grpcurl can list the service; its messages are well-known types
	reflection.Register(grpcServer)

	grpcServerMetrics.InitializeMetrics(grpcServer)

	return grpcServer
}
