package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/gourmet-gacha/gacha/internal/apperrors"
	"github.com/gourmet-gacha/gacha/internal/config"
	"github.com/gourmet-gacha/gacha/internal/services"
)

// Error detail attached to FailedPrecondition responses.
const (
	errorDomain           = "gacha.v1"
	ReasonDatasetNotReady = "DATASET_NOT_READY"
	causeMetadataKey      = "cause"
)

// server implements the GachaServiceServer interface
type server struct {
	catalog services.Catalog
	logger  zerolog.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(catalog services.Catalog) GachaServiceServer {
	return &server{
		catalog: catalog,
		logger:  config.GetLogger(),
	}
}

// Draw implements GachaServiceServer.Draw
func (s *server) Draw(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	query := strings.TrimSpace(stringField(req, "query"))
	s.logger.Debug().Str("query", query).Msg("Draw called")

	result, err := s.catalog.Draw(ctx, query)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("Draw failed")
		return nil, toStatusError(err)
	}

	resp, err := convertDrawResultToProto(result)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode draw result: %v", err)
	}

	s.logger.Debug().Str("query", query).Int("count", len(result.Listings)).Msg("Draw completed")
	return resp, nil
}

// Status implements GachaServiceServer.Status
func (s *server) Status(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	resp, err := convertStatusToProto(s.catalog.Status())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode status: %v", err)
	}
	return resp, nil
}

// Reload implements GachaServiceServer.Reload
func (s *server) Reload(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	s.logger.Info().Msg("Reload called")

	if err := s.catalog.Reload(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Reload failed")
		return nil, toStatusError(err)
	}
	return s.Status(ctx, nil)
}

// toStatusError maps catalog errors onto gRPC status codes.
func toStatusError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, &apperrors.ErrDatasetNotReady{}):
		info := &errdetails.ErrorInfo{Reason: ReasonDatasetNotReady, Domain: errorDomain}
		var notReady *apperrors.ErrDatasetNotReady
		if errors.As(err, &notReady) && notReady.Cause != nil {
			info.Metadata = map[string]string{causeMetadataKey: notReady.Cause.Error()}
		}
		st := status.New(codes.FailedPrecondition, err.Error())
		if detailed, detailErr := st.WithDetails(info); detailErr == nil {
			st = detailed
		}
		return st.Err()
	default:
		return status.Error(codes.Unavailable, apperrors.UserMessage(err))
	}
}
