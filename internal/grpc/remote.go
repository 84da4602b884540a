package grpc

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/gourmet-gacha/gacha/internal/apperrors"
	"github.com/gourmet-gacha/gacha/internal/models"
)

// RemoteClient calls a running gacha.v1.GachaService.
type RemoteClient struct {
	conn *grpc.ClientConn
}

// Dial connects to the service at address without transport security.
func Dial(address string) (*RemoteClient, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return &RemoteClient{conn: conn}, nil
}

// Draw asks the remote catalog for a draw.
func (c *RemoteClient) Draw(ctx context.Context, query string) (models.DrawResult, error) {
	req, err := structpb.NewStruct(map[string]any{"query": query})
	if err != nil {
		return models.DrawResult{}, err
	}
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, DrawMethod, req, resp); err != nil {
		return models.DrawResult{}, fromStatusError(err)
	}
	return convertDrawResultFromProto(resp), nil
}

// Status returns the remote catalog status.
func (c *RemoteClient) Status(ctx context.Context) (models.CatalogStatus, error) {
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, StatusMethod, &emptypb.Empty{}, resp); err != nil {
		return models.CatalogStatus{}, fromStatusError(err)
	}
	return convertStatusFromProto(resp), nil
}

// Reload asks the remote catalog to refetch the sheet.
func (c *RemoteClient) Reload(ctx context.Context) (models.CatalogStatus, error) {
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, ReloadMethod, &emptypb.Empty{}, resp); err != nil {
		return models.CatalogStatus{}, fromStatusError(err)
	}
	return convertStatusFromProto(resp), nil
}

// Close closes the underlying connection.
func (c *RemoteClient) Close() error {
	return c.conn.Close()
}

// fromStatusError restores ErrDatasetNotReady from its error detail.
func fromStatusError(err error) error {
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.FailedPrecondition {
		return err
	}
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetReason() != ReasonDatasetNotReady {
			continue
		}
		var cause error
		if msg := info.GetMetadata()[causeMetadataKey]; msg != "" {
			cause = errors.New(msg)
		}
		return apperrors.NewDatasetNotReadyError(cause)
	}
	return err
}
