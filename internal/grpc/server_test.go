package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/gourmet-gacha/gacha/internal/apperrors"
	"github.com/gourmet-gacha/gacha/internal/models"
)

// mockCatalog implements services.Catalog for testing
type mockCatalog struct {
	drawFunc   func(ctx context.Context, query string) (models.DrawResult, error)
	reloadFunc func(ctx context.Context) error
	status     models.CatalogStatus
}

func (m *mockCatalog) Load(ctx context.Context) error { return nil }

func (m *mockCatalog) Reload(ctx context.Context) error {
	if m.reloadFunc != nil {
		return m.reloadFunc(ctx)
	}
	return nil
}

func (m *mockCatalog) Draw(ctx context.Context, query string) (models.DrawResult, error) {
	if m.drawFunc != nil {
		return m.drawFunc(ctx, query)
	}
	return models.DrawResult{Query: query}, nil
}

func (m *mockCatalog) Status() models.CatalogStatus                      { return m.status }
func (m *mockCatalog) LastError() error                                  { return nil }
func (m *mockCatalog) Dataset() *models.Dataset                          { return nil }
func (m *mockCatalog) RunRefresher(ctx context.Context, _ time.Duration) {}

// startServer serves catalog on a random local port and returns a connected client.
func startServer(t *testing.T, catalog *mockCatalog) *RemoteClient {
	t.Helper()

	srv := NewGRPCServer(catalog)
	lis, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.GracefulStop)

	rc, err := Dial(lis.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	return rc
}

func TestServer_Draw(t *testing.T) {
	var gotQuery string
	catalog := &mockCatalog{
		drawFunc: func(ctx context.Context, query string) (models.DrawResult, error) {
			gotQuery = query
			return models.DrawResult{
				Query:    query,
				PoolSize: 7,
				Listings: []models.Listing{
					{Name: "麺屋", Genre: "ラーメン, つけ麺", Link: "https://maps.example/1", Station: "近鉄奈良"},
					{Name: "喫茶", Genre: "カフェ"},
				},
			}, nil
		},
	}
	rc := startServer(t, catalog)

	res, err := rc.Draw(context.Background(), "  ラーメン ")
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if gotQuery != "ラーメン" {
		t.Errorf("catalog query = %q, want trimmed query", gotQuery)
	}
	if res.PoolSize != 7 || len(res.Listings) != 2 {
		t.Fatalf("Draw() = %+v", res)
	}
	want := models.Listing{Name: "麺屋", Genre: "ラーメン, つけ麺", Link: "https://maps.example/1", Station: "近鉄奈良"}
	if res.Listings[0] != want {
		t.Errorf("Listings[0] = %+v, want %+v", res.Listings[0], want)
	}
	if res.Listings[1].HasLink() {
		t.Error("Listing without link must stay without link")
	}
}

func TestServer_DrawNotReady(t *testing.T) {
	catalog := &mockCatalog{
		drawFunc: func(ctx context.Context, query string) (models.DrawResult, error) {
			return models.DrawResult{}, apperrors.NewDatasetNotReadyError(&apperrors.ErrEmptySheet{})
		},
	}
	rc := startServer(t, catalog)

	// raw call: FailedPrecondition carrying ErrorInfo
	err := rc.conn.Invoke(context.Background(), DrawMethod, &structpb.Struct{}, new(structpb.Struct))
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.FailedPrecondition {
		t.Fatalf("Expected FailedPrecondition, got %v", err)
	}
	var info *errdetails.ErrorInfo
	for _, d := range st.Details() {
		if ei, ok := d.(*errdetails.ErrorInfo); ok {
			info = ei
		}
	}
	if info == nil || info.GetReason() != ReasonDatasetNotReady || info.GetDomain() != "gacha.v1" {
		t.Fatalf("Expected DATASET_NOT_READY detail, got %v", info)
	}

	// typed call: the error is restored
	_, err = rc.Draw(context.Background(), "")
	if !errors.Is(err, &apperrors.ErrDatasetNotReady{}) {
		t.Fatalf("Expected ErrDatasetNotReady, got %v", err)
	}
	if got := apperrors.UserMessage(err); got != "データの取得に失敗しました: シートにデータがありません" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestServer_Status(t *testing.T) {
	loadedAt := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	rc := startServer(t, &mockCatalog{status: models.CatalogStatus{
		Phase:    models.LoadPhaseReady,
		Listings: 42,
		Source:   "http://sheet.test/export",
		LoadedAt: loadedAt,
	}})

	st, err := rc.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Phase != models.LoadPhaseReady || st.Listings != 42 || st.Source != "http://sheet.test/export" {
		t.Errorf("Status() = %+v", st)
	}
	if !st.LoadedAt.Equal(loadedAt) {
		t.Errorf("LoadedAt = %v, want %v", st.LoadedAt, loadedAt)
	}
	if st.LastError != "" {
		t.Errorf("LastError = %q, want empty", st.LastError)
	}
}

func TestServer_ReloadFailure(t *testing.T) {
	rc := startServer(t, &mockCatalog{
		reloadFunc: func(ctx context.Context) error {
			return &apperrors.ErrUpstreamStatus{Code: 503, Status: "Service Unavailable"}
		},
	})

	_, err := rc.Reload(context.Background())
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unavailable {
		t.Fatalf("Expected Unavailable, got %v", err)
	}
	if st.Message() != "データの取得に失敗しました: HTTP 503: Service Unavailable" {
		t.Errorf("Message = %q", st.Message())
	}
}

func TestServer_ReloadReturnsStatus(t *testing.T) {
	reloaded := false
	catalog := &mockCatalog{status: models.CatalogStatus{Phase: models.LoadPhaseReady, Listings: 3}}
	catalog.reloadFunc = func(ctx context.Context) error {
		reloaded = true
		return nil
	}
	rc := startServer(t, catalog)

	st, err := rc.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if !reloaded || st.Listings != 3 {
		t.Errorf("Reload() = %+v, reloaded=%v", st, reloaded)
	}
}

func TestToStatusError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"canceled", context.Canceled, codes.Canceled},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"not ready", apperrors.NewDatasetNotReadyError(nil), codes.FailedPrecondition},
		{"load failure", &apperrors.ErrSheetNotPublished{}, codes.Unavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(toStatusError(tt.err)); got != tt.code {
				t.Errorf("code = %v, want %v", got, tt.code)
			}
		})
	}
}
