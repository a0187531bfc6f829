package grpc

import (
	"context"
	"errors"
	"fmt"
	"github.com/litetable/litetable-sheet/internal/litetable"
	"github.com/litetable/litetable-sheet/internal/position"
	"github.com/litetable/litetable-sheet/internal/replica"
	"github.com/litetable/litetable-sheet/internal/table"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	grpc2 "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"net"
	"testing"
	"time"
)

func testUpdate(ts int64) table.Update {
	return table.Update{
		Version: litetable.Version{Timestamp: ts, Origin: "A"},
		Op: table.UpsertRows{
			Columns: []position.Key{{{Seq: 1, Hash: 7}}},
			Rows: []table.RowEntry{
				{Key: position.Key{{Seq: 1, Hash: 7}}, Value: table.Row{"hello"}},
			},
		},
	}
}

func TestNewServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	tests := map[string]struct {
		cfg   *Config
		error error
	}{
		"invalid config": {
			cfg:   &Config{},
			error: errors.New("address required\nport required\nreplica required"),
		},
		"valid config": {
			cfg: &Config{
				Address: "127.0.0.1",
				Port:    39880,
				Replica: NewMockreplicaManager(ctrl),
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := NewServer(test.cfg)
			req := require.New(t)
			if test.error != nil {
				req.Error(err)
				req.Nil(got)

				req.Equal(test.error.Error(), err.Error())
				return
			}

			req.NoError(err)
			req.NotNil(got)
			req.NoError(got.listener.Close())
		})
	}
}

func TestServer_Name(t *testing.T) {
	s := &Server{}
	require.Equal(t, "gRPC Server", s.Name())
}

func TestReplicaService_Push(t *testing.T) {
	tests := map[string]struct {
		updates []table.Update
		setup   func(m *MockreplicaManager)
		code    codes.Code
		applied int
	}{
		"no updates": {
			code: codes.InvalidArgument,
		},
		"update without operation": {
			updates: []table.Update{{Version: litetable.Version{Timestamp: 1, Origin: "A"}}},
			code:    codes.InvalidArgument,
		},
		"applied": {
			updates: []table.Update{testUpdate(1), testUpdate(2)},
			setup: func(m *MockreplicaManager) {
				m.EXPECT().Apply([]table.Update{testUpdate(1), testUpdate(2)}).Return(1, nil)
			},
			code:    codes.OK,
			applied: 1,
		},
		"invalid update": {
			updates: []table.Update{testUpdate(1)},
			setup: func(m *MockreplicaManager) {
				m.EXPECT().Apply(gomock.Any()).Return(0, fmt.Errorf("update 0: %w", replica.ErrInvalidUpdate))
			},
			code: codes.InvalidArgument,
		},
		"journal failure": {
			updates: []table.Update{testUpdate(1)},
			setup: func(m *MockreplicaManager) {
				m.EXPECT().Apply(gomock.Any()).Return(0, errors.New("disk full"))
			},
			code: codes.Internal,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := require.New(t)
			ctrl := gomock.NewController(t)

			m := NewMockreplicaManager(ctrl)
			if tc.setup != nil {
				tc.setup(m)
			}
			svc := &replicaService{replica: m, streams: newStreams()}

			resp, err := svc.Push(context.Background(), &PushRequest{Updates: tc.updates})
			if tc.code != codes.OK {
				req.Error(err)
				req.Nil(resp)
				req.Equal(tc.code, status.Code(err))
				return
			}

			req.NoError(err)
			req.Equal(tc.applied, resp.Applied)
		})
	}
}

func TestStreams_Emit(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	s := newStreams()
	fast, err := s.register("fast")
	req.NoError(err)

	_, err = s.register("fast")
	req.Error(err)

	slow, err := s.register("slow")
	req.NoError(err)
	for i := 0; i < subscriberBuffer; i++ {
		slow.updates <- testUpdate(0)
	}

	s.Emit(testUpdate(1))

	req.Equal(testUpdate(1), <-fast.updates)
	req.Equal(1, s.len())
	select {
	case <-slow.dropped:
	default:
		req.Fail("slow subscriber should be dropped")
	}

	s.unregister(fast)
	req.Equal(0, s.len())
}

func TestGRPCServer_Real(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReplica := NewMockreplicaManager(ctrl)
	mockReplica.EXPECT().
		Apply([]table.Update{testUpdate(1)}).
		Return(1, nil)

	// bind to a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	s := newStreams()
	srv := grpc2.NewServer()
	srv.RegisterService(&Replica_ServiceDesc, &replicaService{
		replica: mockReplica,
		streams: s,
	})

	// Run server in background
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Error().Err(err).Msg("gRPC server error")
		}
	}()
	defer srv.Stop()

	conn, err := grpc2.NewClient(
		listener.Addr().String(),
		grpc2.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	client := NewReplicaClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Push(ctx, &PushRequest{Updates: []table.Update{testUpdate(1)}})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Applied)

	stream, err := client.Subscribe(ctx, &SubscribeRequest{ClientID: "test"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return s.len() == 1 }, 2*time.Second, 10*time.Millisecond)
	s.Emit(testUpdate(2))

	got, err := stream.Recv()
	require.NoError(t, err)
	require.Equal(t, testUpdate(2), *got)
}

func TestServer_Start(t *testing.T) {
	t.Run("successful start", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockServer := NewMockgrpcServer(ctrl)
		ml := &mockListener{}

		mockServer.EXPECT().
			Serve(ml).
			DoAndReturn(func(net.Listener) error {
				// Simulate blocking serve
				time.Sleep(100 * time.Millisecond)
				return nil
			})

		s := &Server{
			address:  "127.0.0.1",
			port:     12345,
			server:   mockServer,
			listener: ml,
		}

		err := s.Start()
		require.NoError(t, err)
	})

	t.Run("serve error on start", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockServer := NewMockgrpcServer(ctrl)
		ml := &mockListener{}

		mockServer.EXPECT().
			Serve(ml).
			Return(errors.New("bind error"))

		s := &Server{
			address:  "127.0.0.1",
			port:     12345,
			server:   mockServer,
			listener: ml,
		}

		err := s.Start()
		require.Error(t, err)
		require.Contains(t, err.Error(), "bind error")
	})
}

func TestServer_Stop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockServer := NewMockgrpcServer(ctrl)
	mockServer.EXPECT().GracefulStop().Times(1)

	s := &Server{
		server:  mockServer,
		streams: newStreams(),
	}
	_, err := s.streams.register("client")
	require.NoError(t, err)

	require.NoError(t, s.Stop())
	require.Equal(t, 0, s.streams.len())
	_, err = s.streams.register("late")
	require.ErrorIs(t, err, errShuttingDown)
}

type mockListener struct {
	net.Listener
}

func (m *mockListener) Accept() (net.Conn, error) { return nil, nil }
func (m *mockListener) Close() error              { return nil }
func (m *mockListener) Addr() net.Addr            { return &net.TCPAddr{Port: 12345} }
