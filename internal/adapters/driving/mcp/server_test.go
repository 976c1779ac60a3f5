package mcp

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("missing ingest service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Split: &mockSplitService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingIngestService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Ingest:  &mockIngestService{},
			Split:   &mockSplitService{},
			Archive: &mockArchiveService{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("missing split service returns error", func(t *testing.T) {
		ports := &Ports{Ingest: &mockIngestService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingSplitService)
	})

	t.Run("archive is optional", func(t *testing.T) {
		ports := &Ports{Ingest: &mockIngestService{}, Split: &mockSplitService{}}
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	server, err := NewServer(&Ports{Ingest: &mockIngestService{}, Split: &mockSplitService{}})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.serve(ctx, ln) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServer_RunHTTPInvalidAddress(t *testing.T) {
	server, err := NewServer(&Ports{Ingest: &mockIngestService{}, Split: &mockSplitService{}})
	require.NoError(t, err)

	err = server.RunHTTP(context.Background(), "127.0.0.1:notaport")

	assert.Error(t, err)
}

func TestServer_Handler(t *testing.T) {
	server, err := NewServer(&Ports{Ingest: &mockIngestService{}, Split: &mockSplitService{}})
	require.NoError(t, err)

	assert.NotNil(t, server.Handler())
}
