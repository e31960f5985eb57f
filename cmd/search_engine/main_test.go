package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunServer_DrainsInFlightRequests(t *testing.T) {
	started := make(chan struct{})
	var finished atomic.Bool

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(started)
			time.Sleep(200 * time.Millisecond)
			finished.Store(true)
			_, _ = io.WriteString(w, "done")
		}),
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	served := make(chan error, 1)
	go func() { served <- runServer(ctx, server, ln, 5*time.Second) }()

	responses := make(chan string, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/slow")
		if err != nil {
			responses <- "error: " + err.Error()
			return
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		responses <- string(body)
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}
	cancel()

	select {
	case err := <-served:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runServer did not return after cancellation")
	}
	assert.True(t, finished.Load(), "runServer returned before the in-flight request finished")

	select {
	case body := <-responses:
		assert.Equal(t, "done", body)
	case <-time.After(5 * time.Second):
		t.Fatal("client never received a response")
	}
}

func TestRunServer_ListenerError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	err = runServer(context.Background(), &http.Server{Handler: http.NotFoundHandler()}, ln, time.Second)
	assert.Error(t, err)
}
