// Package nats runs the embedded NATS server backing the local cache.
package nats

import (
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/chanforum/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	readyTimeout    = 4 * time.Second
	drainTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Embedded is an in-process NATS server with JetStream and a connection to it.
type Embedded struct {
	Server *server.Server
	Conn   *nats.Conn
	JS     jetstream.JetStream
}

// Start launches a JetStream-enabled server storing its data under dataDir and
// connects to it in-process. No network ports are opened.
func Start(dataDir string) (*Embedded, error) {
	logger.Debug("nats: starting embedded server in %s", dataDir)

	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   dataDir,
		DontListen: true,
		NoSigs:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("create nats server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		return nil, fmt.Errorf("nats server not ready after %s", readyTimeout)
	}

	nc, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		ns.Shutdown()
		return nil, fmt.Errorf("connect in-process: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		ns.Shutdown()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	logger.Debug("nats: embedded server ready")
	return &Embedded{Server: ns, Conn: nc, JS: js}, nil
}

// Shutdown drains the connection and stops the server, bounded by timeouts so
// a stuck server never hangs process exit.
func (e *Embedded) Shutdown() error {
	if e == nil {
		return nil
	}

	if e.Conn != nil {
		drained := make(chan error, 1)
		go func() {
			drained <- e.Conn.Drain()
		}()

		select {
		case err := <-drained:
			if err != nil {
				logger.Warn("nats: drain failed, closing: %v", err)
				e.Conn.Close()
			}
		case <-time.After(drainTimeout):
			logger.Warn("nats: drain timed out after %s, closing", drainTimeout)
			e.Conn.Close()
		}
	}

	if e.Server == nil {
		return nil
	}

	e.Server.Shutdown()
	done := make(chan struct{})
	go func() {
		e.Server.WaitForShutdown()
		close(done)
	}()

	select {
	case <-done:
		logger.Debug("nats: server shut down")
		return nil
	case <-time.After(shutdownTimeout):
		return errors.New("nats server shutdown timed out")
	}
}
