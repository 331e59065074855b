// Package messaging publishes blog lifecycle events on NATS.
package messaging

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"blog-service/internal/application/interfaces"
	"github.com/nats-io/nats.go"
)

// Publisher sends JSON events over a shared NATS connection. A Publisher
// without a connection drops every event.
type Publisher struct {
	nc *nats.Conn
}

// Connect dials url. An empty url yields a disabled publisher.
func Connect(url string) (*Publisher, error) {
	if url == "" {
		log.Println("NATS_URL not set, lifecycle events are disabled")
		return &Publisher{}, nil
	}

	nc, err := nats.Connect(url,
		nats.Name("blog-service"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Printf("NATS reconnected to %s", c.ConnectedUrl())
		}),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Printf("NATS error: %v", err)
		}),
		nats.DrainTimeout(10*time.Second),
	)
	if err != nil {
		return nil, err
	}

	log.Printf("Connected to NATS at %s", nc.ConnectedUrl())
	return &Publisher{nc: nc}, nil
}

// NewPublisher wraps an existing connection.
func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.nc != nil
}

func (p *Publisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	if !p.Enabled() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.nc.IsConnected() && !p.nc.IsReconnecting() {
		return nats.ErrConnectionClosed
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.nc.Publish(subject, data)
}

// Close flushes pending events and closes the connection.
func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
		return err
	}
	log.Println("NATS connection closed")
	return nil
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
