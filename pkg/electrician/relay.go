// pkg/electrician/relay.go
package electrician

// Publish-only relay for student change events, built on Electrician's
// ForwardRelay[[]byte]. Builder types stay inside the constructor.

import (
	"context"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joeydtaylor/electrician/pkg/builder"
)

// RelayRequest is the byte-level publish envelope.
type RelayRequest struct {
	Topic string
	Body  []byte
}

// RelayClient publishes to the topic it was built for. Close stops the
// underlying pipeline; publishing after Close is an error.
type RelayClient interface {
	Publish(ctx context.Context, rr RelayRequest) error
	Close() error
}

var (
	ErrMissingTopic = errors.New("relay: missing topic")
	ErrWrongTopic   = errors.New("relay: topic not carried by this relay")
	ErrClosed       = errors.New("relay: closed")
)

// noopRelay accepts publishes and discards them.
type noopRelay struct{}

func (noopRelay) Publish(context.Context, RelayRequest) error { return nil }
func (noopRelay) Close() error                                { return nil }

// IsNoop reports whether c discards everything it is given.
func IsNoop(c RelayClient) bool {
	_, ok := c.(noopRelay)
	return ok
}

type builderClient struct {
	topic  string
	submit func(context.Context, []byte) error
	stop   func()

	mu     sync.RWMutex
	closed bool
}

// NewRelayFromEnv returns a publish-capable RelayClient. It reads:
//
//	ELECTRICIAN_TARGET          = "host:port[,host2:port2]"
//
//	ELECTRICIAN_TLS_ENABLE      = "true" | "false"
//	ELECTRICIAN_TLS_CLIENT_CRT  = path (default: keys/tls/client.crt)
//	ELECTRICIAN_TLS_CLIENT_KEY  = path (default: keys/tls/client.key)
//	ELECTRICIAN_TLS_CA          = path (default: keys/tls/ca.crt)
//
//	ELECTRICIAN_COMPRESS        = "snappy" | ""
//	ELECTRICIAN_ENCRYPT         = "aesgcm" | ""
//	ELECTRICIAN_AES256_KEY_HEX  = 64 hex chars (32 bytes)
//
//	ELECTRICIAN_STATIC_HEADERS  = "k=v,k2=v2"
//
// The topic travels as the "topic" static header on every frame.
// Without ELECTRICIAN_TARGET it returns a noop RelayClient.
func NewRelayFromEnv(topic string) (RelayClient, error) {
	targets := splitCSV(os.Getenv("ELECTRICIAN_TARGET"))
	if len(targets) == 0 {
		return noopRelay{}, nil
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrMissingTopic
	}

	useTLS := strings.EqualFold(os.Getenv("ELECTRICIAN_TLS_ENABLE"), "true")
	tlsCrt := envOr("ELECTRICIAN_TLS_CLIENT_CRT", "keys/tls/client.crt")
	tlsKey := envOr("ELECTRICIAN_TLS_CLIENT_KEY", "keys/tls/client.key")
	tlsCA := envOr("ELECTRICIAN_TLS_CA", "keys/tls/ca.crt")

	useSnappy := strings.EqualFold(os.Getenv("ELECTRICIAN_COMPRESS"), "snappy")
	useAESGCM := strings.EqualFold(os.Getenv("ELECTRICIAN_ENCRYPT"), "aesgcm")
	var aesKey string
	if useAESGCM {
		k, err := decodeAESKey(os.Getenv("ELECTRICIAN_AES256_KEY_HEX"))
		if err != nil {
			return nil, err
		}
		aesKey = k
	}

	staticHeaders := parseKV(os.Getenv("ELECTRICIAN_STATIC_HEADERS"))
	if staticHeaders == nil {
		staticHeaders = map[string]string{}
	}
	staticHeaders["topic"] = topic

	logger := builder.NewLogger(builder.LoggerWithDevelopment(true))

	ctx, cancel := context.WithCancel(context.Background())
	wire := builder.NewWire[[]byte](ctx, builder.WireWithLogger[[]byte](logger))

	perf := builder.NewPerformanceOptions(useSnappy, builder.COMPRESS_SNAPPY)
	sec := builder.NewSecurityOptions(useAESGCM, builder.ENCRYPTION_AES_GCM)
	tlsCfg := builder.NewTlsClientConfig(
		useTLS,
		tlsCrt, tlsKey, tlsCA,
		tls.VersionTLS13, tls.VersionTLS13,
	)

	relay := builder.NewForwardRelay[[]byte](
		ctx,
		builder.ForwardRelayWithLogger[[]byte](logger),
		builder.ForwardRelayWithTarget[[]byte](targets...),
		builder.ForwardRelayWithPerformanceOptions[[]byte](perf),
		builder.ForwardRelayWithSecurityOptions[[]byte](sec, aesKey),
		builder.ForwardRelayWithTLSConfig[[]byte](tlsCfg),
		builder.ForwardRelayWithStaticHeaders[[]byte](staticHeaders),
		builder.ForwardRelayWithInput(wire),
	)

	if err := wire.Start(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("builder wire start: %w", err)
	}
	if err := relay.Start(ctx); err != nil {
		wire.Stop()
		cancel()
		return nil, fmt.Errorf("builder relay start: %w", err)
	}

	return &builderClient{
		topic:  topic,
		submit: func(ctx context.Context, b []byte) error { return wire.Submit(ctx, b) },
		// Stop in reverse start order.
		stop: func() {
			relay.Stop()
			wire.Stop()
			cancel()
		},
	}, nil
}

// Publish sends bytes into the pipeline under the relay's topic.
func (c *builderClient) Publish(ctx context.Context, rr RelayRequest) error {
	if rr.Topic == "" {
		return ErrMissingTopic
	}
	if rr.Topic != c.topic {
		return fmt.Errorf("%w: %q, relay carries %q", ErrWrongTopic, rr.Topic, c.topic)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	return c.submit(ctx, rr.Body)
}

// Close stops the relay and its input wire. It is safe to call twice.
func (c *builderClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.stop != nil {
		c.stop()
	}
	return nil
}

func decodeAESKey(k string) (string, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(k))
	if err != nil {
		return "", fmt.Errorf("ELECTRICIAN_AES256_KEY_HEX must be 64 hex chars (32 bytes): %w", err)
	}
	if len(raw) != 32 {
		return "", fmt.Errorf("ELECTRICIAN_AES256_KEY_HEX must be 64 hex chars (32 bytes), got %d bytes", len(raw))
	}
	return string(raw), nil
}
