// pkg/core/relay.go
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/joeydtaylor/steeze-students/pkg/codec"
)

type RelayRequest struct {
	Topic string
	Body  []byte
}

// RelayClient is the byte-level publish path events leave through.
type RelayClient interface {
	Publish(ctx context.Context, rr RelayRequest) error
}

var ErrNoRelay = errors.New("relay: no client configured")

// RelayPublisher encodes student events as JSON and hands them to a RelayClient.
// Everything a consumer needs travels in the body.
type RelayPublisher struct {
	Relay RelayClient
	Topic string
}

func (p RelayPublisher) Publish(ctx context.Context, ev StudentEvent) error {
	if p.Relay == nil {
		return ErrNoRelay
	}
	body, err := codec.JSONStrict.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ev.Type, err)
	}
	return p.Relay.Publish(ctx, RelayRequest{Topic: p.Topic, Body: body})
}
