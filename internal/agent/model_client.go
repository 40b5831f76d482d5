package agent

import (
	"context"
	"errors"
)

// ModelClient is the boundary to the external agent runtime. The client
// only consumes its output events; reasoning and tool execution live on
// the other side.
type ModelClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
	Stream(ctx context.Context, prompt Prompt, onEvent func(StreamEvent)) error
}

// EchoClient is a fallback when no endpoint is configured.
type EchoClient struct {
	Prefix string
}

func (c EchoClient) Complete(_ context.Context, prompt Prompt) (string, error) {
	if len(prompt.Messages) == 0 {
		return "", errors.New("no messages to echo")
	}
	last := prompt.Messages[len(prompt.Messages)-1]
	return c.Prefix + last.Content, nil
}

func (c EchoClient) Stream(ctx context.Context, prompt Prompt, onEvent func(StreamEvent)) error {
	text, err := c.Complete(ctx, prompt)
	if err != nil {
		return err
	}
	onEvent(StreamEvent{Type: StreamEventTextDelta, Text: text})
	onEvent(StreamEvent{Type: StreamEventCompleted})
	return nil
}
