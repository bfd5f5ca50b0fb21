package riak

import (
	"context"
	"time"

	"github.com/docbridge/docbridge/pkg/docstore"
)

// streamWaitTimeout bounds each individual wait for the next chunk of a
// key stream. The timer restarts after every received chunk, so a slow but
// live stream never trips it.
var streamWaitTimeout = 30 * time.Second

// streamOutcome is the terminal state of one key stream consumption.
type streamOutcome int

const (
	streamCompleted streamOutcome = iota
	streamFailed
	streamTimedOut
)

// consumeKeyStream drains a key stream, invoking handle for every chunk of
// keys as it arrives. It returns streamCompleted only when the stream's
// done signal is observed; any other ending still reflects every chunk
// already delivered to handle.
func consumeKeyStream(ctx context.Context, stream *KeyStream, handle func(keys []string) error) (streamOutcome, error) {
	timer := time.NewTimer(streamWaitTimeout)
	defer timer.Stop()

	for {
		select {
		case msg, ok := <-stream.C:
			if !ok {
				// channel closed without a done signal
				return streamFailed, nil
			}
			if msg.Handle != stream.Handle {
				return streamFailed, nil
			}
			switch msg.Kind {
			case StreamMessageKeys:
				if len(msg.Keys) > 0 {
					if err := handle(msg.Keys); err != nil {
						return streamFailed, err
					}
				}
			case StreamMessageDone:
				if len(msg.Keys) > 0 {
					if err := handle(msg.Keys); err != nil {
						return streamFailed, err
					}
				}
				return streamCompleted, nil
			default:
				return streamFailed, nil
			}

			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(streamWaitTimeout)

		case <-timer.C:
			return streamTimedOut, nil

		case <-ctx.Done():
			return streamFailed, ctx.Err()
		}
	}
}

// streamError maps a non-completed outcome onto the store's sentinel
// errors. A nil return means the stream completed normally.
func streamError(outcome streamOutcome, err error) error {
	if err != nil {
		return err
	}
	switch outcome {
	case streamTimedOut:
		return docstore.ErrStreamTimeout
	case streamFailed:
		return docstore.ErrStreamFailed
	}
	return nil
}
