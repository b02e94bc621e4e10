// Package consumer holds the kafka readers that feed upstream HR events
// into tenant stores.
package consumer

import (
	"context"
	"errors"
	"net/http"

	"go-hrdocs/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// errSkip marks a message that can never succeed. It is committed so the
// group moves past it.
var errSkip = errors.New("skip message")

// handleFunc processes one message. Returning nil or an error wrapping
// errSkip commits the message; any other error leaves it uncommitted.
type handleFunc func(ctx context.Context, msg kafkago.Message) error

func consume(ctx context.Context, reader MessageReader, log *zap.Logger, handle handleFunc) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		err = handle(ctx, msg)
		switch {
		case err == nil:
		case errors.Is(err, errSkip):
			log.Warn("message skipped",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		default:
			log.Error("handle message failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Error(err))
		}
	}
}

// permanent reports whether err is a client-side failure that a redelivery
// would repeat.
func permanent(err error) bool {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.HTTPStatus >= http.StatusBadRequest && appErr.HTTPStatus < http.StatusInternalServerError
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if permanent(err) {
		return errors.Join(errSkip, err)
	}
	return err
}
