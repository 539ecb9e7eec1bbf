package chat

import (
	"context"
	"strings"

	pkgerrors "github.com/sportshub-india/sportshub-backend/pkg/errors"
	"github.com/sportshub-india/sportshub-backend/pkg/logger"
)

// FallbackReply is returned when the model produces no text.
const FallbackReply = "I could not generate a response."

type generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Service answers assistant chat messages.
type Service interface {
	Reply(ctx context.Context, message string) (string, error)
}

type service struct {
	gen  generator
	logg *logger.Logger
}

// NewService builds a chat service. A nil generator yields a service that
// reports the assistant as unavailable.
func NewService(gen generator, logg *logger.Logger) Service {
	return &service{gen: gen, logg: logg}
}

func (s *service) Reply(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Message is required")
	}
	if s.gen == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "chat assistant is not configured")
	}

	reply, err := s.gen.GenerateText(ctx, message)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "chat.generate.failed", err)
		}
		if typed := pkgerrors.As(err); typed != nil {
			return "", typed
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate reply")
	}

	if strings.TrimSpace(reply) == "" {
		return FallbackReply, nil
	}
	return reply, nil
}
