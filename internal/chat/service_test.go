package chat

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/sportshub-india/sportshub-backend/pkg/errors"
)

type stubGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func TestReplyReturnsModelText(t *testing.T) {
	gen := &stubGenerator{reply: "Practice your footwork."}
	svc := NewService(gen, nil)

	reply, err := svc.Reply(context.Background(), "Any batting tips?")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply != "Practice your footwork." {
		t.Fatalf("unexpected reply %q", reply)
	}
	if len(gen.prompts) != 1 || gen.prompts[0] != "Any batting tips?" {
		t.Fatalf("unexpected prompts %v", gen.prompts)
	}
}

func TestReplyFallsBackOnEmptyText(t *testing.T) {
	svc := NewService(&stubGenerator{reply: "  "}, nil)
	reply, err := svc.Reply(context.Background(), "hello")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", reply)
	}
}

func TestReplyRequiresMessage(t *testing.T) {
	gen := &stubGenerator{}
	svc := NewService(gen, nil)
	_, err := svc.Reply(context.Background(), " ")
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(gen.prompts) != 0 {
		t.Fatal("generator must not be called")
	}
}

func TestReplyWithoutGenerator(t *testing.T) {
	svc := NewService(nil, nil)
	_, err := svc.Reply(context.Background(), "hello")
	if !pkgerrors.Is(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestReplyWrapsUntypedErrors(t *testing.T) {
	svc := NewService(&stubGenerator{err: errors.New("socket closed")}, nil)
	_, err := svc.Reply(context.Background(), "hello")
	if !pkgerrors.Is(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
