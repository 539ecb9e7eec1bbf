package controllers

import (
	"net/http"

	"github.com/sportshub-india/sportshub-backend/api/responses"
	"github.com/sportshub-india/sportshub-backend/api/validators"
	"github.com/sportshub-india/sportshub-backend/internal/chat"
	pkgerrors "github.com/sportshub-india/sportshub-backend/pkg/errors"
	"github.com/sportshub-india/sportshub-backend/pkg/logger"
)

type chatRequest struct {
	Message any `json:"message"`
}

// ChatReply forwards a message to the assistant and returns its reply.
func ChatReply(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeDependency, "chat assistant is not configured")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body chatRequest
		if err := validators.DecodeJSONBodyLenient(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// non-string messages are treated as missing
		message, _ := body.Message.(string)
		reply, err := svc.Reply(r.Context(), message)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"reply": reply})
	}
}
