package utils

import (
	"context"
	"net/http"
	"strings"
)

// DefaultConversationID is used when a request names no conversation.
const DefaultConversationID = "global"

type contextKey string

const (
	requestIDKey      contextKey = "request_id"
	conversationIDKey contextKey = "conversation_id"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func GetRequestID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(requestIDKey).(string)
	return id, ok && id != ""
}

func WithConversationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, conversationIDKey, strings.TrimSpace(id))
}

// ExplicitConversationID reports the conversation named by the request, if any.
func ExplicitConversationID(ctx context.Context) (string, bool) {
	id, _ := ctx.Value(conversationIDKey).(string)
	return id, id != ""
}

// ConversationID returns the conversation carried by ctx, falling back to
// DefaultConversationID.
func ConversationID(ctx context.Context) string {
	id, _ := ctx.Value(conversationIDKey).(string)
	if id == "" {
		return DefaultConversationID
	}
	return id
}
