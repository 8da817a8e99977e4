package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/parampara-backend/internal/platform/llm"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
	"github.com/yungbote/parampara-backend/internal/platform/observability"
)

// askModel opens a fresh session for spec and sends a single prompt. Every call
// gets its own session id; nothing is retried.
func askModel(ctx context.Context, log *logger.Logger, factory llm.Factory, spec llm.ModelSpec, feature string, prompt string) (string, error) {
	if factory == nil {
		return "", fmt.Errorf("llm factory not configured")
	}
	session, err := factory.NewSession(spec)
	if err != nil {
		return "", err
	}
	ctx, span := observability.StartSpan(ctx, "llm."+feature,
		"llm.model", spec.String(),
		"llm.session_id", session.ID(),
	)
	defer span.End()

	reply, err := session.SendMessage(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("provider call failed", "feature", feature, "model", spec.String(), "session_id", session.ID(), "error", err)
		return "", err
	}
	log.Debug("provider call ok", "feature", feature, "model", spec.String(), "session_id", session.ID(), "reply_chars", len(reply))
	return reply, nil
}
