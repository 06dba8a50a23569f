package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/repos"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/sse"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

// Notifier is the fire-and-forget notification dispatcher: it persists a
// notification row and pushes an SSE message to the target user's channel.
// Failures are logged, never propagated to the caller.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, event sse.SSEEvent, payload map[string]any)
}

type notifier struct {
	log              *logger.Logger
	hub              *sse.SSEHub
	notificationRepo repos.NotificationRepo
}

func NewNotifier(baseLog *logger.Logger, hub *sse.SSEHub, notificationRepo repos.NotificationRepo) Notifier {
	return &notifier{
		log:              baseLog.With("service", "Notifier"),
		hub:              hub,
		notificationRepo: notificationRepo,
	}
}

func (n *notifier) Notify(ctx context.Context, userID uuid.UUID, event sse.SSEEvent, payload map[string]any) {
	if n == nil || userID == uuid.Nil {
		return
	}
	if n.notificationRepo != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			n.log.Warn("Failed to marshal notification payload", "error", err, "event", event)
			raw = nil
		}
		row := &types.Notification{
			UserID:  userID,
			Type:    string(event),
			Payload: datatypes.JSON(raw),
		}
		if _, err := n.notificationRepo.Create(ctx, nil, []*types.Notification{row}); err != nil {
			n.log.Warn("Failed to persist notification", "error", err, "event", event, "user_id", userID)
		}
	}
	if n.hub != nil {
		n.hub.Broadcast(sse.SSEMessage{
			Channel: userID.String(),
			Event:   event,
			Data:    payload,
		})
	}
}
