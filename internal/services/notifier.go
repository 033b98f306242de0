package services

import (
	"github.com/google/uuid"

	"github.com/loqostudio/loqo-backend/internal/sse"
)

// StudioNotifier pushes generation and selection events to studio views
// subscribed to the part's SSE channel. All methods are nil-safe so services
// can run without a hub in tests.
type StudioNotifier interface {
	ContentCreated(partID uuid.UUID, kind string, docID uuid.UUID, versionNo int)
	ContentSelected(partID uuid.UUID, kind string, docID uuid.UUID)
	ContentDeleted(partID uuid.UUID, kind string, docIDs []uuid.UUID)
	MediaCreated(partID uuid.UUID, mediaType string, mediaID uuid.UUID)
	MediaDeleted(partID uuid.UUID, mediaType string, mediaID uuid.UUID)
}

type studioNotifier struct {
	hub *sse.SSEHub
}

func NewStudioNotifier(hub *sse.SSEHub) StudioNotifier {
	return &studioNotifier{hub: hub}
}

func (n *studioNotifier) ContentCreated(partID uuid.UUID, kind string, docID uuid.UUID, versionNo int) {
	if n == nil || n.hub == nil || partID == uuid.Nil {
		return
	}
	n.hub.Broadcast(sse.SSEMessage{
		Channel: sse.PartChannel(partID),
		Event:   sse.SSEEventContentVersionCreated,
		Data: map[string]any{
			"part_id":    partID,
			"kind":       kind,
			"doc_id":     docID,
			"version_no": versionNo,
		},
	})
}

func (n *studioNotifier) ContentSelected(partID uuid.UUID, kind string, docID uuid.UUID) {
	if n == nil || n.hub == nil || partID == uuid.Nil {
		return
	}
	n.hub.Broadcast(sse.SSEMessage{
		Channel: sse.PartChannel(partID),
		Event:   sse.SSEEventContentVersionSelected,
		Data: map[string]any{
			"part_id": partID,
			"kind":    kind,
			"doc_id":  docID,
		},
	})
}

func (n *studioNotifier) ContentDeleted(partID uuid.UUID, kind string, docIDs []uuid.UUID) {
	if n == nil || n.hub == nil || partID == uuid.Nil {
		return
	}
	n.hub.Broadcast(sse.SSEMessage{
		Channel: sse.PartChannel(partID),
		Event:   sse.SSEEventContentVersionDeleted,
		Data: map[string]any{
			"part_id": partID,
			"kind":    kind,
			"doc_ids": docIDs,
		},
	})
}

func (n *studioNotifier) MediaCreated(partID uuid.UUID, mediaType string, mediaID uuid.UUID) {
	if n == nil || n.hub == nil || partID == uuid.Nil {
		return
	}
	n.hub.Broadcast(sse.SSEMessage{
		Channel: sse.PartChannel(partID),
		Event:   sse.SSEEventMediaCreated,
		Data: map[string]any{
			"part_id":    partID,
			"media_type": mediaType,
			"media_id":   mediaID,
		},
	})
}

func (n *studioNotifier) MediaDeleted(partID uuid.UUID, mediaType string, mediaID uuid.UUID) {
	if n == nil || n.hub == nil || partID == uuid.Nil {
		return
	}
	n.hub.Broadcast(sse.SSEMessage{
		Channel: sse.PartChannel(partID),
		Event:   sse.SSEEventMediaDeleted,
		Data: map[string]any{
			"part_id":    partID,
			"media_type": mediaType,
			"media_id":   mediaID,
		},
	})
}
