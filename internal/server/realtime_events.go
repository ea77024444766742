package server

import (
	"context"
	"encoding/json"
	"log"

	"ladle/internal/observability"
)

// Event type constants prevent typos in event names.
const (
	EventRecipeCreated  = "recipe_created"
	EventCounterUpdated = "counter_updated"
	EventCommentCreated = "comment_created"
)

// publishBroadcastEvent fans an engagement event out to local websocket
// clients and, via Redis, to every other instance.
func (s *Server) publishBroadcastEvent(eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishBroadcast(context.Background(), message); err != nil {
			log.Printf("failed to publish %s broadcast event: %v", eventType, err)
		}
	}
	observability.RecordEngagementEvent(eventType)
}
