// Package events defines the Kafka event contracts and the producer used to
// publish them.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicRouteEvents = "route.events"
)

// Event types.
const (
	RouteSearched = "route.searched"
)

// RouteSearchedEvent is emitted after a successful route plan, for
// analytics consumers.
type RouteSearchedEvent struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	RouteName   string    `json:"route_name"`
	SafetyScore int       `json:"safety_score"`
	RouteCount  int       `json:"route_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// CloudEvent is the envelope every published event is wrapped in.
type CloudEvent struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Type        string          `json:"type"`
	SpecVersion string          `json:"specversion"`
	Time        time.Time       `json:"time"`
	Data        json.RawMessage `json:"data"`
}

// NewCloudEvent wraps data in a CloudEvent envelope.
func NewCloudEvent(source, eventType string, data interface{}) (CloudEvent, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return CloudEvent{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return CloudEvent{
		ID:          uuid.NewString(),
		Source:      source,
		Type:        eventType,
		SpecVersion: "1.0",
		Time:        time.Now().UTC(),
		Data:        payload,
	}, nil
}

// ParseData unmarshals the event payload into v.
func (e CloudEvent) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}
