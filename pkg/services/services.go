package services

import "github.com/aihub/hubadmin/pkg/eventbus"

// EventPublisher is the slice of the event bus the services need. Passing
// nil disables lifecycle notifications, which tests rely on.
type EventPublisher = eventbus.EventPublisher

// EventSubscriber lets services register handlers for bus events.
type EventSubscriber = eventbus.EventSubscriber
