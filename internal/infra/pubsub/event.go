package pubsub

import (
	"encoding/json"

	"tasker/internal/domain/service"

	"github.com/pkg/errors"
)

// Attribute keys set on every published account event.
const (
	attrType      = "type"
	attrRequestID = "request_id"
)

// encodeAccountEvent returns the JSON payload and the message attributes that
// subscriptions can filter on.
func encodeAccountEvent(event *service.AccountEvent) ([]byte, map[string]string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to encode account event")
	}

	attributes := map[string]string{attrType: event.Type}
	if event.RequestID != "" {
		attributes[attrRequestID] = event.RequestID
	}

	return data, attributes, nil
}
