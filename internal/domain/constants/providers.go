// Package constants holds provider identifiers selectable from configuration.
package constants

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Notification providers
const (
	NotificationProviderLog    = "log"
	NotificationProviderResend = "resend"
	NotificationProviderPubSub = "pubsub"
	NotificationProviderNoop   = "noop"
)
