package journal

import (
	"context"
)

//go:generate mockgen -source=collaborators.go -destination=mock_collaborators.go -package=journal

// ChannelAccess is the external collaborator that actually changes shared
// channel membership. Calls may fail transiently; the controller retries
// with backoff and never persists a flag the collaborator did not confirm.
type ChannelAccess interface {
	Grant(ctx context.Context, platformUserID string) error
	Revoke(ctx context.Context, platformUserID string) error
}

// Notifier delivers user-facing feedback and operator alerts. Notification
// failures are logged but never fail the ingestion path.
type Notifier interface {
	NotifyProgress(ctx context.Context, channelID string, totalWords, remaining int) error
	NotifyGranted(ctx context.Context, channelID string, totalWords int) error
	NotifyAccessDelayed(ctx context.Context, channelID string, totalWords int) error
	AlertOperator(ctx context.Context, message string) error
}
