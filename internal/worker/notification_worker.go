package worker

import (
	"context"

	"github.com/spec-kit/campus-desk/internal/feed"
	"github.com/spec-kit/campus-desk/internal/service"
)

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartFeed runs the message feed in the background.
func StartFeed(ctx context.Context, f feed.Feed) {
	if f == nil {
		return
	}
	go f.Run(ctx)
}
