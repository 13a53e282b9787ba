// Package feed supplies incoming-message sources for the dashboard. The only
// implementation today is a randomized simulator standing in for a real push
// backend; anything implementing Feed can replace it.
package feed

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-desk/internal/config"
	"github.com/spec-kit/campus-desk/internal/domain"
	"github.com/spec-kit/campus-desk/internal/events"
	"github.com/spec-kit/campus-desk/internal/service"
	"github.com/spec-kit/campus-desk/internal/store"
)

// Feed produces incoming messages until its context is cancelled.
type Feed interface {
	Run(ctx context.Context)
}

// Simulator emits randomized chat messages and presence flips at jittered
// intervals. Messages go through the workspace service, so they persist and
// dispatch events exactly like user-posted ones.
type Simulator struct {
	workspace  *service.WorkspaceService
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.FeedConfig
}

// NewSimulator builds the simulator.
func NewSimulator(workspace *service.WorkspaceService, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.FeedConfig) *Simulator {
	return &Simulator{
		workspace:  workspace,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

var roster = []struct {
	id   string
	name string
}{
	{"sim-teacher-1", "Ms. Carter"},
	{"sim-teacher-2", "Mr. Okafor"},
	{"sim-admin-1", "Front Office"},
	{"sim-hr-1", "HR Desk"},
}

var lines = []string{
	"Staff meeting moved to 3pm today.",
	"Please submit attendance sheets before noon.",
	"Reminder: parent-teacher conferences on Friday.",
	"The science lab is booked for period 4.",
	"Payroll queries close at the end of the month.",
	"New timetable is up on the notice board.",
}

// Run emits until the context is cancelled.
func (s *Simulator) Run(ctx context.Context) {
	s.logger.Info("message feed simulator started",
		zap.Duration("min_interval", s.cfg.MinInterval()),
		zap.Duration("max_interval", s.cfg.MaxInterval()))

	timer := time.NewTimer(s.nextInterval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("message feed simulator stopped")
			return
		case <-timer.C:
			s.emit(ctx)
			timer.Reset(s.nextInterval())
		}
	}
}

func (s *Simulator) emit(ctx context.Context) {
	sender := roster[rand.IntN(len(roster))]

	// Roughly one in four ticks flips presence instead of posting.
	if rand.IntN(4) == 0 {
		s.flipPresence(ctx, sender.id)
		return
	}

	input := store.MessageInput{
		SenderID: sender.id,
		Body:     lines[rand.IntN(len(lines))],
		Type:     domain.MessageTypeAnnouncement,
	}
	if rand.IntN(2) == 0 {
		input.Type = domain.MessageTypeDepartment
		input.DepartmentID = "dept-1"
	}
	s.workspace.PostMessage(ctx, input)
}

func (s *Simulator) flipPresence(ctx context.Context, userID string) {
	online := rand.IntN(2) == 0
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPresenceChanged,
		ActorID:   userID,
		Timestamp: time.Now().UTC(),
		Payload:   events.PresencePayload{UserID: userID, Online: online},
	})
}

func (s *Simulator) nextInterval() time.Duration {
	min := s.cfg.MinInterval()
	max := s.cfg.MaxInterval()
	return min + rand.N(max-min)
}
