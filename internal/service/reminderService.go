package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medreminder/internal/database"
	repository "medreminder/internal/database/postgres"
	"medreminder/internal/pkg/matcher"

	"github.com/sirupsen/logrus"
)

const notificationTitle = "Medication Reminder"

type dispatchOutcome int

const (
	outcomeSent dispatchOutcome = iota
	outcomeDuplicate
	outcomeSkipped
	outcomeFailed
)

type reminderService struct {
	scheduleRepo  repository.ScheduleRepository
	userRepo      repository.UserRepository
	gate          database.DispatchGate
	sender        Sender
	evaluator     *matcher.Evaluator
	loc           *time.Location
	dailyClaimTTL time.Duration
	poolSize      int

	// now is swappable in tests; nil means time.Now.
	now func() time.Time
}

// NewReminderService wires the tick orchestrator. loc and matchWindow are
// deployment constants fixed at construction; there is no implicit global
// state and no re-initialization. sender may be nil when push delivery is
// disabled, in which case due occurrences are claimed and logged but not sent.
func NewReminderService(
	scheduleRepo repository.ScheduleRepository,
	userRepo repository.UserRepository,
	gate database.DispatchGate,
	sender Sender,
	loc *time.Location,
	matchWindow time.Duration,
	dailyClaimTTL time.Duration,
	poolSize int,
) ReminderService {
	if poolSize <= 0 {
		poolSize = 1
	}
	return &reminderService{
		scheduleRepo:  scheduleRepo,
		userRepo:      userRepo,
		gate:          gate,
		sender:        sender,
		evaluator:     matcher.NewEvaluator(loc, matchWindow),
		loc:           loc,
		dailyClaimTTL: dailyClaimTTL,
		poolSize:      poolSize,
	}
}

// ProcessTick runs one full evaluation pass. Only a schedule source outage
// returns an error; every per-occurrence failure is contained, logged and
// counted, so one broken send never aborts its siblings or fails the tick.
func (s *reminderService) ProcessTick(ctx context.Context) error {
	schedules, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch schedules: %w", err)
	}

	// "Now" is computed once so every comparison in this tick is
	// zone-consistent and lands on the same minute.
	nowFn := s.now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().In(s.loc)

	due := s.evaluator.Evaluate(now, schedules)
	if len(due) == 0 {
		logrus.Debugf("Reminder tick at %s: nothing due among %d schedules", now.Format("15:04"), len(schedules))
		return nil
	}

	logrus.Infof("Reminder tick at %s: %d of %d schedules due", now.Format("15:04"), len(due), len(schedules))

	var (
		mu         sync.Mutex
		sent       int
		duplicates int
		skipped    int
		failed     int
	)

	sem := make(chan struct{}, s.poolSize)
	var wg sync.WaitGroup

	for _, occ := range due {
		wg.Add(1)
		sem <- struct{}{}

		go func(occ matcher.Occurrence) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome := s.dispatch(ctx, occ)

			mu.Lock()
			switch outcome {
			case outcomeSent:
				sent++
			case outcomeDuplicate:
				duplicates++
			case outcomeSkipped:
				skipped++
			default:
				failed++
			}
			mu.Unlock()
		}(occ)
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"due":        len(due),
		"sent":       sent,
		"duplicates": duplicates,
		"skipped":    skipped,
		"failed":     failed,
	}).Info("Reminder tick completed")

	return nil
}

// dispatch handles a single due occurrence: claim, resolve token, send.
// A failed claim means another tick already owns this occurrence and is the
// expected outcome under overlapping ticks. Token and delivery failures leave
// the claim standing: the occurrence is spent either way, so a permanently
// tokenless user cannot generate a notification storm on later ticks.
func (s *reminderService) dispatch(ctx context.Context, occ matcher.Occurrence) dispatchOutcome {
	var ttl time.Duration
	if occ.Daily {
		ttl = s.dailyClaimTTL
	}

	claimed, err := s.gate.TryClaim(ctx, occ.Key, ttl)
	if err != nil {
		logrus.Errorf("Failed to claim occurrence %s: %v", occ.Key, err)
		return outcomeFailed
	}
	if !claimed {
		logrus.Debugf("Occurrence %s already claimed, skipping", occ.Key)
		return outcomeDuplicate
	}

	user, err := s.userRepo.GetByID(ctx, occ.UserID)
	if err != nil {
		logrus.Errorf("Failed to resolve user %s for schedule %s: %v", occ.UserID, occ.ScheduleID, err)
		return outcomeFailed
	}
	if user == nil || user.FCMToken == "" {
		logrus.Warnf("No FCM token for user %s, reminder %q not delivered", occ.UserID, occ.Name)
		return outcomeSkipped
	}

	if s.sender == nil {
		logrus.Infof("Push disabled, reminder %q for user %s not delivered", occ.Name, occ.UserID)
		return outcomeSkipped
	}

	body := fmt.Sprintf("It's time to take %s - %smg", occ.Name, occ.Dosage)
	if err := s.sender.Send(ctx, user.FCMToken, notificationTitle, body); err != nil {
		logrus.Errorf("Failed to deliver reminder for schedule %s: %v", occ.ScheduleID, err)
		return outcomeFailed
	}

	logrus.Infof("Reminder sent for schedule %s to user %s", occ.ScheduleID, occ.UserID)
	return outcomeSent
}
