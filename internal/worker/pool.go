package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"lifepulse-backend/internal/models"
	"lifepulse-backend/internal/repository"
)

// Pool delivers due medicine reminders. A scanner goroutine wakes once a
// minute and queues every reminder scheduled for that minute; worker
// goroutines publish the alerts over redis pub/sub so the websocket hub pushes
// them to the user's connected devices.
type Pool struct {
	redis        *redis.Client
	reminderRepo *repository.ReminderRepo
	workerCount  int
	jobs         chan models.Reminder
	stopChan     chan struct{}
}

func NewPool(redisClient *redis.Client, reminderRepo *repository.ReminderRepo, workerCount int) *Pool {
	if workerCount <= 0 {
		workerCount = 2
	}
	return &Pool{
		redis:        redisClient,
		reminderRepo: reminderRepo,
		workerCount:  workerCount,
		jobs:         make(chan models.Reminder, 64),
		stopChan:     make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	go p.scan()

	log.Printf("Started reminder dispatcher with %d workers", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

// scan wakes at the top of every minute and queues the reminders due then.
func (p *Pool) scan() {
	for {
		now := time.Now()
		next := now.Truncate(time.Minute).Add(time.Minute)

		select {
		case <-p.stopChan:
			return
		case <-time.After(next.Sub(now)):
		}

		p.dispatchDue(time.Now())
	}
}

func (p *Pool) dispatchDue(now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	minuteOfDay := now.Hour()*60 + now.Minute()

	due, err := p.reminderRepo.ListDue(ctx, minuteOfDay, now)
	if err != nil {
		log.Printf("Reminder scan failed at minute %d: %v", minuteOfDay, err)
		return
	}

	for _, rem := range due {
		if !firesToday(rem.Days, now.Weekday()) {
			continue
		}

		select {
		case p.jobs <- rem:
		case <-p.stopChan:
			return
		}
	}
}

// firesToday checks the Sunday=bit0 schedule bitmask; 0 means every day.
func firesToday(days int, weekday time.Weekday) bool {
	if days == 0 {
		return true
	}
	return days&(1<<uint(weekday)) != 0
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Reminder worker %d shutting down", id)
			return
		case rem := <-p.jobs:
			p.deliver(id, rem)
		}
	}
}

func (p *Pool) deliver(id int, rem models.Reminder) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	now := time.Now().UTC()

	// Lock so only one instance fires a given reminder per minute.
	lockKey := fmt.Sprintf("reminder_lock:%s:%d", rem.ID, now.Unix()/60)
	locked, err := p.redis.SetNX(ctx, lockKey, "1", 2*time.Minute).Result()
	if err != nil || !locked {
		return
	}

	alert := models.WSMessage{
		Type: "reminder_alert",
		Payload: models.ReminderAlert{
			ReminderID: rem.ID,
			Medicine:   rem.Medicine,
			Dosage:     rem.Dosage,
			FiredAt:    now,
		},
	}

	data, _ := json.Marshal(alert)
	if err := p.redis.Publish(ctx, "user_updates:"+rem.UserID.String(), string(data)).Err(); err != nil {
		log.Printf("Worker %d: failed to publish reminder %s: %v", id, rem.ID, err)
		return
	}

	if err := p.reminderRepo.MarkFired(ctx, rem.ID, now); err != nil {
		log.Printf("Worker %d: failed to mark reminder %s fired: %v", id, rem.ID, err)
	}
}
