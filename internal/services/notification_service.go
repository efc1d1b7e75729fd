// internal/services/notification_service.go
package services

import (
	"context"
	"log"
	"sync"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/repositories"
)

// NotificationDispatcher receives intents after a transaction has
// committed. Delivery is best effort: failures never surface back into the
// operation that produced the intents.
type NotificationDispatcher interface {
	Dispatch(intents []models.NotificationIntent)
}

// NotificationChannel delivers one intent to one recipient.
type NotificationChannel interface {
	Name() string
	Deliver(intent models.NotificationIntent, recipient *models.User) error
}

// AsyncDispatcher decouples persistence latency from delivery: intents go
// into a buffered queue and a single worker drains it, resolving each
// recipient and trying every configured channel. Per-recipient failures are
// logged and do not block the rest of the batch.
type AsyncDispatcher struct {
	users    repositories.UserRepository
	channels []NotificationChannel

	queue chan models.NotificationIntent
	stop  chan struct{}
	wg    sync.WaitGroup
}

func NewAsyncDispatcher(users repositories.UserRepository, channels ...NotificationChannel) *AsyncDispatcher {
	d := &AsyncDispatcher{
		users:    users,
		channels: channels,
		queue:    make(chan models.NotificationIntent, 256),
		stop:     make(chan struct{}),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *AsyncDispatcher) Dispatch(intents []models.NotificationIntent) {
	for _, intent := range intents {
		select {
		case d.queue <- intent:
		default:
			// Never block a request on a full queue; drop and record.
			log.Printf("[notify][drop] queue full, intent=%s kind=%s recipient=%d",
				intent.ID, intent.Kind, intent.RecipientID)
		}
	}
}

// Close drains the queue and stops the worker.
func (d *AsyncDispatcher) Close() {
	close(d.stop)
	d.wg.Wait()
}

func (d *AsyncDispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case intent := <-d.queue:
			d.deliver(intent)
		case <-d.stop:
			for {
				select {
				case intent := <-d.queue:
					d.deliver(intent)
				default:
					return
				}
			}
		}
	}
}

func (d *AsyncDispatcher) deliver(intent models.NotificationIntent) {
	recipient, err := d.users.FindByID(context.Background(), intent.RecipientID)
	if err != nil {
		log.Printf("[notify][err] intent=%s lookup recipient=%d: %v", intent.ID, intent.RecipientID, err)
		return
	}
	if recipient == nil {
		log.Printf("[notify][skip] intent=%s recipient=%d not found", intent.ID, intent.RecipientID)
		return
	}
	for _, ch := range d.channels {
		if err := ch.Deliver(intent, recipient); err != nil {
			log.Printf("[notify][%s][err] intent=%s kind=%s recipient=%d: %v",
				ch.Name(), intent.ID, intent.Kind, recipient.ID, err)
			continue
		}
		log.Printf("[notify][%s][ok] intent=%s kind=%s recipient=%d",
			ch.Name(), intent.ID, intent.Kind, recipient.ID)
	}
}

// notificationSubject maps a kind to the message headline.
func notificationSubject(kind models.NotificationKind) string {
	switch kind {
	case models.NotifyTaskAssigned:
		return "New task assigned to you"
	case models.NotifyTaskUpdated:
		return "A task of yours was updated"
	case models.NotifyTaskReassignedAway:
		return "You were removed from a task"
	case models.NotifyTaskCancelled:
		return "A task of yours was cancelled"
	case models.NotifyEventInvited:
		return "You are invited to an event"
	case models.NotifyEventUpdated:
		return "Your event was updated"
	case models.NotifyEventCancelled:
		return "An event was cancelled"
	}
	return "Notification"
}
