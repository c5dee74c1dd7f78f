package reminders

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifications"
	"github.com/m04kA/SMC-SalonService/internal/integrations/userservice"
)

const (
	defaultInterval  = time.Minute
	defaultLead      = 24 * time.Hour
	defaultBatchSize = 100
)

// Этапы, по которым считаются ошибки рассылки
const (
	stageLoad    = "load"
	stagePublish = "publish"
	stageMark    = "mark"
)

// Config параметры рассылки напоминаний
type Config struct {
	Interval    time.Duration // Период опроса
	Lead        time.Duration // За сколько до начала записи напоминать
	BatchSize   int
	ServiceName string // Метка сервиса в метриках
}

// Dispatcher фоновая рассылка напоминаний о записях.
// Создаётся в main и запускается явно через Start, останавливается через Stop.
type Dispatcher struct {
	appointmentRepo AppointmentRepository
	contacts        ContactProvider
	publisher       EventPublisher
	recorder        ReminderRecorder
	cfg             Config
	timeProvider    TimeProvider
	logger          Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDispatcher создает остановленный dispatcher
func NewDispatcher(
	appointmentRepo AppointmentRepository,
	contacts ContactProvider,
	publisher EventPublisher,
	recorder ReminderRecorder,
	cfg Config,
	logger Logger,
) *Dispatcher {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.Lead <= 0 {
		cfg.Lead = defaultLead
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}

	return &Dispatcher{
		appointmentRepo: appointmentRepo,
		contacts:        contacts,
		publisher:       publisher,
		recorder:        recorder,
		cfg:             cfg,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Start запускает цикл рассылки. Повторный вызов на работающем dispatcher ничего не делает.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.isRunning() {
		d.logger.Warn("Dispatcher: already running")
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})

	go d.loop(loopCtx, d.done)

	d.logger.Info("Dispatcher: started, interval=%s, lead=%s, batch=%d", d.cfg.Interval, d.cfg.Lead, d.cfg.BatchSize)
	return nil
}

// Stop останавливает цикл и ждёт завершения текущей итерации.
// На остановленном dispatcher ничего не делает.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel == nil {
		return
	}

	d.cancel()
	<-d.done

	d.cancel = nil
	d.done = nil
	d.logger.Info("Dispatcher: stopped")
}

// Running true, пока цикл рассылки работает
func (d *Dispatcher) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.isRunning()
}

// isRunning вызывается под mu. Цикл мог завершиться сам при отмене родительского контекста.
func (d *Dispatcher) isRunning() bool {
	if d.done == nil {
		return false
	}
	select {
	case <-d.done:
		return false
	default:
		return true
	}
}

func (d *Dispatcher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	for {
		d.RunOnce(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce отправляет напоминания по записям, начинающимся в ближайшие cfg.Lead.
// Возвращает число отправленных напоминаний. Неотправленные записи будут повторены на следующей итерации.
func (d *Dispatcher) RunOnce(ctx context.Context) int {
	now := d.timeProvider.Now()
	until := now.Add(d.cfg.Lead)

	appointments, err := d.appointmentRepo.GetAwaitingReminder(ctx, now, until, d.cfg.BatchSize)
	if err != nil {
		if ctx.Err() == nil {
			d.logger.Error("Dispatcher: failed to load appointments: %v", err)
			d.failed(stageLoad)
		}
		return 0
	}

	sent := 0
	for _, a := range appointments {
		if ctx.Err() != nil {
			break
		}

		startsAt := a.StartsAt(now.Location())
		if startsAt.Before(now) || startsAt.After(until) {
			continue
		}

		if d.send(ctx, a, startsAt, now) {
			sent++
		}
	}

	if sent > 0 {
		d.logger.Info("Dispatcher: sent %d reminders", sent)
	}
	return sent
}

func (d *Dispatcher) send(ctx context.Context, a *domain.Appointment, startsAt, now time.Time) bool {
	event := &notifications.ReminderEvent{
		AppointmentID:   a.ID,
		SalonID:         a.SalonID,
		StaffID:         a.StaffID,
		ClientID:        a.ClientID,
		ServiceName:     a.ServiceName,
		AppointmentDate: a.AppointmentDate.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		StartsAt:        startsAt,
		CreatedAt:       now,
	}

	// Без контакта напоминание всё равно уходит, адресата найдёт потребитель по clientId
	contact, err := d.contacts.GetContactWithGracefulDegradation(ctx, a.ClientID)
	if err != nil {
		d.logger.Warn("Dispatcher: sending appointment id=%d without contact: %v", a.ID, err)
	} else {
		event.Contact = toEventContact(contact)
	}

	if err := d.publisher.PublishReminder(ctx, event); err != nil {
		d.logger.Error("Dispatcher: failed to publish reminder for appointment id=%d: %v", a.ID, err)
		d.failed(stagePublish)
		return false
	}

	if err := d.appointmentRepo.MarkReminderSent(ctx, a.ID, now); err != nil {
		// Событие уже опубликовано: на следующей итерации оно уйдёт повторно
		d.logger.Error("Dispatcher: failed to mark reminder sent for appointment id=%d: %v", a.ID, err)
		d.failed(stageMark)
		return false
	}

	if d.recorder != nil {
		d.recorder.ReminderSent(d.cfg.ServiceName)
	}
	return true
}

func (d *Dispatcher) failed(stage string) {
	if d.recorder != nil {
		d.recorder.ReminderFailed(d.cfg.ServiceName, stage)
	}
}

func toEventContact(c *userservice.Contact) *notifications.Contact {
	if c == nil {
		return nil
	}
	return &notifications.Contact{
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		TelegramID: c.TelegramID,
	}
}
