package appointment

import (
	"sync"
	"time"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/events"
	"github.com/BruksfildServices01/studio-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/studio-scheduler/internal/lock"
	"github.com/BruksfildServices01/studio-scheduler/internal/logging"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

func newMemRepo() *memory.Repository {
	r := memory.NewRepository()
	r.AddStudio(models.Studio{ID: 1, Name: "Tinta Viva", Timezone: "UTC", MinAdvanceMinutes: 120})
	for _, u := range []models.User{
		{ID: 10, StudioID: 1, Name: "Ana", Role: "client"},
		{ID: 11, StudioID: 1, Name: "Bia", Role: "client"},
		{ID: 20, StudioID: 1, Name: "Caio", Role: "artist"},
		{ID: 21, StudioID: 1, Name: "Duda", Role: "artist"},
		{ID: 30, StudioID: 1, Name: "Edu", Role: "manager"},
	} {
		r.AddUser(u)
	}
	return r
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ev events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.Type
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type stubReasons map[string]bool

func (s stubReasons) Allows(code string) bool { return s[code] }

var (
	client  = domain.Actor{UserID: 10, StudioID: 1, Role: domain.RoleClient}
	artist  = domain.Actor{UserID: 20, StudioID: 1, Role: domain.RoleArtist}
	manager = domain.Actor{UserID: 30, StudioID: 1, Role: domain.RoleManager}

	// Monday 2025-12-15 10:00 UTC.
	testNow = time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)
)

type harness struct {
	repo *memory.Repository
	pub  *recordingPublisher
	t    *Transitioner
}

func newHarness() *harness {
	repo := newMemRepo()
	pub := &recordingPublisher{}
	t := NewTransitioner(repo, lock.NewLocalLocker(), pub, nil, logging.Discard().Logger).
		WithClock(func() time.Time { return testNow })
	return &harness{repo: repo, pub: pub, t: t}
}

func booking(status domain.Status, date, start, end string) *models.Appointment {
	return &models.Appointment{
		StudioID:      1,
		ClientID:      10,
		ArtistID:      20,
		Service:       "Fine line",
		ScheduledDate: date,
		StartTime:     start,
		EndTime:       end,
		Status:        string(status),
		PriceCents:    120000,
		DepositCents:  40000,
	}
}
