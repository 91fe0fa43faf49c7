// Package memory is an in-process domain.Repository with the same
// compare-and-swap contract as the gorm one. Tests across packages run
// use cases against it.
package memory

import (
	"context"
	"reflect"
	"sort"
	"sync"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type Repository struct {
	mu sync.Mutex

	studios   map[uint]*models.Studio
	users     map[uint]*models.User
	apps      map[uint]*models.Appointment
	history   []models.AppointmentStatusEvent
	hours     map[uint][]models.WorkingHours
	incidents []models.IncidentReport
	nextID    uint

	// BeforeUpdate runs inside UpdateAppointment before the
	// compare-and-swap, with the stored record. Any change it makes
	// counts as a concurrent committed write and advances the version.
	BeforeUpdate func(stored *models.Appointment)
}

func NewRepository() *Repository {
	return &Repository{
		studios: map[uint]*models.Studio{},
		users:   map[uint]*models.User{},
		apps:    map[uint]*models.Appointment{},
		hours:   map[uint][]models.WorkingHours{},
		nextID:  100,
	}
}

// ----------------- Seeding / inspection -----------------

func (r *Repository) AddStudio(s models.Studio) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.studios[s.ID] = &s
}

func (r *Repository) AddUser(u models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = &u
}

// Put stores ap as-is, assigning an id when it has none.
func (r *Repository) Put(ap *models.Appointment) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == 0 {
		r.nextID++
		ap.ID = r.nextID
	}
	if ap.StudioID == 0 {
		ap.StudioID = 1
	}
	domain.RecomputeBalance(ap)
	r.apps[ap.ID] = ap.Clone()
	return ap
}

// Stored returns a copy of the record, or nil.
func (r *Repository) Stored(id uint) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.apps[id]
	if !ok {
		return nil
	}
	return ap.Clone()
}

func (r *Repository) Appointments() []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Appointment, 0, len(r.apps))
	for _, ap := range r.apps {
		out = append(out, *ap.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Repository) History() []models.AppointmentStatusEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.AppointmentStatusEvent(nil), r.history...)
}

func (r *Repository) Incidents() []models.IncidentReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.IncidentReport(nil), r.incidents...)
}

func (r *Repository) SetWorkingHours(artistID uint, hours []models.WorkingHours) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hours[artistID] = append([]models.WorkingHours(nil), hours...)
}

// ----------------- domain.Repository -----------------

func (r *Repository) GetStudioByID(_ context.Context, id uint) (*models.Studio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.studios[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *Repository) GetUser(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *Repository) CreateAppointment(_ context.Context, ap *models.Appointment, event *models.AppointmentStatusEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ap.ID = r.nextID
	r.apps[ap.ID] = ap.Clone()
	if event != nil {
		event.AppointmentID = ap.ID
		r.history = append(r.history, *event)
	}
	return nil
}

func (r *Repository) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ap.Clone(), nil
}

func (r *Repository) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.apps {
		if ap.StudioID != f.StudioID ||
			(f.ClientID != 0 && ap.ClientID != f.ClientID) ||
			(f.ArtistID != 0 && ap.ArtistID != f.ArtistID) ||
			(f.From != "" && ap.ScheduledDate < f.From) ||
			(f.To != "" && ap.ScheduledDate > f.To) {
			continue
		}
		out = append(out, *ap.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) UpdateAppointment(_ context.Context, ap *models.Appointment, expected domain.Status, event *models.AppointmentStatusEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.apps[ap.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.BeforeUpdate != nil {
		before := stored.Clone()
		r.BeforeUpdate(stored)
		if !reflect.DeepEqual(before, stored) {
			stored.Version++
		}
	}
	if domain.Status(stored.Status) != expected || stored.Version != ap.Version {
		return domain.ErrStaleState
	}
	ap.Version++
	if ap.PendingChange != nil && ap.PendingChange.ID == 0 {
		r.nextID++
		ap.PendingChange.ID = r.nextID
		ap.PendingChange.AppointmentID = ap.ID
	}
	r.apps[ap.ID] = ap.Clone()
	if event != nil {
		r.history = append(r.history, *event)
	}
	return nil
}

func (r *Repository) ListStatusEvents(_ context.Context, id uint) ([]models.AppointmentStatusEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AppointmentStatusEvent
	for _, e := range r.history {
		if e.AppointmentID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *Repository) ListByArtist(_ context.Context, artistID uint, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.apps {
		if ap.ArtistID == artistID && ap.ScheduledDate == date {
			out = append(out, *ap.Clone())
		}
	}
	return out, nil
}

func (r *Repository) GetWorkingHours(_ context.Context, artistID uint, weekday int) (*models.WorkingHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, wh := range r.hours[artistID] {
		if wh.Weekday == weekday {
			cp := wh
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *Repository) ListWorkingHours(_ context.Context, artistID uint) ([]models.WorkingHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.WorkingHours(nil), r.hours[artistID]...), nil
}

func (r *Repository) ReplaceWorkingHours(_ context.Context, artistID uint, hours []models.WorkingHours) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range hours {
		hours[i].ArtistID = artistID
	}
	r.hours[artistID] = append([]models.WorkingHours(nil), hours...)
	return nil
}

func (r *Repository) CreateIncident(_ context.Context, report *models.IncidentReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	report.ID = r.nextID
	r.incidents = append(r.incidents, *report)
	return nil
}

var _ domain.Repository = (*Repository)(nil)
