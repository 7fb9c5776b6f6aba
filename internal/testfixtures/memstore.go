package testfixtures

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/domain/reservation"
	"github.com/yeyakmania/booking-api/internal/domain/store"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
)

type memData struct {
	users        map[uuid.UUID]models.User
	roles        map[uuid.UUID]map[string]bool
	settings     map[uuid.UUID]models.InstructorSettings
	google       map[uuid.UUID]models.GoogleConnection
	coachings    map[uuid.UUID]models.Coaching
	packages     map[uuid.UUID]models.Package
	templates    map[uuid.UUID]models.PackageTemplate
	invitations  map[uuid.UUID]models.Invitation
	reservations map[uuid.UUID]models.Reservation
	links        []models.StudentInstructor
}

func newMemData() *memData {
	return &memData{
		users:        map[uuid.UUID]models.User{},
		roles:        map[uuid.UUID]map[string]bool{},
		settings:     map[uuid.UUID]models.InstructorSettings{},
		google:       map[uuid.UUID]models.GoogleConnection{},
		coachings:    map[uuid.UUID]models.Coaching{},
		packages:     map[uuid.UUID]models.Package{},
		templates:    map[uuid.UUID]models.PackageTemplate{},
		invitations:  map[uuid.UUID]models.Invitation{},
		reservations: map[uuid.UUID]models.Reservation{},
	}
}

func (d *memData) clone() *memData {
	c := newMemData()
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.roles {
		set := make(map[string]bool, len(v))
		for r := range v {
			set[r] = true
		}
		c.roles[k] = set
	}
	for k, v := range d.settings {
		c.settings[k] = v
	}
	for k, v := range d.google {
		c.google[k] = v
	}
	for k, v := range d.coachings {
		c.coachings[k] = v
	}
	for k, v := range d.packages {
		c.packages[k] = v
	}
	for k, v := range d.templates {
		c.templates[k] = v
	}
	for k, v := range d.invitations {
		c.invitations[k] = v
	}
	for k, v := range d.reservations {
		c.reservations[k] = v
	}
	c.links = append(c.links, d.links...)
	return c
}

// MemStore is an in-memory store.Store. WithTx restores the previous
// state when fn fails, so rollback behaviour can be asserted.
type MemStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data *memData

	// FailOn makes the named method return the error once.
	FailOn map[string]error
}

var _ store.Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{data: newMemData(), FailOn: map[string]error{}}
}

func (s *MemStore) Repos() store.Repos {
	return store.Repos{
		Users:        s,
		Settings:     s,
		Roles:        s,
		Coachings:    s,
		Credits:      s,
		Roster:       s,
		Invitations:  s,
		Reservations: s,
		Savepoint:    s.savepoint,
	}
}

func (s *MemStore) WithTx(ctx context.Context, fn func(r store.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.savepoint(ctx, fn)
}

// savepoint restores the state seen on entry when fn fails.
func (s *MemStore) savepoint(_ context.Context, fn func(r store.Repos) error) error {
	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *MemStore) fail(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.FailOn[method]; ok {
		delete(s.FailOn, method)
		return err
	}
	return nil
}

// ======================================================
// Seed helpers
// ======================================================

func (s *MemStore) SeedUser(u models.User, roles ...string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.data.users[u.ID] = u
	for _, r := range roles {
		if s.data.roles[u.ID] == nil {
			s.data.roles[u.ID] = map[string]bool{}
		}
		s.data.roles[u.ID][r] = true
	}
	return u
}

func (s *MemStore) SeedCoaching(c models.Coaching) models.Coaching {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.data.coachings[c.ID] = c
	return c
}

func (s *MemStore) SeedPackage(p models.Package) models.Package {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.data.packages[p.ID] = p
	return p
}

func (s *MemStore) SeedTemplate(t models.PackageTemplate) models.PackageTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.data.templates[t.ID] = t
	return t
}

func (s *MemStore) SeedReservation(r models.Reservation) models.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.data.reservations[r.ID] = r
	return r
}

func (s *MemStore) SeedSettings(st models.InstructorSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.settings[st.InstructorID] = st
}

func (s *MemStore) SeedGoogleConnection(c models.GoogleConnection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.google[c.UserID] = c
}

func (s *MemStore) SeedInvitation(inv models.Invitation) models.Invitation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	s.data.invitations[inv.ID] = inv
	return inv
}

// Packages returns every package, for assertions.
func (s *MemStore) Packages() []models.Package {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Package, 0, len(s.data.packages))
	for _, p := range s.data.packages {
		out = append(out, p)
	}
	return out
}

func (s *MemStore) Reservations() []models.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Reservation, 0, len(s.data.reservations))
	for _, r := range s.data.reservations {
		out = append(out, r)
	}
	return out
}

func (s *MemStore) Links() []models.StudentInstructor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.StudentInstructor(nil), s.data.links...)
}

// ======================================================
// Users / roles / settings
// ======================================================

func (s *MemStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.data.users[id]
	if !ok {
		return nil, httperr.NotFoundErr("user_not_found")
	}
	return &u, nil
}

func (s *MemStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.data.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, httperr.NotFoundErr("user_not_found")
}

func (s *MemStore) UpsertUserByEmail(_ context.Context, in *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.data.users {
		if strings.EqualFold(u.Email, in.Email) {
			u.GoogleSub = in.GoogleSub
			s.data.users[id] = u
			return &u, nil
		}
	}
	u := *in
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.data.users[u.ID] = u
	return &u, nil
}

func (s *MemStore) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.users[u.ID]; !ok {
		return httperr.NotFoundErr("user_not_found")
	}
	s.data.users[u.ID] = *u
	return nil
}

func (s *MemStore) ListRoles(_ context.Context, userID uuid.UUID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for r := range s.data.roles[userID] {
		out = append(out, r)
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemStore) AddRole(_ context.Context, userID uuid.UUID, role string) error {
	if err := s.fail("AddRole"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.roles[userID] == nil {
		s.data.roles[userID] = map[string]bool{}
	}
	s.data.roles[userID][role] = true
	return nil
}

func (s *MemStore) ClearRoles(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.roles, userID)
	return nil
}

func (s *MemStore) GetSettings(_ context.Context, instructorID uuid.UUID) (*models.InstructorSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.data.settings[instructorID]
	if !ok {
		return nil, httperr.NotFoundErr("settings_not_found")
	}
	return &st, nil
}

func (s *MemStore) SaveSettings(_ context.Context, st *models.InstructorSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.settings[st.InstructorID] = *st
	return nil
}

func (s *MemStore) GetGoogleConnection(_ context.Context, userID uuid.UUID) (*models.GoogleConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data.google[userID]
	if !ok {
		return nil, httperr.NotFoundErr("google_not_connected")
	}
	return &c, nil
}

func (s *MemStore) SaveGoogleConnection(_ context.Context, c *models.GoogleConnection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.google[c.UserID] = *c
	return nil
}

// ======================================================
// Coachings
// ======================================================

func (s *MemStore) CreateCoaching(_ context.Context, c *models.Coaching) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.data.coachings {
		if other.InstructorID == c.InstructorID && other.Slug == c.Slug {
			return httperr.Conflict("slug_taken")
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.data.coachings[c.ID] = *c
	return nil
}

func (s *MemStore) GetCoaching(_ context.Context, id uuid.UUID) (*models.Coaching, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data.coachings[id]
	if !ok {
		return nil, httperr.NotFoundErr("coaching_not_found")
	}
	return &c, nil
}

func (s *MemStore) GetCoachingBySlug(_ context.Context, instructorID uuid.UUID, slug string) (*models.Coaching, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.data.coachings {
		if c.InstructorID == instructorID && c.Slug == slug {
			c := c
			return &c, nil
		}
	}
	return nil, httperr.NotFoundErr("coaching_not_found")
}

func (s *MemStore) SlugExists(_ context.Context, instructorID uuid.UUID, slug string, exclude uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.data.coachings {
		if c.InstructorID == instructorID && c.Slug == slug && c.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) UpdateCoaching(_ context.Context, c *models.Coaching) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.coachings[c.ID]; !ok {
		return httperr.NotFoundErr("coaching_not_found")
	}
	s.data.coachings[c.ID] = *c
	return nil
}

func (s *MemStore) DeleteCoaching(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.coachings[id]; !ok {
		return httperr.NotFoundErr("coaching_not_found")
	}
	delete(s.data.coachings, id)
	return nil
}

func (s *MemStore) ListCoachings(_ context.Context, instructorID uuid.UUID, activeOnly bool) ([]models.Coaching, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Coaching
	for _, c := range s.data.coachings {
		if c.InstructorID == instructorID && (!activeOnly || c.IsActive) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// ======================================================
// Packages / templates
// ======================================================

func (s *MemStore) CreatePackage(_ context.Context, p *models.Package) error {
	if err := s.fail("CreatePackage"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.data.packages[p.ID] = *p
	return nil
}

func (s *MemStore) GetPackage(_ context.Context, id uuid.UUID) (*models.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.packages[id]
	if !ok {
		return nil, httperr.NotFoundErr("package_not_found")
	}
	return &p, nil
}

func (s *MemStore) UpdatePackage(_ context.Context, p *models.Package) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.packages[p.ID]; !ok {
		return httperr.NotFoundErr("package_not_found")
	}
	s.data.packages[p.ID] = *p
	return nil
}

func (s *MemStore) DeletePackage(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.packages[id]; !ok {
		return httperr.NotFoundErr("package_not_found")
	}
	delete(s.data.packages, id)
	return nil
}

func (s *MemStore) ListPackagesForStudent(_ context.Context, studentID uuid.UUID) ([]models.Package, error) {
	return s.filterPackages(func(p models.Package) bool { return p.StudentID == studentID }), nil
}

func (s *MemStore) ListPackagesForInstructor(_ context.Context, instructorID uuid.UUID) ([]models.Package, error) {
	return s.filterPackages(func(p models.Package) bool { return p.InstructorID == instructorID }), nil
}

func (s *MemStore) filterPackages(keep func(models.Package) bool) []models.Package {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Package
	for _, p := range s.data.packages {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
	return out
}

func (s *MemStore) DeductCredit(_ context.Context, id uuid.UUID) (*models.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.packages[id]
	if !ok {
		return nil, httperr.NotFoundErr("package_not_found")
	}
	if p.RemainingSessions <= 0 {
		return nil, httperr.InsufficientCredit("insufficient_credit")
	}
	p.RemainingSessions--
	s.data.packages[id] = p
	return &p, nil
}

func (s *MemStore) RefundCredit(_ context.Context, id uuid.UUID) (*models.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.packages[id]
	if !ok {
		return nil, httperr.NotFoundErr("package_not_found")
	}
	if p.RemainingSessions >= p.TotalSessions {
		return nil, httperr.Conflict("credit_at_capacity")
	}
	p.RemainingSessions++
	s.data.packages[id] = p
	return &p, nil
}

func (s *MemStore) CreateTemplate(_ context.Context, t *models.PackageTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.data.templates[t.ID] = *t
	return nil
}

func (s *MemStore) GetTemplate(_ context.Context, id uuid.UUID) (*models.PackageTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.data.templates[id]
	if !ok {
		return nil, httperr.NotFoundErr("template_not_found")
	}
	return &t, nil
}

func (s *MemStore) UpdateTemplate(_ context.Context, t *models.PackageTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.templates[t.ID]; !ok {
		return httperr.NotFoundErr("template_not_found")
	}
	s.data.templates[t.ID] = *t
	return nil
}

func (s *MemStore) DeleteTemplate(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.templates[id]; !ok {
		return httperr.NotFoundErr("template_not_found")
	}
	delete(s.data.templates, id)
	return nil
}

func (s *MemStore) ListTemplates(_ context.Context, instructorID uuid.UUID) ([]models.PackageTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.PackageTemplate
	for _, t := range s.data.templates {
		if t.InstructorID == instructorID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ======================================================
// Roster
// ======================================================

func sameCoaching(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *MemStore) EnsureLink(_ context.Context, link *models.StudentInstructor) error {
	if err := s.fail("EnsureLink"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.data.links {
		if l.StudentID == link.StudentID && l.InstructorID == link.InstructorID && sameCoaching(l.CoachingID, link.CoachingID) {
			return nil
		}
	}
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	s.data.links = append(s.data.links, *link)
	return nil
}

func (s *MemStore) ListStudents(_ context.Context, instructorID uuid.UUID) ([]models.StudentInstructor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.StudentInstructor
	for _, l := range s.data.links {
		if l.InstructorID == instructorID {
			if u, ok := s.data.users[l.StudentID]; ok {
				u := u
				l.Student = &u
			}
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *MemStore) ListInstructors(_ context.Context, studentID uuid.UUID) ([]models.StudentInstructor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.StudentInstructor
	for _, l := range s.data.links {
		if l.StudentID == studentID {
			out = append(out, l)
		}
	}
	return out, nil
}

// ======================================================
// Invitations
// ======================================================

func (s *MemStore) CreateInvitation(_ context.Context, inv *models.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.data.invitations {
		if other.InvitationCode == inv.InvitationCode {
			return httperr.Conflict("duplicate_entry")
		}
	}
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	s.data.invitations[inv.ID] = *inv
	return nil
}

func (s *MemStore) GetInvitationByCode(_ context.Context, code string) (*models.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.data.invitations {
		if inv.InvitationCode == code {
			inv := inv
			return &inv, nil
		}
	}
	return nil, httperr.NotFoundErr("invitation_not_found")
}

func (s *MemStore) FindPending(_ context.Context, coachingID uuid.UUID, email string, now time.Time) (*models.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.data.invitations {
		if inv.CoachingID == coachingID && inv.Email == email && inv.Status == models.InvitationPending && inv.ExpiresAt.After(now) {
			inv := inv
			return &inv, nil
		}
	}
	return nil, nil
}

func (s *MemStore) MarkAccepted(_ context.Context, id, studentID uuid.UUID, at time.Time) (bool, error) {
	if err := s.fail("MarkAccepted"); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.data.invitations[id]
	if !ok || inv.Status != models.InvitationPending {
		return false, nil
	}
	inv.Status = models.InvitationAccepted
	inv.AcceptedAt = &at
	inv.AcceptedBy = &studentID
	s.data.invitations[id] = inv
	return true, nil
}

func (s *MemStore) ListInvitations(_ context.Context, instructorID uuid.UUID) ([]models.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Invitation
	for _, inv := range s.data.invitations {
		if inv.InstructorID == instructorID {
			out = append(out, inv)
		}
	}
	return out, nil
}

// ======================================================
// Reservations
// ======================================================

func (s *MemStore) CreateReservation(_ context.Context, r *models.Reservation) error {
	if err := s.fail("CreateReservation"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.data.reservations[r.ID] = *r
	return nil
}

func (s *MemStore) GetReservation(_ context.Context, id uuid.UUID) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.reservations[id]
	if !ok {
		return nil, httperr.NotFoundErr("reservation_not_found")
	}
	if r.CoachingID != nil {
		if c, ok := s.data.coachings[*r.CoachingID]; ok {
			r.Coaching = &c
		}
	}
	return &r, nil
}

func (s *MemStore) UpdateStatus(_ context.Context, r *models.Reservation, from reservation.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.data.reservations[r.ID]
	if !ok {
		return false, httperr.NotFoundErr("reservation_not_found")
	}
	if reservation.Status(stored.Status) != from {
		return false, nil
	}
	stored.Status = r.Status
	stored.CompletedAt = r.CompletedAt
	s.data.reservations[r.ID] = stored
	return true, nil
}

func (s *MemStore) SetAttendance(_ context.Context, id uuid.UUID, a reservation.Attendance) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.data.reservations[id]
	if !ok {
		return false, httperr.NotFoundErr("reservation_not_found")
	}
	if reservation.CanMarkAttendance(reservation.Status(stored.Status)) != nil {
		return false, nil
	}
	v := string(a)
	stored.AttendanceStatus = &v
	s.data.reservations[id] = stored
	return true, nil
}

func (s *MemStore) MarkCancelled(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.reservations[id]
	if !ok {
		return false, httperr.NotFoundErr("reservation_not_found")
	}
	if !reservation.Status(r.Status).Blocking() {
		return false, nil
	}
	r.Status = string(reservation.StatusCancelled)
	r.CancelledAt = &at
	s.data.reservations[id] = r
	return true, nil
}

func (s *MemStore) SetCalendarEvent(_ context.Context, id uuid.UUID, eventID, meetLink string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.reservations[id]
	if !ok {
		return httperr.NotFoundErr("reservation_not_found")
	}
	r.GoogleEventID = &eventID
	if meetLink != "" {
		r.MeetLink = &meetLink
	}
	s.data.reservations[id] = r
	return nil
}

func (s *MemStore) listReservations(keep func(models.Reservation) bool) []models.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Reservation
	for _, r := range s.data.reservations {
		if !keep(r) {
			continue
		}
		if r.CoachingID != nil {
			if c, ok := s.data.coachings[*r.CoachingID]; ok {
				r.Coaching = &c
			}
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func (s *MemStore) ListBlockingForInstructor(_ context.Context, instructorID uuid.UUID, from, to time.Time) ([]models.Reservation, error) {
	if err := s.fail("ListBlockingForInstructor"); err != nil {
		return nil, err
	}
	return s.listReservations(func(r models.Reservation) bool {
		return r.InstructorID == instructorID && reservation.Status(r.Status).Blocking() && inRange(r.StartTime, from, to)
	}), nil
}

func (s *MemStore) ListForInstructor(_ context.Context, instructorID uuid.UUID, from, to time.Time) ([]models.Reservation, error) {
	return s.listReservations(func(r models.Reservation) bool {
		return r.InstructorID == instructorID && inRange(r.StartTime, from, to)
	}), nil
}

func (s *MemStore) ListForStudent(_ context.Context, studentID uuid.UUID, from, to time.Time) ([]models.Reservation, error) {
	return s.listReservations(func(r models.Reservation) bool {
		return r.StudentID == studentID && inRange(r.StartTime, from, to)
	}), nil
}

func (s *MemStore) ListConfirmedBetween(_ context.Context, from, to time.Time) ([]models.Reservation, error) {
	return s.listReservations(func(r models.Reservation) bool {
		return r.Status == string(reservation.StatusConfirmed) && inRange(r.StartTime, from, to)
	}), nil
}
