// Package memory is an in-memory IStorage used by tests. It mirrors the
// postgres repos' semantics, including the conditional seat decrement and the
// guarded status transitions.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ridecarry/pkg/models"
	"ridecarry/storage"
)

type Store struct {
	mu            sync.Mutex
	users         map[string]*models.User
	rides         map[string]*models.Ride
	bookings      map[string]*models.Booking
	messages      map[string]*models.Message
	notifications map[string]*models.Notification
	reviews       map[string]*models.Review
}

var _ storage.IStorage = (*Store)(nil)

func New() *Store {
	return &Store{
		users:         map[string]*models.User{},
		rides:         map[string]*models.Ride{},
		bookings:      map[string]*models.Booking{},
		messages:      map[string]*models.Message{},
		notifications: map[string]*models.Notification{},
		reviews:       map[string]*models.Review{},
	}
}

func (s *Store) User() storage.IUserStorage                 { return (*userStore)(s) }
func (s *Store) Ride() storage.IRideStorage                 { return (*rideStore)(s) }
func (s *Store) Booking() storage.IBookingStorage           { return (*bookingStore)(s) }
func (s *Store) Message() storage.IMessageStorage           { return (*messageStore)(s) }
func (s *Store) Notification() storage.INotificationStorage { return (*notificationStore)(s) }
func (s *Store) Review() storage.IReviewStorage             { return (*reviewStore)(s) }
func (s *Store) Close()                                     {}

func copyUser(u *models.User) *models.User {
	cp := *u
	if u.Documents != nil {
		d := *u.Documents
		cp.Documents = &d
	}
	return &cp
}

func copyRide(r *models.Ride) *models.Ride {
	cp := *r
	return &cp
}

func copyBooking(b *models.Booking) *models.Booking {
	cp := *b
	cp.Passengers = append([]models.BookingPassenger(nil), b.Passengers...)
	cp.Ride = nil
	return &cp
}

// ---- users ----

type userStore Store

func (s *userStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, storage.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = copyUser(user)
	return user, nil
}

func (s *userStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *userStore) UpdateProfile(ctx context.Context, id string, name, phone *string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if phone != nil {
		u.Phone = phone
	}
	u.UpdatedAt = time.Now()
	return copyUser(u), nil
}

// ---- rides ----

type rideStore Store

func (s *rideStore) Create(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ride.ID = uuid.NewString()
	ride.CreatedAt = time.Now()
	ride.UpdatedAt = ride.CreatedAt
	s.rides[ride.ID] = copyRide(ride)
	return ride, nil
}

func (s *rideStore) joinDriver(r *models.Ride) *models.Ride {
	cp := copyRide(r)
	if d, ok := s.users[r.DriverID]; ok {
		cp.DriverName = d.Name
		cp.DriverRole = d.Role
	}
	return cp
}

func (s *rideStore) GetByID(ctx context.Context, id string) (*models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rides[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.joinDriver(r), nil
}

func (s *rideStore) Search(ctx context.Context, from, to string, date *time.Time) ([]*models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Ride
	for _, r := range s.rides {
		if from != "" && !strings.Contains(strings.ToLower(r.From), strings.ToLower(from)) {
			continue
		}
		if to != "" && !strings.Contains(strings.ToLower(r.To), strings.ToLower(to)) {
			continue
		}
		if date != nil {
			end := date.Add(24 * time.Hour)
			if r.Date.Before(*date) || !r.Date.Before(end) {
				continue
			}
		}
		out = append(out, s.joinDriver(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *rideStore) GetByDriver(ctx context.Context, driverID string) ([]*models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Ride
	for _, r := range s.rides {
		if r.DriverID == driverID {
			out = append(out, s.joinDriver(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *rideStore) Update(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.rides[ride.ID]
	if !ok || existing.DriverID != ride.DriverID {
		return nil, storage.ErrNotFound
	}
	ride.CreatedAt = existing.CreatedAt
	ride.UpdatedAt = time.Now()
	s.rides[ride.ID] = copyRide(ride)
	return ride, nil
}

func (s *rideStore) Delete(ctx context.Context, id, driverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rides[id]
	if !ok || r.DriverID != driverID {
		return storage.ErrNotFound
	}
	for bid, b := range s.bookings {
		if b.RideID == id {
			delete(s.bookings, bid)
		}
	}
	delete(s.rides, id)
	return nil
}

// ---- bookings ----

type bookingStore Store

func (s *bookingStore) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.Type == models.RideTypeSeat {
		ride, ok := s.rides[b.RideID]
		if !ok || ride.RideType != models.RideTypeSeat || ride.Seats < b.SeatsCount {
			return nil, storage.ErrNotEnoughSeats
		}
		ride.Seats -= b.SeatsCount
	}

	b.ID = uuid.NewString()
	b.Status = models.BookingPending
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	s.bookings[b.ID] = copyBooking(b)
	return b, nil
}

func (s *bookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyBooking(b), nil
}

func (s *bookingStore) list(match func(b *models.Booking) bool) []*models.Booking {
	var out []*models.Booking
	for _, b := range s.bookings {
		if !match(b) {
			continue
		}
		cp := copyBooking(b)
		if r, ok := s.rides[b.RideID]; ok {
			cp.Ride = copyRide(r)
		}
		if u, ok := s.users[b.UserID]; ok {
			cp.UserName = u.Name
			cp.UserRole = u.Role
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *bookingStore) ListByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(b *models.Booking) bool { return b.UserID == userID }), nil
}

func (s *bookingStore) ListByDriver(ctx context.Context, driverID string) ([]*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(b *models.Booking) bool {
		r, ok := s.rides[b.RideID]
		return ok && r.DriverID == driverID
	}), nil
}

func (s *bookingStore) transition(id string, to models.BookingStatus, from []models.BookingStatus, restore bool) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	allowed := false
	for _, st := range from {
		if b.Status == st {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, storage.ErrNoTransition
	}
	b.Status = to
	b.UpdatedAt = time.Now()
	if restore && b.Type == models.RideTypeSeat {
		if r, ok := s.rides[b.RideID]; ok {
			r.Seats += b.SeatsCount
		}
	}
	return copyBooking(b), nil
}

func (s *bookingStore) Approve(ctx context.Context, id string) (*models.Booking, error) {
	return s.transition(id, models.BookingConfirmed, []models.BookingStatus{models.BookingPending}, false)
}

func (s *bookingStore) Reject(ctx context.Context, id string) (*models.Booking, error) {
	return s.transition(id, models.BookingRejected, []models.BookingStatus{models.BookingPending}, true)
}

func (s *bookingStore) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	return s.transition(id, models.BookingCancelled,
		[]models.BookingStatus{models.BookingPending, models.BookingConfirmed}, true)
}

func (s *bookingStore) ExistsForRideAndUser(ctx context.Context, rideID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.RideID == rideID && b.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// ---- messages ----

type messageStore Store

func (s *messageStore) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now()
	if u, ok := s.users[msg.SenderID]; ok {
		msg.SenderName = u.Name
		msg.SenderRole = u.Role
	}
	cp := *msg
	s.messages[msg.ID] = &cp
	return msg, nil
}

func (s *messageStore) ListByBooking(ctx context.Context, bookingID string) ([]*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Message
	for _, m := range s.messages {
		if m.BookingID == bookingID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ---- notifications ----

type notificationStore Store

func (s *notificationStore) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()
	cp := *n
	s.notifications[n.ID] = &cp
	return n, nil
}

func (s *notificationStore) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *notificationStore) CountUnread(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && n.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (s *notificationStore) MarkRead(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return storage.ErrNotFound
	}
	if n.ReadAt == nil {
		now := time.Now()
		n.ReadAt = &now
	}
	return nil
}

func (s *notificationStore) MarkAllRead(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, n := range s.notifications {
		if n.UserID == userID && n.ReadAt == nil {
			t := now
			n.ReadAt = &t
		}
	}
	return nil
}

// ---- reviews ----

type reviewStore Store

func (s *reviewStore) Upsert(ctx context.Context, review *models.Review) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rv := range s.reviews {
		if rv.RideID == review.RideID && rv.UserID == review.UserID {
			rv.Rating = review.Rating
			rv.Comment = review.Comment
			rv.UpdatedAt = time.Now()
			cp := *rv
			return &cp, nil
		}
	}
	review.ID = uuid.NewString()
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	cp := *review
	s.reviews[review.ID] = &cp
	return review, nil
}

func (s *reviewStore) ListByRide(ctx context.Context, rideID string) ([]*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Review
	for _, rv := range s.reviews {
		if rv.RideID == rideID {
			cp := *rv
			if u, ok := s.users[rv.UserID]; ok {
				cp.ReviewerName = u.Name
				cp.ReviewerAvatar = u.AvatarPath
				cp.ReviewerRole = u.Role
			}
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
