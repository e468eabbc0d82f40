package application_test

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"stayvista_service/domain"
)

type fakeUserStore struct {
	users   map[string]*domain.User
	inserts int
	updates []bson.M
}

func newFakeUserStore(users ...*domain.User) *fakeUserStore {
	store := &fakeUserStore{users: map[string]*domain.User{}}
	for _, user := range users {
		store.users[user.Email] = user
	}
	return store
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := f.users[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserStore) GetAll(context.Context) ([]*domain.User, error) {
	var users []*domain.User
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserStore) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	f.inserts++
	user.ID = primitive.NewObjectID()
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeUserStore) UpdateByEmail(_ context.Context, email string, fields bson.M) error {
	f.updates = append(f.updates, fields)
	user, ok := f.users[email]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if status, ok := fields["status"].(string); ok {
		user.Status = status
	}
	if role, ok := fields["role"].(string); ok {
		user.Role = domain.Role(role)
	}
	if timestamp, ok := fields["timestamp"].(int64); ok {
		user.Timestamp = timestamp
	}
	return nil
}

func (f *fakeUserStore) Count(context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeRoomStore struct {
	rooms        []*domain.Room
	lastCategory string
}

func (f *fakeRoomStore) GetAll(_ context.Context, category string) ([]*domain.Room, error) {
	f.lastCategory = category
	if category == "" {
		return f.rooms, nil
	}
	var matched []*domain.Room
	for _, room := range f.rooms {
		if room.Category == category {
			matched = append(matched, room)
		}
	}
	return matched, nil
}

func (f *fakeRoomStore) GetByHost(_ context.Context, email string) ([]*domain.Room, error) {
	var matched []*domain.Room
	for _, room := range f.rooms {
		if room.Host.Email == email {
			matched = append(matched, room)
		}
	}
	return matched, nil
}

func (f *fakeRoomStore) Get(_ context.Context, id primitive.ObjectID) (*domain.Room, error) {
	for _, room := range f.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRoomStore) Insert(_ context.Context, room *domain.Room) (*domain.Room, error) {
	room.ID = primitive.NewObjectID()
	f.rooms = append(f.rooms, room)
	return room, nil
}

func (f *fakeRoomStore) Update(_ context.Context, id primitive.ObjectID, room *domain.Room) error {
	for i, existing := range f.rooms {
		if existing.ID == id {
			room.ID = id
			f.rooms[i] = room
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeRoomStore) UpdateStatus(_ context.Context, id primitive.ObjectID, booked bool) error {
	for _, room := range f.rooms {
		if room.ID == id {
			room.Booked = booked
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeRoomStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, room := range f.rooms {
		if room.ID == id {
			f.rooms = append(f.rooms[:i], f.rooms[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeRoomStore) Count(context.Context) (int64, error) {
	return int64(len(f.rooms)), nil
}

type fakeBookingStore struct {
	bookings []*domain.Booking
}

func (f *fakeBookingStore) Insert(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = primitive.NewObjectID()
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

func (f *fakeBookingStore) GetAll(context.Context) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingStore) GetByGuest(_ context.Context, email string) ([]*domain.Booking, error) {
	var matched []*domain.Booking
	for _, booking := range f.bookings {
		if booking.Guest.Email == email {
			matched = append(matched, booking)
		}
	}
	return matched, nil
}

func (f *fakeBookingStore) GetByHost(_ context.Context, email string) ([]*domain.Booking, error) {
	var matched []*domain.Booking
	for _, booking := range f.bookings {
		if booking.Host.Email == email {
			matched = append(matched, booking)
		}
	}
	return matched, nil
}

func (f *fakeBookingStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, booking := range f.bookings {
		if booking.ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakeRoomCache struct {
	mu          sync.Mutex
	entries     map[string][]*domain.Room
	invalidated int
}

func newFakeRoomCache() *fakeRoomCache {
	return &fakeRoomCache{entries: map[string][]*domain.Room{}}
}

func (f *fakeRoomCache) Get(_ context.Context, category string) ([]*domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rooms, ok := f.entries[category]; ok {
		return rooms, nil
	}
	return nil, fmt.Errorf("cache miss")
}

func (f *fakeRoomCache) Post(_ context.Context, category string, rooms []*domain.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[category] = rooms
	return nil
}

func (f *fakeRoomCache) Invalidate(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	f.entries = map[string][]*domain.Room{}
	return nil
}

type fakeNotifier struct {
	sent chan string
	err  error
}

func newFakeNotifier(err error) *fakeNotifier {
	return &fakeNotifier{sent: make(chan string, 10), err: err}
}

func (f *fakeNotifier) Send(to, _, _ string) error {
	f.sent <- to
	return f.err
}
