package domain

import (
	"encoding/json"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAnonymous     Role = "anonymous"
	RoleAuthenticated Role = "authenticated"
	RoleGuest         Role = "guest"
	RoleHost          Role = "host"
	RoleAdmin         Role = "admin"
)

// Party is the denormalized identity of a booking/room participant. Both
// sides of a booking are captured at creation time so listing the bookings
// of a guest or a host never needs a join against the users collection.
type Party struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email" json:"email" validate:"required,email"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Role      Role               `bson:"role,omitempty" json:"role,omitempty"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	Timestamp int64              `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
}

type Room struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title,omitempty" json:"title" validate:"required"`
	Location    string             `bson:"location,omitempty" json:"location" validate:"required"`
	Category    string             `bson:"category,omitempty" json:"category" validate:"required"`
	From        string             `bson:"from,omitempty" json:"from,omitempty"`
	To          string             `bson:"to,omitempty" json:"to,omitempty"`
	Price       float64            `bson:"price,omitempty" json:"price" validate:"required,gt=0"`
	Guests      int                `bson:"guests,omitempty" json:"guests,omitempty"`
	Bedrooms    int                `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms   int                `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Host        Party              `bson:"host,omitempty" json:"host" validate:"required"`
	Booked      bool               `bson:"booked" json:"booked"`
}

type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Guest         Party              `bson:"guest" json:"guest" validate:"required"`
	Host          Party              `bson:"host" json:"host" validate:"required"`
	RoomID        string             `bson:"roomId" json:"roomId" validate:"required"`
	Title         string             `bson:"title,omitempty" json:"title,omitempty"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Price         float64            `bson:"price,omitempty" json:"price" validate:"required,gt=0"`
	Date          string             `bson:"date" json:"date" validate:"required"`
	TransactionID string             `bson:"transactionId" json:"transactionId" validate:"required"`
}

// Claims is the identity claim embedded in the session token. Token
// validity only proves the claim was authentic at issuance; the current
// role is re-read from the users collection on every authorization check.
type Claims struct {
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ChartRow is one (label, value) pair of a statistics chart series,
// marshalled as a two-element JSON array.
type ChartRow [2]interface{}

type AdminStats struct {
	TotalUser     int64      `json:"totalUser"`
	TotalRooms    int64      `json:"totalRooms"`
	TotalPrice    float64    `json:"totalPrice"`
	TotalBookings int        `json:"totalBookings"`
	ChartData     []ChartRow `json:"chartData"`
}

type HostStats struct {
	TotalUser    int64      `json:"totalUser"`
	TotalRooms   int64      `json:"totalRooms"`
	TotalPrice   float64    `json:"totalPrice"`
	TotalBooking int        `json:"totalBooking"`
	ChartData    []ChartRow `json:"chartData"`
	Timestamp    int64      `json:"Timestamp"`
}

type GuestStats struct {
	TotalPrice   float64    `json:"totalPrice"`
	TotalBooking int        `json:"totalBooking"`
	ChartData    []ChartRow `json:"chartData"`
	Timestamp    int64      `json:"Timestamp"`
}

func (room *Room) Validate() error {
	validate := validator.New()
	return validate.Struct(room)
}

func (booking *Booking) Validate() error {
	validate := validator.New()
	return validate.Struct(booking)
}

func (room *Room) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(room)
}

func (booking *Booking) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(booking)
}
