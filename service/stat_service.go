package application

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
	"stayvista_service/domain"
)

type StatService struct {
	users    domain.UserStore
	rooms    domain.RoomStore
	bookings domain.BookingStore
	tracer   trace.Tracer
}

func NewStatService(users domain.UserStore, rooms domain.RoomStore, bookings domain.BookingStore, tracer trace.Tracer) *StatService {
	return &StatService{
		users:    users,
		rooms:    rooms,
		bookings: bookings,
		tracer:   tracer,
	}
}

func (service *StatService) Admin(ctx context.Context) (*domain.AdminStats, error) {
	ctx, span := service.tracer.Start(ctx, "StatService.Admin")
	defer span.End()

	bookings, err := service.bookings.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	totalUser, err := service.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRooms, err := service.rooms.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.AdminStats{
		TotalUser:     totalUser,
		TotalRooms:    totalRooms,
		TotalPrice:    totalRevenue(bookings),
		TotalBookings: len(bookings),
		ChartData:     chartSeries(bookings, "Day", "Sales"),
	}, nil
}

func (service *StatService) Host(ctx context.Context, email string) (*domain.HostStats, error) {
	ctx, span := service.tracer.Start(ctx, "StatService.Host")
	defer span.End()

	bookings, err := service.bookings.GetByHost(ctx, email)
	if err != nil {
		return nil, err
	}

	totalUser, err := service.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRooms, err := service.rooms.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.HostStats{
		TotalUser:    totalUser,
		TotalRooms:   totalRooms,
		TotalPrice:   totalRevenue(bookings),
		TotalBooking: len(bookings),
		ChartData:    chartSeries(bookings, "Day", "Sales"),
		Timestamp:    service.accountTimestamp(ctx, email),
	}, nil
}

func (service *StatService) Guest(ctx context.Context, email string) (*domain.GuestStats, error) {
	ctx, span := service.tracer.Start(ctx, "StatService.Guest")
	defer span.End()

	bookings, err := service.bookings.GetByGuest(ctx, email)
	if err != nil {
		return nil, err
	}

	return &domain.GuestStats{
		TotalPrice:   totalRevenue(bookings),
		TotalBooking: len(bookings),
		ChartData:    chartSeries(bookings, "day", "sales"),
		Timestamp:    service.accountTimestamp(ctx, email),
	}, nil
}

func (service *StatService) accountTimestamp(ctx context.Context, email string) int64 {
	user, err := service.users.GetByEmail(ctx, email)
	if err != nil {
		return 0
	}
	return user.Timestamp
}

// totalRevenue sums booking prices over the scope. A document without a
// price decodes to 0 and contributes nothing.
func totalRevenue(bookings []*domain.Booking) float64 {
	var total float64
	for _, booking := range bookings {
		total += booking.Price
	}
	return total
}

// chartSeries projects each booking onto a ("day/month", price) pair, in
// store order (the query has no sort, so the series is not guaranteed
// chronological). The month in the label is zero based: the 5th of
// January becomes "5/0". A header row is prepended; admin/host charts use
// "Day"/"Sales" and the guest chart "day"/"sales", matching what the
// frontend charting library was built against.
func chartSeries(bookings []*domain.Booking, dayLabel, salesLabel string) []domain.ChartRow {
	series := []domain.ChartRow{{dayLabel, salesLabel}}
	for _, booking := range bookings {
		date := parseBookingDate(booking.Date)
		label := fmt.Sprintf("%d/%d", date.Day(), int(date.Month())-1)
		series = append(series, domain.ChartRow{label, booking.Price})
	}
	return series
}

// parseBookingDate accepts the date formats the frontend has been seen to
// send. Unparseable dates fall back to the zero time.
func parseBookingDate(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if date, err := time.Parse(layout, raw); err == nil {
			return date
		}
	}
	return time.Time{}
}
