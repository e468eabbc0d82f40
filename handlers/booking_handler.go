package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"stayvista_service/domain"
	errs "stayvista_service/errors"
	application "stayvista_service/service"
)

type BookingHandler struct {
	service *application.BookingService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewBookingHandler(service *application.BookingService, tracer trace.Tracer, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *BookingHandler) Init(router *mux.Router) {
	router.HandleFunc("/bookings", handler.Create).Methods("POST")
	router.HandleFunc("/manage-bookings/{email}", handler.GetByHost).Methods("GET")
	router.HandleFunc("/my-bookings/{email}", handler.GetByGuest).Methods("GET")
	router.HandleFunc("/booking/{id}", handler.Cancel).Methods("DELETE")
}

func (handler *BookingHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Create")
	defer span.End()

	var booking domain.Booking
	if err := booking.FromJSON(req.Body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if err := booking.Validate(); err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := handler.service.Create(ctx, &booking)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("booking creation failed: %s", err)
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	jsonResponse(saved, writer)
}

func (handler *BookingHandler) GetByHost(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.GetByHost")
	defer span.End()

	vars := mux.Vars(req)
	email := vars["email"]

	bookings, err := handler.service.GetByHost(ctx, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	jsonResponse(bookings, writer)
}

func (handler *BookingHandler) GetByGuest(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.GetByGuest")
	defer span.End()

	vars := mux.Vars(req)
	email := vars["email"]

	bookings, err := handler.service.GetByGuest(ctx, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	jsonResponse(bookings, writer)
}

func (handler *BookingHandler) Cancel(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Cancel")
	defer span.End()

	vars := mux.Vars(req)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(writer, "Invalid booking ID", http.StatusBadRequest)
		return
	}

	if err := handler.service.Cancel(ctx, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("booking cancellation failed: %s", err)
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	jsonResponse(map[string]bool{"success": true}, writer)
}
