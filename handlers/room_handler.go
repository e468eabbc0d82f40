package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"stayvista_service/authorization"
	"stayvista_service/domain"
	errs "stayvista_service/errors"
	application "stayvista_service/service"
)

type RoomHandler struct {
	service *application.RoomService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewRoomHandler(service *application.RoomService, tracer trace.Tracer, logger *logrus.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *RoomHandler) Init(router *mux.Router) {
	router.HandleFunc("/rooms", handler.GetAll).Methods("GET")
	router.HandleFunc("/my-listings/{email}", handler.GetByHost).Methods("GET")
	router.HandleFunc("/room", handler.Create).Methods("POST")
	router.HandleFunc("/room/update/{id}", handler.Update).Methods("PUT")
	router.HandleFunc("/room/status/{id}", handler.SetStatus).Methods("PATCH")
	router.HandleFunc("/room/{id}", handler.Get).Methods("GET")
	router.HandleFunc("/roomDelete/{id}", handler.Delete).Methods("DELETE")
}

func (handler *RoomHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.GetAll")
	defer span.End()

	category := req.URL.Query().Get("category")

	rooms, err := handler.service.GetAll(ctx, category)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	if rooms == nil {
		rooms = []*domain.Room{}
	}
	jsonResponse(rooms, writer)
}

func (handler *RoomHandler) GetByHost(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.GetByHost")
	defer span.End()

	vars := mux.Vars(req)
	email := vars["email"]

	rooms, err := handler.service.GetByHost(ctx, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	if rooms == nil {
		rooms = []*domain.Room{}
	}
	jsonResponse(rooms, writer)
}

func (handler *RoomHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.Get")
	defer span.End()

	id, err := roomID(req)
	if err != nil {
		http.Error(writer, "Invalid room ID", http.StatusBadRequest)
		return
	}

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(writer, errs.NotFoundError, http.StatusNotFound)
			return
		}
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	jsonResponse(room, writer)
}

func (handler *RoomHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.Create")
	defer span.End()

	var room domain.Room
	if err := room.FromJSON(req.Body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if err := room.Validate(); err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := handler.service.Create(ctx, &room)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("room creation failed: %s", err)
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	jsonResponse(saved, writer)
}

func (handler *RoomHandler) Update(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.Update")
	defer span.End()

	id, err := roomID(req)
	if err != nil {
		http.Error(writer, "Invalid room ID", http.StatusBadRequest)
		return
	}

	var room domain.Room
	if err := room.FromJSON(req.Body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if err := room.Validate(); err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	if !handler.callerOwnsRoom(ctx, writer, req, id) {
		return
	}

	if err := handler.service.Update(ctx, id, &room); err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("room update failed: %s", err)
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	jsonResponse(&room, writer)
}

func (handler *RoomHandler) SetStatus(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.SetStatus")
	defer span.End()

	id, err := roomID(req)
	if err != nil {
		http.Error(writer, "Invalid room ID", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status bool `json:"status"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if err := handler.service.SetStatus(ctx, id, payload.Status); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	jsonResponse(map[string]bool{"success": true}, writer)
}

func (handler *RoomHandler) Delete(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.Delete")
	defer span.End()

	id, err := roomID(req)
	if err != nil {
		http.Error(writer, "Invalid room ID", http.StatusBadRequest)
		return
	}

	if !handler.callerOwnsRoom(ctx, writer, req, id) {
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("room deletion failed: %s", err)
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	jsonResponse(map[string]bool{"success": true}, writer)
}

// callerOwnsRoom rejects updates and deletes on a room whose embedded
// host email is not the caller's. Writes the response on failure.
func (handler *RoomHandler) callerOwnsRoom(ctx context.Context, writer http.ResponseWriter, req *http.Request, id primitive.ObjectID) bool {
	claims, ok := authorization.ClaimsFromContext(req.Context())
	if !ok {
		http.Error(writer, errs.UnauthorizedAccess, http.StatusUnauthorized)
		return false
	}

	existing, err := handler.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(writer, errs.NotFoundError, http.StatusNotFound)
			return false
		}
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return false
	}

	if existing.Host.Email != claims.Email {
		handler.logger.Warnf("host %s attempted to modify room %s owned by %s", claims.Email, id.Hex(), existing.Host.Email)
		http.Error(writer, errs.BadAccess, http.StatusForbidden)
		return false
	}

	return true
}

func roomID(req *http.Request) (primitive.ObjectID, error) {
	vars := mux.Vars(req)
	return primitive.ObjectIDFromHex(vars["id"])
}
