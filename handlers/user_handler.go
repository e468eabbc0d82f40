package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"stayvista_service/domain"
	errs "stayvista_service/errors"
	application "stayvista_service/service"
)

type UserHandler struct {
	service *application.UserService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewUserHandler(service *application.UserService, tracer trace.Tracer, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *UserHandler) Init(router *mux.Router) {
	router.HandleFunc("/user", handler.Save).Methods("PUT")
	router.HandleFunc("/user/{email}", handler.Get).Methods("GET")
	router.HandleFunc("/user/update/{email}", handler.Update).Methods("PATCH")
	router.HandleFunc("/users", handler.GetAll).Methods("GET")
}

func (handler *UserHandler) Save(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Save")
	defer span.End()

	var user domain.User
	err := json.NewDecoder(req.Body).Decode(&user)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if user.Email == "" {
		http.Error(writer, "email is required", http.StatusBadRequest)
		return
	}

	saved, err := handler.service.Save(ctx, &user)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("user upsert failed: %s", err)
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	jsonResponse(saved, writer)
}

func (handler *UserHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Get")
	defer span.End()

	vars := mux.Vars(req)
	email := vars["email"]

	user, err := handler.service.GetByEmail(ctx, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(writer, errs.NotFoundError, http.StatusNotFound)
			return
		}
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	jsonResponse(user, writer)
}

func (handler *UserHandler) Update(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Update")
	defer span.End()

	vars := mux.Vars(req)
	email := vars["email"]

	var payload map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(ctx, email, payload)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("user update failed: %s", err)
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	jsonResponse(updated, writer)
}

func (handler *UserHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.GetAll")
	defer span.End()

	users, err := handler.service.GetAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	jsonResponse(users, writer)
}
