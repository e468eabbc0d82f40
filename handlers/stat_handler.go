package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"stayvista_service/authorization"
	errs "stayvista_service/errors"
	application "stayvista_service/service"
)

type StatHandler struct {
	service *application.StatService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewStatHandler(service *application.StatService, tracer trace.Tracer, logger *logrus.Logger) *StatHandler {
	return &StatHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *StatHandler) Init(router *mux.Router) {
	router.HandleFunc("/admin-stat", handler.Admin).Methods("GET")
	router.HandleFunc("/host-stat", handler.Host).Methods("GET")
	router.HandleFunc("/guest-stat", handler.Guest).Methods("GET")
}

func (handler *StatHandler) Admin(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "StatHandler.Admin")
	defer span.End()

	stats, err := handler.service.Admin(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("admin statistics failed: %s", err)
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	jsonResponse(stats, writer)
}

func (handler *StatHandler) Host(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "StatHandler.Host")
	defer span.End()

	claims, ok := authorization.ClaimsFromContext(req.Context())
	if !ok {
		http.Error(writer, errs.UnauthorizedAccess, http.StatusUnauthorized)
		return
	}

	stats, err := handler.service.Host(ctx, claims.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("host statistics failed: %s", err)
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	jsonResponse(stats, writer)
}

func (handler *StatHandler) Guest(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "StatHandler.Guest")
	defer span.End()

	claims, ok := authorization.ClaimsFromContext(req.Context())
	if !ok {
		http.Error(writer, errs.UnauthorizedAccess, http.StatusUnauthorized)
		return
	}

	stats, err := handler.service.Guest(ctx, claims.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("guest statistics failed: %s", err)
		http.Error(writer, errs.DatabaseError, http.StatusInternalServerError)
		return
	}

	jsonResponse(stats, writer)
}
