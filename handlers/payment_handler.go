package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	errs "stayvista_service/errors"
	application "stayvista_service/service"
)

type PaymentHandler struct {
	service *application.PaymentService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewPaymentHandler(service *application.PaymentService, tracer trace.Tracer, logger *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *PaymentHandler) Init(router *mux.Router) {
	router.HandleFunc("/create-payment-intent", handler.CreateIntent).Methods("POST")
}

func (handler *PaymentHandler) CreateIntent(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PaymentHandler.CreateIntent")
	defer span.End()

	var payload struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if payload.Price <= 0 {
		http.Error(writer, errs.InvalidPriceError, http.StatusBadRequest)
		return
	}

	clientSecret, err := handler.service.CreateIntent(ctx, payload.Price)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.PaymentProviderError, http.StatusInternalServerError)
		return
	}

	jsonResponse(map[string]string{"clientSecret": clientSecret}, writer)
}
