package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"stayvista_service/authorization"
	"stayvista_service/domain"
	errs "stayvista_service/errors"
)

type AuthHandler struct {
	secretKey  []byte
	production bool
	tracer     trace.Tracer
	logger     *logrus.Logger
}

func NewAuthHandler(secretKey []byte, production bool, tracer trace.Tracer, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		secretKey:  secretKey,
		production: production,
		tracer:     tracer,
		logger:     logger,
	}
}

func (handler *AuthHandler) Init(router *mux.Router) {
	router.HandleFunc("/", handler.Root).Methods("GET")
	router.HandleFunc("/jwt", handler.CreateToken).Methods("POST")
	router.HandleFunc("/logout", handler.Logout).Methods("GET")
}

func (handler *AuthHandler) Root(writer http.ResponseWriter, req *http.Request) {
	jsonResponse("Hello from StayVista Server..", writer)
}

// CreateToken signs the identity claim the client obtained from its
// identity provider and delivers it as the session cookie. The claim is
// trusted as-is; authorization always re-reads the stored role.
func (handler *AuthHandler) CreateToken(writer http.ResponseWriter, req *http.Request) {
	_, span := handler.tracer.Start(req.Context(), "AuthHandler.CreateToken")
	defer span.End()

	var claims domain.Claims
	err := json.NewDecoder(req.Body).Decode(&claims)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errs.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if claims.Email == "" {
		http.Error(writer, "email is required", http.StatusBadRequest)
		return
	}

	token, err := authorization.GenerateToken(handler.secretKey, &claims)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("token generation failed: %s", err)
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	authorization.SetSessionCookie(writer, token, handler.production)
	jsonResponse(map[string]bool{"success": true}, writer)
}

func (handler *AuthHandler) Logout(writer http.ResponseWriter, req *http.Request) {
	_, span := handler.tracer.Start(req.Context(), "AuthHandler.Logout")
	defer span.End()

	authorization.ClearSessionCookie(writer, handler.production)
	jsonResponse(map[string]bool{"success": true}, writer)
}
