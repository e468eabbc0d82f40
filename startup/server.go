package startup

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casbin/casbin"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis"
	"github.com/gorilla/mux"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"stayvista_service/authorization"
	"stayvista_service/cache"
	"stayvista_service/domain"
	"stayvista_service/handlers"
	"stayvista_service/mail"
	application "stayvista_service/service"
	"stayvista_service/startup/config"
	"stayvista_service/store"
)

type Server struct {
	config *config.Config
}

var Logger = logrus.New()

const LogFilePath = "/app/logs/stayvista.log"

type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	msg := fmt.Sprintf("[%s] [%s] %s\n",
		entry.Time.Format("2006-01-02T15:04:05Z07:00"),
		entry.Level,
		entry.Message,
	)
	return []byte(msg), nil
}

func initLogger() {
	writer, err := rotatelogs.New(
		LogFilePath+"_%Y%m%d%H%M",
		rotatelogs.WithRotationTime(15*time.Minute),
	)
	if err != nil {
		Logger.Warnf("Failed to create rotatelogs writer, logging to stdout: %v", err)
		Logger.SetOutput(os.Stdout)
	} else {
		Logger.SetOutput(writer)
	}

	Logger.SetFormatter(&CustomFormatter{})
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func (server *Server) Start() {

	initLogger()

	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     10,
		},
	}

	mongoClient := server.initMongoClient(httpClient)
	defer func(mongoClient *mongo.Client, ctx context.Context) {
		err := mongoClient.Disconnect(ctx)
		if err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}(mongoClient, context.Background())

	ctx := context.Background()
	exp, err := newExporter(server.config.JaegerAddress)
	if err != nil {
		log.Fatalf("Failed to Initialize Exporter: %v", err)
	}

	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("stayvista_service")
	otel.SetTextMapPropagator(propagation.TraceContext{})

	redisClient := server.initRedisClient()
	roomCache := cache.NewRoomCache(redisClient, Logger, tracer)

	userStore := store.NewUserMongoDBStore(mongoClient, tracer)
	roomStore := store.NewRoomMongoDBStore(mongoClient, tracer)
	bookingStore := store.NewBookingMongoDBStore(mongoClient, tracer)

	mailService := mail.NewService(server.config.SMTPAuthMail, server.config.SMTPAuthPassword, Logger)

	userService := application.NewUserService(userStore)
	roomService := application.NewRoomService(roomStore, roomCache, Logger)
	bookingService := application.NewBookingService(bookingStore, mailService, Logger)
	statService := application.NewStatService(userStore, roomStore, bookingStore, tracer)
	paymentService := application.NewPaymentService(server.config.StripeSecretKey, Logger, tracer)

	secretKey := []byte(server.config.SecretKey)

	authHandler := handlers.NewAuthHandler(secretKey, server.config.Production, tracer, Logger)
	userHandler := handlers.NewUserHandler(userService, tracer, Logger)
	roomHandler := handlers.NewRoomHandler(roomService, tracer, Logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, tracer, Logger)
	statHandler := handlers.NewStatHandler(statService, tracer, Logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, tracer, Logger)

	enforcer, err := casbin.NewEnforcerSafe("./rbac_model.conf", "./policy.csv")
	if err != nil {
		log.Fatal(err)
	}
	Logger.Println("successful init of role policy enforcer")

	server.start(userStore, enforcer, secretKey,
		authHandler, userHandler, roomHandler, bookingHandler, statHandler, paymentHandler)
}

func (server *Server) initMongoClient(httpClient *http.Client) *mongo.Client {
	client, err := store.GetClientWithHTTPConfig(server.config.HotelDBHost, server.config.HotelDBPort, httpClient)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) initRedisClient() *redis.Client {
	client, err := store.GetRedisClient(server.config.CacheHost, server.config.CachePort)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) start(userStore domain.UserStore, enforcer *casbin.Enforcer, secretKey []byte,
	routeHandlers ...interface{ Init(*mux.Router) }) {

	router := mux.NewRouter()
	router.Use(handlers.ExtractTraceInfoMiddleware)
	router.Use(MiddlewareContentTypeSet)
	router.Use(authorization.Middleware(secretKey))
	router.Use(authorization.CasbinMiddleware(enforcer, userStore, Logger))

	for _, handler := range routeHandlers {
		handler.Init(router)
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   server.config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", server.config.Port),
		Handler: corsHandler(router),
	}

	wait := time.Second * 15
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Error Shutting Down Server %s", err)
	}
	log.Println("Server Gracefully Stopped")
}

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		rw.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(rw, h)
	})
}

func newExporter(address string) (*jaeger.Exporter, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("stayvista_service"),
		),
	)

	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}
