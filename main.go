package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/web-mahadihasan/TasksZen-Server/handlers"
	"github.com/web-mahadihasan/TasksZen-Server/logging"
	"github.com/web-mahadihasan/TasksZen-Server/middleware"
	"github.com/web-mahadihasan/TasksZen-Server/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting TasksZen server...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "taskszen_db"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)
	tasksCollection := db.Collection("tasks")
	usersCollection := db.Collection("users")
	activitiesCollection := db.Collection("activities")

	activityBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "activity-log-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	activityService := services.NewActivityService(activitiesCollection)
	taskService := services.NewTaskService(client, tasksCollection, activityService, activityBreaker)
	userService := services.NewUserService(usersCollection)

	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService)
	activityHandler := handlers.NewActivityHandler(activityService)
	authHandler := handlers.NewAuthHandler()

	r := mux.NewRouter()

	// Token issuance and user registration stay open; everything else needs a
	// bearer token.
	r.HandleFunc("/jwt", authHandler.IssueToken).Methods(http.MethodPost)
	r.HandleFunc("/users", userHandler.Register).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.JWTAuthMiddleware)
	protected.HandleFunc("/tasks/reorder", taskHandler.ReorderTasks).Methods(http.MethodPost)
	protected.HandleFunc("/tasks/{id}/move", taskHandler.MoveTask).Methods(http.MethodPut)
	protected.HandleFunc("/tasks/{ownerEmail}", taskHandler.GetTasks).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/{id}", taskHandler.UpdateTask).Methods(http.MethodPut)
	protected.HandleFunc("/tasks/{id}", taskHandler.DeleteTask).Methods(http.MethodDelete)
	protected.HandleFunc("/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	protected.HandleFunc("/activities/{ownerEmail}", activityHandler.GetActivities).Methods(http.MethodGet)
	protected.HandleFunc("/activities", activityHandler.CreateActivity).Methods(http.MethodPost)

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: SERVER_PORT is not set in the environment variables.")
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
