package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/karanagg166/TaskFlow/config"
	"github.com/karanagg166/TaskFlow/handlers"
	"github.com/karanagg166/TaskFlow/logging"
	"github.com/karanagg166/TaskFlow/middleware"
	"github.com/karanagg166/TaskFlow/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
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

func createUniqueIndexes(ctx context.Context, users, groups *mongo.Collection) error {
	userIndexes := []mongo.IndexModel{
		{Keys: bson.M{"email": 1}, Options: options.Index().SetUnique(true)},
		{Keys: bson.M{"username": 1}, Options: options.Index().SetUnique(true)},
	}
	if _, err := users.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create unique indexes on users: %v", err)
	}

	groupIndex := mongo.IndexModel{
		Keys:    bson.M{"name": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := groups.Indexes().CreateOne(ctx, groupIndex); err != nil {
		return fmt.Errorf("failed to create unique index on group name: %v", err)
	}

	return nil
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting TaskFlow backend...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", cfg.MongoURI)

	db := client.Database(cfg.MongoDBName)
	usersCollection := db.Collection("users")
	groupsCollection := db.Collection("groups")
	tasksCollection := db.Collection("tasks")

	if err := createUniqueIndexes(ctx, usersCollection, groupsCollection); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
	}

	healthBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "MongoHealthCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	userService := services.NewUserService(usersCollection, jwtService)
	groupService := services.NewGroupService(client, groupsCollection, usersCollection)
	taskService := services.NewTaskService(tasksCollection, groupsCollection, usersCollection)
	reportService := services.NewReportService(groupsCollection, tasksCollection, usersCollection, cfg.ReportFilePath)

	userHandler := handlers.NewUserHandler(userService, cfg.CookieExpire)
	groupHandler := handlers.NewGroupHandler(groupService, taskService, reportService)
	taskHandler := handlers.NewTaskHandler(taskService)
	healthHandler := handlers.NewHealthHandler(client, healthBreaker)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Fixed paths come first so they are not swallowed by the variable routes.
	api.HandleFunc("/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", userHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/getallgroups", groupHandler.GetAllGroups).Methods(http.MethodGet)
	api.HandleFunc("/createtask", taskHandler.CreatePersonalTask).Methods(http.MethodPost)
	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	api.Handle("/protected-resource",
		middleware.JWTAuth(jwtService)(http.HandlerFunc(userHandler.ProtectedResource))).Methods(http.MethodGet)

	api.HandleFunc("/user/{id}/userinfo", userHandler.UserInfo).Methods(http.MethodGet)

	api.HandleFunc("/{id}/create_group", groupHandler.CreateGroup).Methods(http.MethodPost)
	api.HandleFunc("/{id}/all_groups", groupHandler.GetUserGroups).Methods(http.MethodGet)
	api.HandleFunc("/{groupId}/info", groupHandler.GroupInfo).Methods(http.MethodGet)
	api.HandleFunc("/{groupId}/{id}/members", groupHandler.GetMembers).Methods(http.MethodGet)
	api.HandleFunc("/{groupId}/{id}/join_group", groupHandler.JoinGroup).Methods(http.MethodPost)
	api.HandleFunc("/{groupId}/{id}/tasks", groupHandler.GroupTasks).Methods(http.MethodGet)
	api.HandleFunc("/{groupId}/{id}/report", groupHandler.Report).Methods(http.MethodGet)

	api.HandleFunc("/{id}/create_group_task", taskHandler.CreateGroupTask).Methods(http.MethodPost)
	api.HandleFunc("/{id}/alltasks", taskHandler.GetAllTasks).Methods(http.MethodGet)
	api.HandleFunc("/{id}/specifictasks", taskHandler.GetSpecificTasks).Methods(http.MethodGet)
	api.HandleFunc("/{id}/taskcount", taskHandler.TaskCount).Methods(http.MethodGet)
	api.HandleFunc("/{taskId}/change_status", taskHandler.ChangeStatus).Methods(http.MethodPost)
	api.HandleFunc("/{id}/{taskId}/delete", taskHandler.DeleteTask).Methods(http.MethodDelete)

	corsRouter := enableCORS(r)

	serverAddress := fmt.Sprintf(":%s", cfg.ServerPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      corsRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
