package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-labyrinth/api"
	api_i "github.com/beka-birhanu/vinom-labyrinth/api/i"
	"github.com/beka-birhanu/vinom-labyrinth/api/identity"
	levelapi "github.com/beka-birhanu/vinom-labyrinth/api/level"
	"github.com/beka-birhanu/vinom-labyrinth/config"
	"github.com/beka-birhanu/vinom-labyrinth/infrastruture/counter"
	"github.com/beka-birhanu/vinom-labyrinth/infrastruture/leaderboard"
	"github.com/beka-birhanu/vinom-labyrinth/infrastruture/repo"
	"github.com/beka-birhanu/vinom-labyrinth/infrastruture/token"
	"github.com/beka-birhanu/vinom-labyrinth/logger"
	"github.com/beka-birhanu/vinom-labyrinth/service"
	"github.com/beka-birhanu/vinom-labyrinth/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mazeCountKey   = "labyrinth:maze-count"
	leaderboardKey = "labyrinth:leaderboard"
)

// Global variables for dependencies
var (
	mongoClient     *mongo.Client
	redisClient     *redis.Client
	playerRepo      *repo.PlayerRepo
	levelRunRepo    *repo.LevelRunRepo
	mazeCounter     *counter.RedisCounter
	scoreBoard      *leaderboard.RedisLeaderboard
	levelManager    i.LevelManager
	levelController api_i.Controller
	jwtTokenizer    i.Tokenizer
	authService     i.Authenticator
	authController  api_i.Controller
	router          *api.Router
	appLogger       logger.Logger
)

func newLogger(name, color string) logger.Logger {
	l, err := logger.New(name, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", name, err))
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(ctx context.Context, client *mongo.Client) {
	playerRepo = repo.NewPlayerRepo(client, config.Envs.DBName, "players")
	if err := playerRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating player indexes: %v", err))
		os.Exit(1)
	}

	levelRunRepo = repo.NewLevelRunRepo(client, config.Envs.DBName, "level_runs")
	if err := levelRunRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating level run indexes: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Repositories initialized")
}

func initScoreKeeping(client *redis.Client) {
	mazeCounter = counter.NewRedisCounter(client, mazeCountKey)
	scoreBoard = leaderboard.NewRedisLeaderboard(client, leaderboardKey, newLogger("LEADERBOARD", config.ColorMagenta))
	appLogger.Info("Maze counter and leaderboard initialized")
}

func initLevelService() {
	var err error
	levelManager, err = service.NewLevelService(service.LevelServiceConfig{
		Defaults: service.LevelDefaults{
			MazeSize:       config.Envs.MazeSize,
			TilesToRemove:  config.Envs.TilesToRemove,
			GenerateRoof:   config.Envs.GenerateRoof,
			GameOverHeight: config.Envs.GameOverHeight,
			GameOverScene:  config.Envs.GameOverScene,
			PlatformID:     config.Envs.GameOverPlatformID,
			Seed:           config.Envs.MazeSeed,
		},
		Counter:     mazeCounter,
		Runs:        levelRunRepo,
		Leaderboard: scoreBoard,
		Logger:      newLogger("LEVEL", config.ColorCyan),
		MaxSessions: config.Envs.MaxLevelSessions,
		MaxMazeSize: config.Envs.MaxMazeSize,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating level service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Level service initialized")
}

func initLevelController() {
	var err error
	levelController, err = levelapi.NewLevelController(levelManager, config.Envs.MazeCountAdmins)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating level controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Level controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(playerRepo, jwtTokenizer, newLogger("AUTH", config.ColorPurple))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, levelController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initRedis(ctx)
	defer redisClient.Close()

	initRepos(ctx, mongoClient)
	initScoreKeeping(redisClient)
	initLevelService()
	initLevelController()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
