package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP             string   // Host IP for the server
	RESTPort           int      // Port for the REST API
	DBHost             string   // Hostname or IP address for the database
	DBPort             int      // Port number for the database
	DBUser             string   // Username for the database
	DBPassword         string   // Password for the database
	DBName             string   // Name of the database
	RedisAddr          string   // host:port of the Redis server backing the maze counter and leaderboard
	RedisPassword      string   // Password for Redis, empty for none
	GinMode            string   // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret          string   // Secret key for JWT signing
	JWTIssuer          string   // Issuer claim for JWTs
	MazeSize           int      // Default width and height of generated mazes
	TilesToRemove      int      // Default number of tiles carved per maze
	GenerateRoof       bool     // Whether ceilings are placed by default
	GameOverHeight     float32  // Player height below which a level ends
	MazeSeed           int64    // Fixed seed for every level, 0 for random
	GameOverScene      string   // Scene requested when a level ends
	GameOverPlatformID string   // Collider ID of the game-over platform
	MaxLevelSessions   int      // Number of level sessions kept in memory
	MaxMazeSize        int      // Largest maze size a request may ask for
	MazeCountAdmins    []string // Usernames allowed to reset the shared maze count
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	// Populate the Config struct with required environment variables
	return Config{
		DBHost:             mustGetEnv("DB_HOST"),
		DBPort:             mustGetEnvAsInt("DB_PORT"),
		DBUser:             mustGetEnv("DB_USER"),
		DBPassword:         mustGetEnv("DB_PASS"),
		DBName:             mustGetEnv("DB_NAME"),
		RedisAddr:          mustGetEnv("REDIS_ADDR"),
		RedisPassword:      getEnvWithDefault("REDIS_PASSWORD", ""),
		GinMode:            getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:          mustGetEnv("JWT_SECRET"),
		JWTIssuer:          mustGetEnv("JWT_ISSUER"),
		HostIP:             mustGetEnv("HOST_IP"),
		RESTPort:           mustGetEnvAsInt("REST_PORT"),
		MazeSize:           getEnvAsIntWithDefault("MAZE_SIZE", 20),
		TilesToRemove:      getEnvAsIntWithDefault("TILES_TO_REMOVE", 50),
		GenerateRoof:       getEnvAsBoolWithDefault("GENERATE_ROOF", true),
		GameOverHeight:     getEnvAsFloatWithDefault("GAME_OVER_HEIGHT", -10),
		MazeSeed:           int64(getEnvAsIntWithDefault("MAZE_SEED", 0)),
		GameOverScene:      getEnvWithDefault("GAME_OVER_SCENE", "GameOverScene"),
		GameOverPlatformID: getEnvWithDefault("GAME_OVER_PLATFORM_ID", "game-over-platform"),
		MaxLevelSessions:   getEnvAsIntWithDefault("MAX_LEVEL_SESSIONS", 1000),
		MaxMazeSize:        getEnvAsIntWithDefault("MAX_MAZE_SIZE", 100),
		MazeCountAdmins:    getEnvAsListWithDefault("MAZE_COUNT_ADMINS", nil),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault parses an integer variable, falling back when it is unset.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsBoolWithDefault parses a boolean variable, falling back when it is unset.
func getEnvAsBoolWithDefault(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a boolean: %v", key, err)
	}
	return value
}

// getEnvAsFloatWithDefault parses a float variable, falling back when it is unset.
func getEnvAsFloatWithDefault(key string, defaultValue float32) float32 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 32)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return float32(value)
}

// getEnvAsListWithDefault splits a comma separated variable, falling back when it is unset.
func getEnvAsListWithDefault(key string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
