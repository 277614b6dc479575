package app

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/attendance"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/localstate"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/shared/connection"
)

// App holds the handles BuildApp opens so main can tear them down in
// order: the session manager first (stops tickers), then the stores.
type App struct {
	Manager *attendance.Manager

	localDB interface{ Close() error }
}

func (a *App) Close() {
	if a.Manager != nil {
		a.Manager.Shutdown()
	}
	if a.localDB != nil {
		_ = a.localDB.Close()
	}
}

func BuildApp(router *gin.Engine) (*App, error) {
	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return nil, err
	}
	log.Println("✅ Database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return nil, err
	}
	log.Println("✅ Redis connection established")

	boltPath := os.Getenv("LOCAL_STORE_PATH")
	if boltPath == "" {
		boltPath = "workforce.db"
	}
	boltDB, err := connection.OpenBolt(boltPath)
	if err != nil {
		return nil, err
	}
	log.Println("✅ Local state store opened")

	localClient, err := localstate.NewClient(boltDB)
	if err != nil {
		return nil, err
	}

	// Register Modules & Routes
	manager, err := registerModules(router, sqlDB, gormDB, redisClient, localClient)
	if err != nil {
		return nil, err
	}

	return &App{Manager: manager, localDB: boltDB}, nil
}
