package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fernandezvara/dbkit"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/postlyhq/postly"
	"github.com/postlyhq/postly/httpapi"
	"github.com/postlyhq/postly/jwt"
)

type config struct {
	isProd             bool
	listen             string
	dbConn             string
	redisConn          string
	signatureSecretKey string
}

func loadConfig() (*config, error) {
	cfg := &config{}

	mode, exist := os.LookupEnv("MODE")
	cfg.isProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.listen = ":1323"
	} else {
		cfg.listen = listen
	}

	if dbConn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.dbConn = dbConn
	}

	if redisConn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.redisConn = redisConn
	}

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.signatureSecretKey = sigsk
	}

	return cfg, nil
}

func initLogger(debugMode bool) (*zap.Logger, error) {
	if debugMode {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func initRedis(connString string) (*redis.Client, error) {
	opts, err := redis.ParseURL(connString)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	l, err := initLogger(!cfg.isProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	l.Debug("logger initialized")

	db, err := dbkit.New(dbkit.Config{URL: cfg.dbConn})
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	svc := postly.NewService(db)

	result, err := db.Migrate(context.Background(), svc.Migrations())
	if err != nil {
		l.Fatal("error running migrations", zap.Error(err))
	}
	l.Info("migrations applied", zap.Int("count", len(result.Applied)))

	rdb, err := initRedis(cfg.redisConn)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	j, err := jwt.New(cfg.signatureSecretKey)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	app := httpapi.NewApp(l, svc, rdb, j)

	e := echo.New()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())

	app.Register(e)

	if err := e.Start(cfg.listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
