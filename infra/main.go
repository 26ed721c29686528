package infra

import (
	"log"

	"github.com/memecataloger/catalog-api/config"
	"github.com/memecataloger/catalog-api/infra/produce"
)

type Infra struct {
	Postgres *PostgresClient
	Logger   *LoggerClient
	Storage  Storage
	Redis    *RedisClient
	RabbitMQ *RabbitMQClient
	Produce  *produce.Produce
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	storage := InitStorage(cfg.EnvConfig)
	if storage == nil {
		panic("Failed to initialize Media storage")
	}

	// Redis is optional - without it listings are served straight from the database
	redis, err := NewRedisClient(cfg.EnvConfig)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis service: %v (listing cache disabled)", err)
		redis = nil
	}

	// RabbitMQ is optional - without it blob cleanup runs inline on delete
	var produceService *produce.Produce
	rabbitMQ, err := NewRabbitMQClient(cfg.EnvConfig)
	if err != nil {
		log.Printf("Warning: Failed to initialize RabbitMQ service: %v (blob cleanup runs inline)", err)
		rabbitMQ = nil
	} else {
		produceService = produce.InitProduce(rabbitMQ.Channel)
	}

	infraInstance = &Infra{
		Postgres: postgres,
		Logger:   logger,
		Storage:  storage,
		Redis:    redis,
		RabbitMQ: rabbitMQ,
		Produce:  produceService,
	}

	return infraInstance
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}
