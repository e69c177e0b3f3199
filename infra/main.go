package infra

import (
	"context"
	"errors"

	"github.com/tnqbao/gau-vm-service/config"
	"github.com/tnqbao/gau-vm-service/infra/produce"
)

type Infra struct {
	Redis     *RedisClient
	Postgres  *PostgresClient
	Logger    *LoggerClient
	RabbitMQ  *RabbitMQClient
	Produce   *produce.Produce
	Telemetry *Telemetry
}

// InitInfra connects every backing service. It panics when one is unusable;
// callers pass the returned value down explicitly.
func InitInfra(cfg *config.Config) *Infra {
	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	telemetry, err := InitTelemetry(context.Background(), cfg.EnvConfig)
	if err != nil {
		panic("Failed to initialize Telemetry: " + err.Error())
	}

	redis := InitRedisClient(cfg.EnvConfig)
	if redis == nil {
		panic("Failed to initialize Redis service")
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	rabbitMQ := InitRabbitMQClient(cfg.EnvConfig)
	if rabbitMQ == nil {
		panic("Failed to initialize RabbitMQ service")
	}

	produceService := produce.InitProduce(rabbitMQ.Channel)
	if produceService == nil {
		panic("Failed to initialize Produce service")
	}

	return &Infra{
		Redis:     redis,
		Postgres:  postgres,
		Logger:    logger,
		RabbitMQ:  rabbitMQ,
		Produce:   produceService,
		Telemetry: telemetry,
	}
}

func (i *Infra) Close(ctx context.Context) error {
	return errors.Join(
		i.RabbitMQ.Close(),
		i.Redis.Close(),
		i.Postgres.Close(),
		i.Telemetry.Shutdown(ctx),
		i.Logger.Shutdown(ctx),
	)
}
