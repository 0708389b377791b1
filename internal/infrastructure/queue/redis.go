package queue

import (
	"github.com/hibiken/asynq"

	"github.com/jhoicas/almacen-api/pkg/config"
)

// RedisOpt opciones de conexión a Redis para cliente, servidor, scheduler y monitor.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
}
