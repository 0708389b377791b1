package queue

import (
	"net/http"

	"github.com/hibiken/asynqmon"

	"github.com/jhoicas/almacen-api/pkg/config"
)

// MonitorPath ruta donde se monta el tablero de la cola.
const MonitorPath = "/monitor"

// NewMonitor devuelve el tablero asynqmon en modo solo lectura.
func NewMonitor(cfg config.RedisConfig) http.Handler {
	return asynqmon.New(asynqmon.Options{
		RootPath:     MonitorPath,
		RedisConnOpt: RedisOpt(cfg),
		ReadOnly:     true,
	})
}
