package queue

import (
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/almacen-api/pkg/logger"
)

var _ asynq.Logger = (*AsynqLogger)(nil)

// AsynqLogger adapta el logger de la app a la interfaz de asynq.
type AsynqLogger struct {
	log *logger.Logger
}

func NewAsynqLogger(log *logger.Logger) *AsynqLogger {
	if log == nil {
		log = logger.Nop()
	}
	return &AsynqLogger{log: log}
}

func (l *AsynqLogger) Debug(args ...interface{}) { l.log.Debug().Msg(fmt.Sprint(args...)) }
func (l *AsynqLogger) Info(args ...interface{})  { l.log.Info().Msg(fmt.Sprint(args...)) }
func (l *AsynqLogger) Warn(args ...interface{})  { l.log.Warn().Msg(fmt.Sprint(args...)) }
func (l *AsynqLogger) Error(args ...interface{}) { l.log.Error().Msg(fmt.Sprint(args...)) }
func (l *AsynqLogger) Fatal(args ...interface{}) { l.log.Fatal().Msg(fmt.Sprint(args...)) }
