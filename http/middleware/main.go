package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-vm-service/http/controller"
)

type Middlewares struct {
	CORSMiddleware      gin.HandlerFunc
	LoggerMiddleware    gin.HandlerFunc
	TelemetryMiddleware gin.HandlerFunc
}

func NewMiddlewares(ctrl *controller.Controller) (*Middlewares, error) {
	cors := CORSMiddleware(ctrl.Config.EnvConfig)
	logger := LoggerMiddleware(ctrl.Infra.Logger)
	telemetry, err := TelemetryMiddleware(ctrl.Config.EnvConfig.Grafana.ServiceName)
	if err != nil {
		return nil, err
	}

	return &Middlewares{
		CORSMiddleware:      cors,
		LoggerMiddleware:    logger,
		TelemetryMiddleware: telemetry,
	}, nil
}
