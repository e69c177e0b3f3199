package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-vm-service/http/controller"
	middlewares "github.com/tnqbao/gau-vm-service/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.New()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(gin.Recovery(), middles.TelemetryMiddleware, middles.LoggerMiddleware, middles.CORSMiddleware)

	r.GET("/healthz", ctrl.HealthCheck)

	vmRoutes := r.Group("/vms")
	{
		vmRoutes.GET("", ctrl.ListVMs)
		vmRoutes.POST("", ctrl.CreateVM)
		vmRoutes.GET("/:id", ctrl.GetVMByID)
		vmRoutes.POST("/:id/start", ctrl.StartVM)
		vmRoutes.POST("/:id/stop", ctrl.StopVM)

		// Drive attachments (nested under vm)
		vmRoutes.GET("/:id/drives", ctrl.ListVMDrives)
		vmRoutes.POST("/:id/drives/:drive_id/attach", ctrl.AttachDrive)
	}

	return r
}
