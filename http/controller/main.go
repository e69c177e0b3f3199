package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tnqbao/gau-vm-service/config"
	"github.com/tnqbao/gau-vm-service/infra"
	"github.com/tnqbao/gau-vm-service/repository"
	"github.com/tnqbao/gau-vm-service/utils"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}
	return &Controller{
		Config:     config,
		Infra:      infra,
		Repository: repo,
	}
}

func (ctrl *Controller) HealthCheck(c *gin.Context) {
	utils.JSON200(c, gin.H{"status": "ok"})
}

// parseIDParam reads a UUID path parameter, writing a 400 when it is malformed.
func (ctrl *Controller) parseIDParam(c *gin.Context, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "[VM] Invalid %s %q", name, c.Param(name))
		utils.JSON400(c, message)
		return uuid.Nil, false
	}
	return id, true
}
