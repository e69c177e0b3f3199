package controller

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tnqbao/gau-vm-service/entity"
	"github.com/tnqbao/gau-vm-service/http/controller/dto"
	"github.com/tnqbao/gau-vm-service/repository"
	"github.com/tnqbao/gau-vm-service/utils"
)

func (ctrl *Controller) ListVMs(c *gin.Context) {
	ctx := c.Request.Context()

	vms, err := ctrl.Repository.VMRepo.GetAll(ctx)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[VM] Failed to list VMs: %v", err)
		utils.JSON400(c, err.Error())
		return
	}

	utils.JSON200(c, gin.H{"vms": vms})
}

func (ctrl *Controller) GetVMByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := ctrl.parseIDParam(c, "id", "invalid vm id")
	if !ok {
		return
	}

	vm, err := ctrl.Repository.VMRepo.GetByID(ctx, id)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[VM] Failed to get VM %s: %v", id, err)
		utils.JSON400(c, err.Error())
		return
	}

	utils.JSON200(c, gin.H{"vm": vm})
}

func (ctrl *Controller) CreateVM(c *gin.Context) {
	ctx := c.Request.Context()
	ctrl.Infra.Logger.InfoWithContextf(ctx, "[VM] Received CreateVM request")

	var req dto.CreateVMRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[VM] Failed to bind CreateVM request: %v", err)
		utils.JSON400(c, err.Error())
		return
	}

	id, err := ctrl.Repository.VMRepo.Insert(ctx, req.ToNewVM())
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[VM] Failed to create VM %q: %v", req.Name, err)
		utils.JSON400(c, err.Error())
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[VM] Created VM %s (name: %s, network_mode: %s)", id, req.Name, req.NetworkMode)
	utils.JSON200(c, gin.H{"vm_id": id})
}

// StartVM moves the VM to starting and hands the actual boot to the lifecycle
// consumer. The VM is marked failed if the event cannot be published.
func (ctrl *Controller) StartVM(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := ctrl.parseIDParam(c, "id", "invalid vm id")
	if !ok {
		return
	}

	if _, err := ctrl.Repository.VMRepo.TransitionStatus(ctx, id, entity.VMStatusStarting); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[VM] Could not start VM %s: %v", id, err)
		utils.JSON400(c, "could not start vm: "+err.Error())
		return
	}

	if err := ctrl.Infra.Produce.VMService.PublishStart(ctx, id.String()); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[VM] Failed to publish start for VM %s: %v", id, err)
		ctrl.markFailed(c, id)
		utils.JSON400(c, "could not start vm: failed to dispatch start request")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[VM] Start requested for VM %s", id)
	utils.JSON200(c, gin.H{"vm_id": id})
}

// StopVM reports a generic message on failure; the cause is only logged.
func (ctrl *Controller) StopVM(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := ctrl.parseIDParam(c, "id", "invalid vm id")
	if !ok {
		return
	}

	if _, err := ctrl.Repository.VMRepo.TransitionStatus(ctx, id, entity.VMStatusStopping); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[VM] Could not stop VM %s: %v", id, err)
		utils.JSON400(c, "could not stop vm")
		return
	}

	if err := ctrl.Infra.Produce.VMService.PublishStop(ctx, id.String()); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[VM] Failed to publish stop for VM %s: %v", id, err)
		ctrl.markFailed(c, id)
		utils.JSON400(c, "could not stop vm")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[VM] Stop requested for VM %s", id)
	utils.JSON200(c, gin.H{"vm_id": id})
}

// markFailed runs even when the client has gone away, otherwise the VM would
// stay in starting or stopping.
func (ctrl *Controller) markFailed(c *gin.Context, id uuid.UUID) {
	ctx := context.WithoutCancel(c.Request.Context())
	if _, err := ctrl.Repository.VMRepo.TransitionStatus(ctx, id, entity.VMStatusFailed); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[VM] Failed to mark VM %s as failed: %v", id, err)
	}
}

// AttachDrive checks that both sides exist before inserting the attachment, all
// in one transaction.
func (ctrl *Controller) AttachDrive(c *gin.Context) {
	ctx := c.Request.Context()

	vmID, ok := ctrl.parseIDParam(c, "id", "invalid vm id")
	if !ok {
		return
	}
	driveID, ok := ctrl.parseIDParam(c, "drive_id", "invalid drive id")
	if !ok {
		return
	}

	err := ctrl.Repository.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.VMRepo.GetByID(ctx, vmID); err != nil {
			return err
		}
		if _, err := tx.DriveRepo.GetByID(ctx, driveID); err != nil {
			return err
		}
		return tx.VMRepo.AttachDrive(ctx, vmID, driveID)
	})
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[VM] Failed to attach drive %s to VM %s: %v", driveID, vmID, err)
		utils.JSON400(c, err.Error())
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[VM] Attached drive %s to VM %s", driveID, vmID)
	utils.JSON200(c, gin.H{"status": "ok"})
}

func (ctrl *Controller) ListVMDrives(c *gin.Context) {
	ctx := c.Request.Context()

	vmID, ok := ctrl.parseIDParam(c, "id", "invalid vm id")
	if !ok {
		return
	}

	vm, err := ctrl.Repository.VMRepo.GetByID(ctx, vmID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[VM] Failed to get VM %s: %v", vmID, err)
		utils.JSON400(c, err.Error())
		return
	}

	drives, err := ctrl.Repository.DriveRepo.GetDrivesForVM(ctx, vm)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[VM] Failed to list drives for VM %s: %v", vmID, err)
		utils.JSON400(c, err.Error())
		return
	}

	utils.JSON200(c, gin.H{"drives": drives})
}
