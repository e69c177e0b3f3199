package dto

import (
	"github.com/google/uuid"
	"github.com/tnqbao/gau-vm-service/entity"
)

type CreateVMRequestDTO struct {
	Name         string             `json:"name" binding:"required,min=1,max=255"`
	VCPU         int32              `json:"vcpu" binding:"required,min=1"`
	Memory       int32              `json:"memory" binding:"required,min=1"`
	Kernel       uuid.UUID          `json:"kernel" binding:"required"`
	NetworkMode  entity.NetworkMode `json:"network_mode"`
	Address      *string            `json:"address"`
	KernelParams *string            `json:"kernel_params"`
}

func (r *CreateVMRequestDTO) ToNewVM() *entity.NewVM {
	return &entity.NewVM{
		Name:         r.Name,
		VCPU:         r.VCPU,
		Memory:       r.Memory,
		Kernel:       r.Kernel,
		NetworkMode:  r.NetworkMode,
		Address:      r.Address,
		KernelParams: r.KernelParams,
	}
}
