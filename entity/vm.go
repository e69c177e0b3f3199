package entity

import (
	"fmt"

	"github.com/google/uuid"
)

const DefaultKernelParams = "console=ttyS0 reboot=k panic=1 pci=off"

type VM struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string     `json:"name" gorm:"type:text;not null"`
	Status       VMStatus   `json:"status" gorm:"type:integer;not null;default:0;index"`
	HostID       *uuid.UUID `json:"host_id" gorm:"column:host_id;type:uuid"`
	VCPU         int32      `json:"vcpu" gorm:"column:vcpu;type:integer;not null"`
	Memory       int32      `json:"memory" gorm:"type:integer;not null"`
	Address      *string    `json:"address" gorm:"type:text"`
	NetworkMode  *string    `json:"network_mode" gorm:"column:network_mode;type:text"`
	KernelParams string     `json:"kernel_params" gorm:"column:kernel_params;type:text;not null"`
	Kernel       uuid.UUID  `json:"kernel" gorm:"column:kernel;type:uuid;not null;index"`

	KernelRef *Kernel `json:"-" gorm:"foreignKey:Kernel;references:ID;constraint:OnDelete:RESTRICT"`
	Host      *Host   `json:"-" gorm:"foreignKey:HostID;references:ID;constraint:OnDelete:SET NULL"`
}

func (VM) TableName() string {
	return "vms"
}

// NewVM is a creation request. Address and KernelParams are pointers so an
// omitted field can be told apart from an empty one.
type NewVM struct {
	Name         string      `json:"name"`
	VCPU         int32       `json:"vcpu"`
	Memory       int32       `json:"memory"`
	Kernel       uuid.UUID   `json:"kernel"`
	NetworkMode  NetworkMode `json:"network_mode"`
	Address      *string     `json:"address"`
	KernelParams *string     `json:"kernel_params"`
}

// NewVMFromRequest turns a creation request into a persist-ready record with a
// fresh id. A DHCP request drops any address the caller sent.
func NewVMFromRequest(req *NewVM) (*VM, error) {
	address := ""
	switch req.NetworkMode {
	case NetworkModeDHCP, NetworkModeNone:
	case NetworkModeStaticIP:
		if req.Address == nil || *req.Address == "" {
			return nil, &ValidationError{Field: "address", Reason: "required when network_mode is static_ip"}
		}
		address = *req.Address
	default:
		return nil, &ValidationError{Field: "network_mode", Reason: "unknown network mode"}
	}

	kernelParams := DefaultKernelParams
	if req.KernelParams != nil {
		kernelParams = *req.KernelParams
	}

	return &VM{
		ID:           uuid.New(),
		Name:         req.Name,
		Status:       VMStatusCreated,
		HostID:       nil,
		VCPU:         req.VCPU,
		Memory:       req.Memory,
		Address:      &address,
		NetworkMode:  req.NetworkMode.Column(),
		KernelParams: kernelParams,
		Kernel:       req.Kernel,
	}, nil
}

// Mode parses the stored network_mode column back into a NetworkMode.
func (v *VM) Mode() (NetworkMode, error) {
	if v.NetworkMode == nil {
		return NetworkModeNone, nil
	}
	return ParseNetworkMode(*v.NetworkMode)
}

// Validate checks the rules every stored VM keeps: a known network mode, an
// address only with static_ip (and always with it), and a known status.
func (v *VM) Validate() error {
	mode, err := v.Mode()
	if err != nil {
		return err
	}

	address := ""
	if v.Address != nil {
		address = *v.Address
	}
	switch mode {
	case NetworkModeStaticIP:
		if address == "" {
			return &ValidationError{Field: "address", Reason: "required when network_mode is static_ip"}
		}
	case NetworkModeDHCP:
		if address != "" {
			return &ValidationError{Field: "address", Reason: "must be empty when network_mode is dhcp"}
		}
	default:
		if address != "" {
			return &ValidationError{Field: "address", Reason: "must be empty without a network_mode"}
		}
	}

	if !v.Status.Valid() {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %d", int32(v.Status))}
	}
	return nil
}
