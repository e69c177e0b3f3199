package entity_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-vm-service/entity"
)

func strPtr(s string) *string {
	return &s
}

func newRequest(mode entity.NetworkMode, address, kernelParams *string) *entity.NewVM {
	return &entity.NewVM{
		Name:         "vm1",
		VCPU:         1,
		Memory:       128,
		Kernel:       uuid.New(),
		NetworkMode:  mode,
		Address:      address,
		KernelParams: kernelParams,
	}
}

func TestNewVMFromRequest_Network(t *testing.T) {
	tests := []struct {
		description string
		mode        entity.NetworkMode
		address     *string
		wantMode    *string
		wantAddress string
	}{
		{"no network", entity.NetworkModeNone, nil, nil, ""},
		{"no network ignores address", entity.NetworkModeNone, strPtr("10.0.0.1"), nil, ""},
		{"dhcp without address", entity.NetworkModeDHCP, nil, strPtr("dhcp"), ""},
		{"dhcp discards address", entity.NetworkModeDHCP, strPtr("192.168.122.100"), strPtr("dhcp"), ""},
		{"static ip", entity.NetworkModeStaticIP, strPtr("192.168.122.100"), strPtr("static_ip"), "192.168.122.100"},
	}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			req := newRequest(test.mode, test.address, nil)

			vm, err := entity.NewVMFromRequest(req)
			require.NoError(t, err)

			assert.Equal(t, test.wantMode, vm.NetworkMode)
			require.NotNil(t, vm.Address)
			assert.Equal(t, test.wantAddress, *vm.Address)
		})
	}
}

func TestNewVMFromRequest_StaticIPRequiresAddress(t *testing.T) {
	for _, address := range []*string{nil, strPtr("")} {
		vm, err := entity.NewVMFromRequest(newRequest(entity.NetworkModeStaticIP, address, nil))

		assert.Nil(t, vm)
		require.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrValidation)

		var verr *entity.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "address", verr.Field)
	}
}

func TestNewVMFromRequest_KernelParams(t *testing.T) {
	tests := []struct {
		description string
		params      *string
		want        string
	}{
		{"absent uses default", nil, entity.DefaultKernelParams},
		{"custom kept", strPtr("ip=1.1.1.1"), "ip=1.1.1.1"},
		{"empty kept verbatim", strPtr(""), ""},
	}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			vm, err := entity.NewVMFromRequest(newRequest(entity.NetworkModeNone, nil, test.params))
			require.NoError(t, err)
			assert.Equal(t, test.want, vm.KernelParams)
		})
	}
}

func TestNewVMFromRequest_Defaults(t *testing.T) {
	req := newRequest(entity.NetworkModeNone, nil, nil)

	vm, err := entity.NewVMFromRequest(req)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, vm.ID)
	assert.Equal(t, entity.VMStatusCreated, vm.Status)
	assert.Nil(t, vm.HostID)
	assert.Equal(t, req.Name, vm.Name)
	assert.Equal(t, req.VCPU, vm.VCPU)
	assert.Equal(t, req.Memory, vm.Memory)
	assert.Equal(t, req.Kernel, vm.Kernel)

	other, err := entity.NewVMFromRequest(req)
	require.NoError(t, err)
	assert.NotEqual(t, vm.ID, other.ID, "each normalization gets a fresh id")
}

func TestVMMode(t *testing.T) {
	vm := &entity.VM{}
	mode, err := vm.Mode()
	require.NoError(t, err)
	assert.Equal(t, entity.NetworkModeNone, mode)

	vm.NetworkMode = strPtr("static_ip")
	mode, err = vm.Mode()
	require.NoError(t, err)
	assert.Equal(t, entity.NetworkModeStaticIP, mode)

	vm.NetworkMode = strPtr("bridge")
	_, err = vm.Mode()
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestVMValidate(t *testing.T) {
	tests := []struct {
		name    string
		mode    *string
		address *string
		status  entity.VMStatus
		field   string
	}{
		{"no network", nil, strPtr(""), entity.VMStatusCreated, ""},
		{"no network nil address", nil, nil, entity.VMStatusRunning, ""},
		{"dhcp", strPtr("dhcp"), strPtr(""), entity.VMStatusStopped, ""},
		{"static ip", strPtr("static_ip"), strPtr("10.0.0.2"), entity.VMStatusFailed, ""},
		{"unknown mode", strPtr("bridge"), strPtr(""), entity.VMStatusCreated, "network_mode"},
		{"empty mode", strPtr(""), strPtr(""), entity.VMStatusCreated, "network_mode"},
		{"static ip empty address", strPtr("static_ip"), strPtr(""), entity.VMStatusCreated, "address"},
		{"static ip nil address", strPtr("static_ip"), nil, entity.VMStatusCreated, "address"},
		{"address without mode", nil, strPtr("10.0.0.2"), entity.VMStatusCreated, "address"},
		{"dhcp with address", strPtr("dhcp"), strPtr("10.0.0.2"), entity.VMStatusCreated, "address"},
		{"unknown status", nil, strPtr(""), entity.VMStatus(42), "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := &entity.VM{NetworkMode: tt.mode, Address: tt.address, Status: tt.status}
			err := vm.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var verr *entity.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
