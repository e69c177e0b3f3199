package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tnqbao/gau-vm-service/entity"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to entity.VMStatus
		allowed  bool
	}{
		{entity.VMStatusCreated, entity.VMStatusStarting, true},
		{entity.VMStatusCreated, entity.VMStatusRunning, false},
		{entity.VMStatusCreated, entity.VMStatusStopping, false},
		{entity.VMStatusStarting, entity.VMStatusRunning, true},
		{entity.VMStatusStarting, entity.VMStatusStopping, true},
		{entity.VMStatusRunning, entity.VMStatusStarting, false},
		{entity.VMStatusRunning, entity.VMStatusStopping, true},
		{entity.VMStatusStopping, entity.VMStatusStopped, true},
		{entity.VMStatusStopped, entity.VMStatusStarting, true},
		{entity.VMStatusStopped, entity.VMStatusStopping, false},
		{entity.VMStatusFailed, entity.VMStatusStarting, true},
	}

	for _, test := range tests {
		assert.Equal(t, test.allowed, entity.CanTransition(test.from, test.to), "%s -> %s", test.from, test.to)
	}
}

func TestSourcesFor(t *testing.T) {
	assert.ElementsMatch(t,
		[]entity.VMStatus{entity.VMStatusCreated, entity.VMStatusStopped, entity.VMStatusFailed},
		entity.SourcesFor(entity.VMStatusStarting))
	assert.ElementsMatch(t,
		[]entity.VMStatus{entity.VMStatusStarting, entity.VMStatusRunning},
		entity.SourcesFor(entity.VMStatusStopping))
}

func TestVMStatusString(t *testing.T) {
	assert.Equal(t, "created", entity.VMStatusCreated.String())
	assert.Equal(t, "running", entity.VMStatusRunning.String())
	assert.Equal(t, "unknown", entity.VMStatus(42).String())
	assert.False(t, entity.VMStatus(42).Valid())
}
