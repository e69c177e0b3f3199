package entity

// VMStatus is persisted as an integer in vms.status. Created (0) means the VM
// has never been started.
type VMStatus int32

const (
	VMStatusCreated VMStatus = iota
	VMStatusStarting
	VMStatusRunning
	VMStatusStopping
	VMStatusStopped
	VMStatusFailed
)

var vmStatusNames = map[VMStatus]string{
	VMStatusCreated:  "created",
	VMStatusStarting: "starting",
	VMStatusRunning:  "running",
	VMStatusStopping: "stopping",
	VMStatusStopped:  "stopped",
	VMStatusFailed:   "failed",
}

var vmTransitions = map[VMStatus][]VMStatus{
	VMStatusCreated:  {VMStatusStarting},
	VMStatusStarting: {VMStatusRunning, VMStatusStopping, VMStatusFailed},
	VMStatusRunning:  {VMStatusStopping, VMStatusFailed},
	VMStatusStopping: {VMStatusStopped, VMStatusFailed},
	VMStatusStopped:  {VMStatusStarting},
	VMStatusFailed:   {VMStatusStarting},
}

func (s VMStatus) String() string {
	if name, ok := vmStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s VMStatus) Valid() bool {
	_, ok := vmStatusNames[s]
	return ok
}

func CanTransition(from, to VMStatus) bool {
	for _, next := range vmTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SourcesFor lists every status from which a VM may move to the target.
func SourcesFor(to VMStatus) []VMStatus {
	var from []VMStatus
	for s := VMStatusCreated; s <= VMStatusFailed; s++ {
		if CanTransition(s, to) {
			from = append(from, s)
		}
	}
	return from
}
