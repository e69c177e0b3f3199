package entity

import (
	"encoding/json"
	"fmt"
)

// NetworkMode is how a VM obtains its network address. The zero value means
// the VM has no network configuration at all.
type NetworkMode int

const (
	NetworkModeNone NetworkMode = iota
	NetworkModeDHCP
	NetworkModeStaticIP
)

const (
	networkModeNoneString     = "none"
	networkModeDHCPString     = "dhcp"
	networkModeStaticIPString = "static_ip"
)

func ParseNetworkMode(s string) (NetworkMode, error) {
	switch s {
	case networkModeNoneString:
		return NetworkModeNone, nil
	case networkModeDHCPString:
		return NetworkModeDHCP, nil
	case networkModeStaticIPString:
		return NetworkModeStaticIP, nil
	default:
		return NetworkModeNone, &ValidationError{Field: "network_mode", Reason: fmt.Sprintf("unknown network mode %q", s)}
	}
}

func (m NetworkMode) String() string {
	switch m {
	case NetworkModeDHCP:
		return networkModeDHCPString
	case NetworkModeStaticIP:
		return networkModeStaticIPString
	default:
		return networkModeNoneString
	}
}

// Column returns the value stored in vms.network_mode. None is stored as NULL.
func (m NetworkMode) Column() *string {
	if m == NetworkModeNone {
		return nil
	}
	s := m.String()
	return &s
}

func (m NetworkMode) MarshalJSON() ([]byte, error) {
	if m == NetworkModeNone {
		return []byte("null"), nil
	}
	return json.Marshal(m.String())
}

func (m *NetworkMode) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = NetworkModeNone
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &ValidationError{Field: "network_mode", Reason: "must be a string"}
	}

	mode, err := ParseNetworkMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
