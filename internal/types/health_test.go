package types

import (
	"testing"
	"time"
)

func TestHealthState_String(t *testing.T) {
	tests := []struct {
		name  string
		state HealthState
		want  string
	}{
		{name: "healthy", state: HealthStateHealthy, want: "healthy"},
		{name: "degraded", state: HealthStateDegraded, want: "degraded"},
		{name: "unhealthy", state: HealthStateUnhealthy, want: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("HealthState.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewHealthStatus(t *testing.T) {
	before := time.Now()
	status := NewHealthStatus(HealthStateDegraded, "provider latency high")
	after := time.Now()

	if status.State != HealthStateDegraded {
		t.Errorf("NewHealthStatus().State = %v, want %v", status.State, HealthStateDegraded)
	}
	if status.Message != "provider latency high" {
		t.Errorf("NewHealthStatus().Message = %q, want %q", status.Message, "provider latency high")
	}
	if status.CheckedAt.Before(before) || status.CheckedAt.After(after) {
		t.Errorf("NewHealthStatus().CheckedAt = %v, want between %v and %v",
			status.CheckedAt, before, after)
	}
}

func TestHealthStatus_IsHealthy(t *testing.T) {
	tests := []struct {
		name  string
		state HealthState
		want  bool
	}{
		{name: "healthy", state: HealthStateHealthy, want: true},
		{name: "degraded", state: HealthStateDegraded, want: false},
		{name: "unhealthy", state: HealthStateUnhealthy, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := NewHealthStatus(tt.state, "")
			if got := status.IsHealthy(); got != tt.want {
				t.Errorf("HealthStatus.IsHealthy() = %v, want %v", got, tt.want)
			}
		})
	}
}
