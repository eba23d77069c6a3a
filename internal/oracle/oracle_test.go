package oracle

import "testing"

func TestSelectDevice(t *testing.T) {
	discrete := Device{Name: "NVIDIA GeForce RTX 3080", Type: DeviceTypeDiscrete, Available: true}
	integrated := Device{Name: "Intel UHD Graphics 770", Type: DeviceTypeIntegrated, Available: true}
	cpu := Device{Name: "llvmpipe", Type: DeviceTypeCPU, Available: true}
	unavailable := Device{Name: "AMD Radeon RX 6800", Type: DeviceTypeDiscrete, Available: false}

	tests := []struct {
		name       string
		devices    []Device
		preference string
		want       string
	}{
		{
			name:       "auto prefers discrete",
			devices:    []Device{integrated, discrete, cpu},
			preference: "auto",
			want:       discrete.Name,
		},
		{
			name:       "auto falls back to integrated",
			devices:    []Device{cpu, integrated},
			preference: "auto",
			want:       integrated.Name,
		},
		{
			name:       "auto falls back to any available",
			devices:    []Device{unavailable, cpu},
			preference: "auto",
			want:       cpu.Name,
		},
		{
			name:       "empty preference means auto",
			devices:    []Device{integrated, discrete},
			preference: "",
			want:       discrete.Name,
		},
		{
			name:       "preferred name matches case-insensitively",
			devices:    []Device{discrete, integrated},
			preference: "intel uhd",
			want:       integrated.Name,
		},
		{
			name:       "unavailable preferred device falls back to auto",
			devices:    []Device{unavailable, integrated},
			preference: "radeon",
			want:       integrated.Name,
		},
		{
			name:       "unknown preference falls back to auto",
			devices:    []Device{integrated, discrete},
			preference: "no-such-gpu",
			want:       discrete.Name,
		},
		{
			name:       "nothing available uses first device",
			devices:    []Device{unavailable},
			preference: "auto",
			want:       unavailable.Name,
		},
		{
			name:       "no devices yields the zero device",
			devices:    nil,
			preference: "auto",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectDevice(tt.devices, tt.preference)
			if got.Name != tt.want {
				t.Errorf("SelectDevice() = %q, want %q", got.Name, tt.want)
			}
		})
	}
}
