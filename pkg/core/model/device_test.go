// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDevice(t *testing.T) {
	present := filepath.Join(t.TempDir(), "nvidia0")
	if err := os.WriteFile(present, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(t.TempDir(), "nvidia0")

	tests := []struct {
		name     string
		override string
		cudaEnv  *string
		node     string
		want     string
	}{
		{name: "override wins", override: "cuda:1", node: missing, want: "cuda:1"},
		{name: "override trimmed", override: "  cpu ", node: present, want: "cpu"},
		{name: "device node", node: present, want: DeviceCUDA},
		{name: "no gpu", node: missing, want: DeviceCPU},
		{name: "visible devices", cudaEnv: ptr("0,1"), node: missing, want: DeviceCUDA},
		{name: "devices hidden", cudaEnv: ptr(""), node: present, want: DeviceCPU},
		{name: "devices disabled", cudaEnv: ptr("-1"), node: present, want: DeviceCPU},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := nvidiaDeviceNode
			nvidiaDeviceNode = tt.node
			t.Cleanup(func() { nvidiaDeviceNode = old })

			if tt.cudaEnv != nil {
				t.Setenv("CUDA_VISIBLE_DEVICES", *tt.cudaEnv)
			} else {
				t.Setenv("CUDA_VISIBLE_DEVICES", "")
				os.Unsetenv("CUDA_VISIBLE_DEVICES")
			}

			if got := ResolveDevice(tt.override); got != tt.want {
				t.Errorf("ResolveDevice(%q) = %q, want %q", tt.override, got, tt.want)
			}
		})
	}
}

func ptr(s string) *string { return &s }
