// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"os"
	"strings"
)

const (
	DeviceCPU  = "cpu"
	DeviceCUDA = "cuda"
)

// nvidiaDeviceNode exists when the NVIDIA driver exposes at least one GPU.
var nvidiaDeviceNode = "/dev/nvidia0"

// ResolveDevice picks the compute device: an explicit override wins, then a
// visible GPU, then the CPU.
func ResolveDevice(override string) string {
	if d := strings.TrimSpace(override); d != "" {
		return d
	}
	if gpuAvailable() {
		return DeviceCUDA
	}
	return DeviceCPU
}

func gpuAvailable() bool {
	if v, ok := os.LookupEnv("CUDA_VISIBLE_DEVICES"); ok {
		// An empty list or -1 hides every device.
		v = strings.TrimSpace(v)
		return v != "" && v != "-1" && !strings.EqualFold(v, "none")
	}
	_, err := os.Stat(nvidiaDeviceNode)
	return err == nil
}
