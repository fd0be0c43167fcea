package info

import (
	"os"
	"runtime"
)

// NodeInfo identifies the host a snapshot was taken on.
type NodeInfo struct {
	Hostname string
	OS       string
	Arch     string
	Version  string
}

func New() *NodeInfo {
	hostname, _ := os.Hostname()
	return &NodeInfo{
		Hostname: hostname,
		OS:       OS(),
		Arch:     runtime.GOARCH,
		Version:  Version,
	}
}
