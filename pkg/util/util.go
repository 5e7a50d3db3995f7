package util

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID 标准 UUID (v4)，用作告警、保留申请主键
func GenerateUUID() string {
	return uuid.NewString()
}

// GenerateChannelID 实时通道标识，形如 ch_<32 位十六进制>
func GenerateChannelID() string {
	return "ch_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
