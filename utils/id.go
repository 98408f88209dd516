package utils

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// GenerateID 生成远程记录ID
func GenerateID() string {
	return uuid.New().String()
}

var (
	localIDMu   sync.Mutex
	lastLocalID int64
)

// GenerateLocalID 生成基于毫秒时间戳的本地记录ID
// 同一毫秒内重复调用时递增，保证单进程内严格递增且互不相同
func GenerateLocalID() string {
	localIDMu.Lock()
	defer localIDMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastLocalID {
		now = lastLocalID + 1
	}
	lastLocalID = now
	return strconv.FormatInt(now, 10)
}
