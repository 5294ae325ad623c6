package service

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/recycle-link/internal/constants"
)

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateTrackingNumber 生成回收单追踪号，如 RLMB3K9F2A1C4
// 前缀 + 毫秒时间戳的 base36 + 5 位随机 base36，时间戳部分保证趋势递增
func generateTrackingNumber() string {
	return constants.TrackingNumberPrefix + timestampBase36() + randBase36(5)
}

// generateRedemptionCode 生成奖励兑换码，如 RWMB3K9F2A1C4X
func generateRedemptionCode() string {
	return constants.RedemptionCodePrefix + timestampBase36() + randBase36(6)
}

func timestampBase36() string {
	millis := time.Now().UnixMilli()
	return strings.ToUpper(strconv.FormatInt(millis, 36))
}

func randBase36(length int) string {
	var b strings.Builder
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b.WriteByte('0')
			continue
		}
		b.WriteByte(base36Alphabet[n.Int64()])
	}
	return b.String()
}
