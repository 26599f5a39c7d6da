package lib

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNumber generates an order number in the format SM-YYMMDD-XXXX
// where XXXX is a random alphanumeric suffix.
func GenerateOrderNumber() string {
	src := rand.NewSource(time.Now().UnixNano())
	r := rand.New(src)

	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 4

	randomPart := make([]byte, length)
	for i := range randomPart {
		randomPart[i] = chars[r.Intn(len(chars))]
	}

	return fmt.Sprintf("SM-%s-%s", time.Now().Format("060102"), string(randomPart))
}
