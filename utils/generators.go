package utils

import (
	"math/rand"
	"time"
)

// GenerateCode generates a random trip code
func GenerateCode() string {
	rand.Seed(time.Now().UnixNano())

	result := make([]byte, CodeLength)
	for i := range result {
		result[i] = CodeCharset[rand.Intn(len(CodeCharset))]
	}
	return string(result)
}
