package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyVideoPayload returns the key for the cached public video response
func (kb *KeyBuilder) KeyVideoPayload() string {
	return kb.BuildKey(KeyVideoPayload)
}

// KeyCommentRateLimit returns the rate-limit counter key for a hashed IP
func (kb *KeyBuilder) KeyCommentRateLimit(ipHash string) string {
	return kb.BuildKey(fmt.Sprintf(KeyCommentRateLimit, ipHash))
}
