package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"
)

const redacted = "[REDACTED]"

// policy decides what happens to a logged value based on its key. Credentials are
// dropped; emails and user ids become a salted digest.
type policy struct {
	enabled bool
	salt    string
	drop    []string
	hash    []string
}

var (
	policyOnce sync.Once
	envPolicy  *policy
)

func defaultPolicy() *policy {
	policyOnce.Do(func() {
		envPolicy = newPolicy(
			!isOff(os.Getenv("LOG_REDACTION_ENABLED")),
			strings.TrimSpace(os.Getenv("LOG_HASH_SALT")),
		)
	})
	return envPolicy
}

func newPolicy(enabled bool, salt string) *policy {
	return &policy{
		enabled: enabled,
		salt:    salt,
		drop:    []string{"password", "token", "secret", "authorization", "cookie"},
		hash:    []string{"email", "user_id"},
	}
}

func isOff(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "false", "no", "off":
		return true
	}
	return false
}

func (p *policy) apply(kv []interface{}) []interface{} {
	if p == nil || !p.enabled || len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		out[i+1] = p.value(strings.ToLower(key), out[i+1])
	}
	return out
}

func (p *policy) value(key string, val interface{}) interface{} {
	if containsAny(key, p.drop) {
		return redacted
	}
	if containsAny(key, p.hash) {
		return p.digest(val)
	}
	if s, ok := val.(string); ok && looksLikeJWT(s) {
		return redacted
	}
	return val
}

func (p *policy) digest(val interface{}) string {
	raw := strings.TrimSpace(fmt.Sprint(val))
	if val == nil || raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(p.salt + strings.ToLower(raw)))
	return "hash:" + hex.EncodeToString(sum[:6])
}

func containsAny(key string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(key, n) {
			return true
		}
	}
	return false
}

func looksLikeJWT(s string) bool {
	parts := strings.Split(s, ".")
	return len(parts) == 3 && len(parts[0]) > 10 && len(parts[1]) > 10
}
