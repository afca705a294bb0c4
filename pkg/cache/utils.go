package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateKey creates a cache key with prefix and ID.
func GenerateKey(prefix string, id string) string {
	return fmt.Sprintf("%s:%s", prefix, id)
}

// GenerateKeyWithParams creates a cache key with multiple parameters. Nil
// pointers and empty strings render as "-" so optional filters stay distinct.
func GenerateKeyWithParams(prefix string, params ...interface{}) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, param := range params {
		b.WriteByte(':')
		switch v := param.(type) {
		case nil:
			b.WriteByte('-')
		case *string:
			if v == nil || *v == "" {
				b.WriteByte('-')
			} else {
				b.WriteString(*v)
			}
		case string:
			if v == "" {
				b.WriteByte('-')
			} else {
				b.WriteString(v)
			}
		default:
			fmt.Fprintf(&b, "%v", v)
		}
	}
	return b.String()
}

// HashKey generates MD5 hash of a key.
func HashKey(key string) string {
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}
