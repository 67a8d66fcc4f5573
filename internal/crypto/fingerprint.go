package crypto

import "fmt"

// KeyID returns the scoped key identifier "<timestamp>-<base64url(fp)>".
func KeyID(timestamp int64, fp []byte) string {
	return fmt.Sprintf("%d-%s", timestamp, B64URL(fp))
}
