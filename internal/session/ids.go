package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
)

// IDs mints session ids and recognizes the ones it minted. An id is a
// random uuid followed by its HMAC, so a client cannot choose its own id and
// minted ids stay valid across restarts and idle eviction.
type IDs struct {
	key []byte
}

func NewIDs(secret string) *IDs {
	return &IDs{key: []byte("storefront-session:" + secret)}
}

func (g *IDs) Mint() string {
	raw := uuid.NewString()

	return raw + "." + g.sign(raw)
}

func (g *IDs) Valid(id string) bool {
	raw, sig, ok := strings.Cut(id, ".")
	if !ok || uuid.Validate(raw) != nil {
		return false
	}

	return hmac.Equal([]byte(sig), []byte(g.sign(raw)))
}

func (g *IDs) sign(raw string) string {
	mac := hmac.New(sha256.New, g.key)
	mac.Write([]byte(raw))

	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
