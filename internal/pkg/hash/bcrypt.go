package hash

import "golang.org/x/crypto/bcrypt"

// Bcrypt appends a server side pepper before hashing. bcrypt only reads the
// first 72 bytes, so passwords are capped at that length upstream.
type Bcrypt struct {
	cost   int
	pepper string
}

// NewBcrypt falls back to bcrypt.DefaultCost when cost is out of range.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost, pepper: pepper}
}

func (h *Bcrypt) Hash(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword(h.peppered(plain), h.cost)
}

func (h *Bcrypt) Verify(hashed, plain string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), h.peppered(plain)) == nil
}

func (h *Bcrypt) peppered(plain string) []byte {
	b := []byte(plain + h.pepper)
	if len(b) > 72 {
		b = b[:72]
	}
	return b
}
