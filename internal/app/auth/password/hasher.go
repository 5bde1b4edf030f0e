package password

import (
	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
)

var DefaultParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher produces argon2id PHC strings; params, salt and version travel inside the digest.
type Hasher struct {
	params    *argon2id.Params
	pepper    string
	dummyHash string
	compare   func(password, hash string) (bool, error)
}

func NewHasher(params *argon2id.Params, pepper string) (*Hasher, error) {
	if params == nil {
		params = DefaultParams
	}
	h := &Hasher{params: params, pepper: pepper, compare: argon2id.ComparePasswordAndHash}

	dummy, err := h.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}
	h.dummyHash = dummy
	return h, nil
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	return argon2id.CreateHash(plaintext+h.pepper, h.params)
}

// Verify reports false for a malformed digest instead of failing.
func (h *Hasher) Verify(digest, plaintext string) bool {
	ok, err := h.compare(plaintext+h.pepper, digest)
	if err != nil {
		return false
	}
	return ok
}

// VerifyDummy spends the same work as Verify for callers with no stored hash.
func (h *Hasher) VerifyDummy(plaintext string) {
	_ = h.Verify(h.dummyHash, plaintext)
}
