package google

import (
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/yeyakmania/booking-api/internal/domain/account"
)

const nonceSize = 24

var ErrUnsealable = errors.New("sealed token is corrupt or was sealed with another key")

// Sealer encrypts refresh tokens at rest. The random nonce is prepended to
// the ciphertext.
type Sealer struct {
	key [32]byte
}

var _ account.TokenSealer = (*Sealer)(nil)

func NewSealer(key [32]byte) *Sealer {
	return &Sealer{key: key}
}

func (s *Sealer) Seal(plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &s.key), nil
}

func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrUnsealable
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrUnsealable
	}
	return plain, nil
}
