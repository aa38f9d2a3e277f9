package checkpoint

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

const (
	AddressLength = 32
	DigestLength  = 32
)

// ErrMalformedReference is returned when an address or digest cannot be parsed.
var ErrMalformedReference = errors.New("malformed reference")

// Address is a 32 byte account address or object/package id.
type Address [AddressLength]byte

// ParseAddress accepts hex with or without the 0x prefix. Short forms such as
// 0x2 are left padded with zeros.
func ParseAddress(s string) (Address, error) {
	var addr Address
	h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if h == "" || len(h) > AddressLength*2 {
		return addr, fmt.Errorf("%w: address %q", ErrMalformedReference, s)
	}
	if len(h)%2 == 1 {
		h = "0" + h
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return addr, fmt.Errorf("%w: address %q: %v", ErrMalformedReference, s, err)
	}
	copy(addr[AddressLength-len(b):], b)
	return addr, nil
}

// MustParseAddress panics on malformed input. Intended for constants and tests.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// String returns the canonical form: 0x followed by 64 lowercase hex digits.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Digest identifies a transaction. Its text form is base58.
type Digest [DigestLength]byte

func ParseDigest(s string) (Digest, error) {
	var d Digest
	b, err := base58.Decode(s)
	if err != nil {
		return d, fmt.Errorf("%w: digest %q: %v", ErrMalformedReference, s, err)
	}
	if len(b) != DigestLength {
		return d, fmt.Errorf("%w: digest %q has %d bytes", ErrMalformedReference, s, len(b))
	}
	copy(d[:], b)
	return d, nil
}

func (d Digest) String() string {
	return base58.Encode(d[:])
}

func (d Digest) Bytes() []byte {
	return d[:]
}
