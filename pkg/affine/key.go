// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package affine

import (
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// AlphabetSize is the number of letters in each case range.
const AlphabetSize = 26

// 🔑 Key is a validated affine key pair. The zero value is not a valid key; use NewKey or ParseKey.
type Key struct {
	a   int
	b   int
	inv int
}

// 🏭 NewKey validates the multiplier a and normalizes the shift b into [0, 26).
func NewKey(a, b int64) (Key, error) {
	if a < 1 || a >= AlphabetSize || a%2 == 0 || a == 13 {
		return Key{}, errors.Errorf("%w: first key %d is not coprime with %d or out of range (must be odd, 1-25, not 13)", ErrInvalidKey, a, AlphabetSize)
	}

	inv, err := ModInverse(int(a), AlphabetSize)
	if err != nil {
		// a passed the range checks above, so this is a defect in those checks
		return Key{}, errors.Errorf("resolving inverse of %d: %w", a, err)
	}

	return Key{
		a:   int(a),
		b:   mod(int(b%AlphabetSize), AlphabetSize),
		inv: inv,
	}, nil
}

// 📝 ParseKey parses both keys as base-10 integers and validates them with NewKey.
func ParseKey(aRaw, bRaw string) (Key, error) {
	a, err := strconv.ParseInt(strings.TrimSpace(aRaw), 10, 64)
	if err != nil {
		return Key{}, errors.Errorf("%w: first key %q is too long or not in base 10", ErrInvalidKey, aRaw)
	}

	b, err := strconv.ParseInt(strings.TrimSpace(bRaw), 10, 64)
	if err != nil {
		return Key{}, errors.Errorf("%w: second key %q is too long or not in base 10", ErrInvalidKey, bRaw)
	}

	return NewKey(a, b)
}

// MustKey is NewKey for constants and tests. It panics on invalid input.
func MustKey(a, b int64) Key {
	k, err := NewKey(a, b)
	if err != nil {
		panic(err)
	}
	return k
}

// A returns the multiplicative key.
func (k Key) A() int { return k.a }

// B returns the additive key, already reduced mod 26.
func (k Key) B() int { return k.b }

// Inverse returns a⁻¹ mod 26.
func (k Key) Inverse() int {
	if k.a == 0 {
		panic("affine: use of zero Key")
	}
	return k.inv
}

// IsNeutral reports whether the key is (1, 0), which maps every letter to itself.
func (k Key) IsNeutral() bool {
	return k.a == 1 && k.b == 0
}

func (k Key) String() string {
	return fmt.Sprintf("(%d, %d)", k.a, k.b)
}

// ValidMultipliers returns every accepted value of a in ascending order.
func ValidMultipliers() []int {
	out := make([]int, 0, 12)
	for a := 1; a < AlphabetSize; a++ {
		if _, err := ModInverse(a, AlphabetSize); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// AllKeys returns the full key space, ordered by a then b.
func AllKeys() []Key {
	mults := ValidMultipliers()
	keys := make([]Key, 0, len(mults)*AlphabetSize)
	for _, a := range mults {
		for b := 0; b < AlphabetSize; b++ {
			keys = append(keys, MustKey(int64(a), int64(b)))
		}
	}
	return keys
}
