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

import "gitlab.com/tozd/go/errors"

// 🔁 ModInverse returns the unique inv in [0, m) with (a*inv) mod m == 1.
// It uses the extended Euclidean algorithm, so any modulus greater than one works.
func ModInverse(a, m int) (int, error) {
	if m <= 1 {
		return 0, errors.Errorf("%w: modulus %d must be greater than 1", ErrNoInverse, m)
	}

	oldR, r := mod(a, m), m
	oldS, s := 1, 0
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
	}

	if oldR != 1 {
		return 0, errors.Errorf("%w: gcd(%d, %d) = %d", ErrNoInverse, a, m, oldR)
	}

	return mod(oldS, m), nil
}

// mod is the mathematical modulo: the result is always in [0, m) for m > 0,
// whatever the sign of x.
func mod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}
