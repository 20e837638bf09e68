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

var (
	// ErrInvalidKey is returned when a key is non-numeric, out of range, or has no inverse mod 26.
	ErrInvalidKey = errors.Base("invalid key")

	// ErrNoInverse signals that a multiplier has no modular inverse. Keys built with NewKey never
	// trigger it.
	ErrNoInverse = errors.Base("key produced no modular inverse")
)
