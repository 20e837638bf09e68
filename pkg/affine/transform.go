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

// 🔀 Mode selects the direction of the transform.
type Mode int

const (
	Encode Mode = iota
	Decode
)

// String returns a string representation of Mode
func (m Mode) String() string {
	switch m {
	case Encode:
		return "encode"
	case Decode:
		return "decode"
	default:
		return "unknown"
	}
}

// 🔤 Class is the character class of a single byte.
type Class int

const (
	Other Class = iota
	Upper
	Lower
)

// String returns a string representation of Class
func (c Class) String() string {
	switch c {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	default:
		return "other"
	}
}

// Classify returns the class of c. Only ASCII Latin letters are Upper or Lower.
func Classify(c byte) Class {
	switch {
	case c >= 'A' && c <= 'Z':
		return Upper
	case c >= 'a' && c <= 'z':
		return Lower
	default:
		return Other
	}
}

func base(cl Class) int {
	if cl == Upper {
		return 'A'
	}
	return 'a'
}

// EncodeByte maps c to ((c - base) * a + b) mod 26 + base. Other bytes are returned unchanged.
func (k Key) EncodeByte(c byte) byte {
	cl := Classify(c)
	if cl == Other {
		return c
	}
	x := int(c) - base(cl)
	return byte(mod(x*k.a+k.b, AlphabetSize) + base(cl))
}

// DecodeByte maps c to ((c - base - b) * a⁻¹) mod 26 + base. Other bytes are returned unchanged.
func (k Key) DecodeByte(c byte) byte {
	cl := Classify(c)
	if cl == Other {
		return c
	}
	y := int(c) - base(cl)
	return byte(mod((y-k.b)*k.Inverse(), AlphabetSize) + base(cl))
}

// Apply transforms c in the given mode.
func (k Key) Apply(m Mode, c byte) byte {
	if m == Decode {
		return k.DecodeByte(c)
	}
	return k.EncodeByte(c)
}

// ⚙️ Transformer applies one key in one mode. The substitution table is built once,
// so each byte costs a single lookup.
type Transformer struct {
	key   Key
	mode  Mode
	table [256]byte
}

// 🏭 NewTransformer creates a transformer for key and mode.
func NewTransformer(key Key, mode Mode) *Transformer {
	t := &Transformer{key: key, mode: mode}
	for i := range t.table {
		t.table[i] = key.Apply(mode, byte(i))
	}
	return t
}

// Key returns the key the transformer was built with.
func (t *Transformer) Key() Key { return t.key }

// Mode returns the transform direction.
func (t *Transformer) Mode() Mode { return t.mode }

// TransformByte maps a single byte.
func (t *Transformer) TransformByte(c byte) byte {
	return t.table[c]
}

// Transform writes the mapping of src into dst and returns the number of bytes written,
// which is min(len(dst), len(src)). dst and src may be the same slice.
func (t *Transformer) Transform(dst, src []byte) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = t.table[src[i]]
	}
	return n
}

// TransformString maps every byte of s.
func (t *Transformer) TransformString(s string) string {
	out := []byte(s)
	t.Transform(out, out)
	return string(out)
}

// EncodeBytes returns a newly allocated encoding of src under key.
func EncodeBytes(key Key, src []byte) []byte {
	out := make([]byte, len(src))
	NewTransformer(key, Encode).Transform(out, src)
	return out
}

// DecodeBytes returns a newly allocated decoding of src under key.
func DecodeBytes(key Key, src []byte) []byte {
	out := make([]byte, len(src))
	NewTransformer(key, Decode).Transform(out, src)
	return out
}
