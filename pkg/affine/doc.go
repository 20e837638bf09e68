/*
Package affine implements the affine substitution cipher over the 26-letter Latin alphabet.

	cipher(x)   = (a*x + b)      mod 26
	decipher(y) = a⁻¹ * (y - b)  mod 26

🎯 Purpose:
- Validate key pairs (a, b) so that every accepted key is invertible
- Resolve the multiplicative inverse a⁻¹ needed for decoding
- Map single bytes under a key and a mode, preserving case

🔤 Character classes:
- Upper ('A'-'Z') and Lower ('a'-'z') are transformed inside their own range
- Everything else is returned as-is

🔑 Key space:
Only the 12 multipliers coprime with 26 are accepted, giving 12*26 = 312 keys. The pair (1, 0)
is the neutral key; it is valid but leaves the input unchanged. This cipher is trivially
brute-forced and is not meant to protect anything.

Everything in this package is pure: no I/O, no shared state. Streaming lives in package stream.
*/
package affine
