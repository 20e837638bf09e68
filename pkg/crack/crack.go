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

// Package crack recovers affine keys by trying every one of them.
package crack

import (
	"bytes"
	"context"
	"io"
	"math"
	"sort"

	"github.com/rs/zerolog"
	"github.com/walteh/acipher/pkg/affine"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultSampleSize is how much ciphertext is read when Options.SampleSize is zero.
const DefaultSampleSize = 256

// english letter frequencies, a..z, in percent
var english = [affine.AlphabetSize]float64{
	8.167, 1.492, 2.782, 4.253, 12.702, 2.228, 2.015, 6.094, 6.966, 0.153, 0.772, 4.025, 2.406,
	6.749, 7.507, 1.929, 0.095, 5.987, 6.327, 9.056, 2.758, 0.978, 2.360, 0.150, 1.974, 0.074,
}

// 🔧 Options controls a search
type Options struct {
	// Contains keeps only candidates whose plaintext contains this text, case-insensitively
	Contains string
	// Concurrency bounds the number of keys tried at once; zero means 8
	Concurrency int
}

// 🔓 Candidate is one key's decoding of the sample
type Candidate struct {
	Key   affine.Key
	Text  []byte
	Score float64 // chi-squared distance from English; lower is more likely
}

// ReadSample reads at most n bytes from r. n <= 0 uses DefaultSampleSize.
func ReadSample(r io.Reader, n int) ([]byte, error) {
	if n <= 0 {
		n = DefaultSampleSize
	}
	sample, err := io.ReadAll(io.LimitReader(r, int64(n)))
	if err != nil {
		return nil, errors.Errorf("reading sample: %w", err)
	}
	return sample, nil
}

// 🏃 Run decodes sample with every valid key and returns the candidates ordered by score,
// best first. Ties keep key order.
func Run(ctx context.Context, sample []byte, opts Options) ([]Candidate, error) {
	keys := affine.AllKeys()
	results := make([]*Candidate, len(keys))

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 8
	}

	needle := bytes.ToLower([]byte(opts.Contains))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, key := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("trying key %s: %w", key, err)
			}

			text := affine.DecodeBytes(key, sample)
			if len(needle) > 0 && !bytes.Contains(bytes.ToLower(text), needle) {
				return nil
			}

			results[i] = &Candidate{Key: key, Text: text, Score: Score(text)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(results))
	for _, c := range results {
		if c != nil {
			out = append(out, *c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })

	zerolog.Ctx(ctx).Debug().
		Int("keys", len(keys)).
		Int("candidates", len(out)).
		Int("sample_bytes", len(sample)).
		Msg("key search complete")

	return out, nil
}

// Score returns the chi-squared distance between the letter distribution of text and English.
// Text with no letters scores +Inf.
func Score(text []byte) float64 {
	var counts [affine.AlphabetSize]int
	total := 0
	for _, c := range text {
		switch affine.Classify(c) {
		case affine.Upper:
			counts[c-'A']++
			total++
		case affine.Lower:
			counts[c-'a']++
			total++
		}
	}
	if total == 0 {
		return math.Inf(1)
	}

	chi := 0.0
	for i, n := range counts {
		expected := english[i] / 100 * float64(total)
		d := float64(n) - expected
		chi += d * d / expected
	}
	return chi
}
