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

package stream

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/acipher/pkg/affine"
	"gitlab.com/tozd/go/errors"
)

// failAfterWriter accepts limit bytes and then fails every write.
type failAfterWriter struct {
	limit int
	buf   bytes.Buffer
}

func (w *failAfterWriter) Write(p []byte) (int, error) {
	if w.buf.Len()+len(p) > w.limit {
		return 0, errors.New("disk full")
	}
	return w.buf.Write(p)
}

func newDriver(t *testing.T, mode affine.Mode, out, log *bytes.Buffer) *Driver {
	t.Helper()
	opts := Options{
		Transformer: affine.NewTransformer(affine.MustKey(5, 8), mode),
		Output:      out,
	}
	if log != nil {
		opts.Log = log
	}
	d, err := New(opts)
	require.NoError(t, err, "creating driver")
	return d
}

func TestNew(t *testing.T) {
	tr := affine.NewTransformer(affine.MustKey(1, 0), affine.Encode)

	_, err := New(Options{Output: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transformer is required")

	_, err = New(Options{Transformer: tr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output is required")

	_, err = New(Options{Transformer: tr, Output: &bytes.Buffer{}})
	require.NoError(t, err)
}

func TestDriver_Run(t *testing.T) {
	tests := []struct {
		name      string
		mode      affine.Mode
		input     string
		want      string
		wantUpper int64
		wantLower int64
		wantOther int64
	}{
		{
			name:      "encode_hello",
			mode:      affine.Encode,
			input:     "Hello, World!",
			want:      "Rclla, Oaplx!",
			wantUpper: 2,
			wantLower: 8,
			wantOther: 3,
		},
		{
			name:      "decode_hello",
			mode:      affine.Decode,
			input:     "Rclla, Oaplx!",
			want:      "Hello, World!",
			wantUpper: 2,
			wantLower: 8,
			wantOther: 3,
		},
		{
			name:  "empty_input",
			mode:  affine.Encode,
			input: "",
			want:  "",
		},
		{
			name:      "multi_chunk",
			mode:      affine.Encode,
			input:     strings.Repeat("H", chunkSize*2+7),
			want:      strings.Repeat("R", chunkSize*2+7),
			wantUpper: chunkSize*2 + 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			log := &bytes.Buffer{}
			d := newDriver(t, tt.mode, out, log)

			res, err := d.Run(context.Background(), strings.NewReader(tt.input))
			require.NoError(t, err)

			assert.Equal(t, tt.want, out.String(), "primary output should match")
			assert.Equal(t, out.Bytes(), log.Bytes(), "log should mirror output byte for byte")
			assert.Equal(t, int64(len(tt.input)), res.Bytes)
			assert.Equal(t, tt.wantUpper, res.Upper)
			assert.Equal(t, tt.wantLower, res.Lower)
			assert.Equal(t, tt.wantOther, res.Other)
			assert.False(t, res.LogFailed)
		})
	}
}

func TestDriver_OneByteReader(t *testing.T) {
	out := &bytes.Buffer{}
	d := newDriver(t, affine.Encode, out, nil)

	res, err := d.Run(context.Background(), iotest.OneByteReader(strings.NewReader("Hello, World!")))
	require.NoError(t, err)
	assert.Equal(t, "Rclla, Oaplx!", out.String())
	assert.Equal(t, int64(13), res.Bytes)
}

func TestDriver_LogFailureIsNotFatal(t *testing.T) {
	out := &bytes.Buffer{}
	log := &failAfterWriter{limit: 5}
	var logErrs []error

	d, err := New(Options{
		Transformer: affine.NewTransformer(affine.MustKey(5, 8), affine.Encode),
		Output:      out,
		Log:         log,
		OnLogError:  func(err error) { logErrs = append(logErrs, err) },
	})
	require.NoError(t, err)

	input := "Hello, World!"
	res, err := d.Run(context.Background(), iotest.OneByteReader(strings.NewReader(input)))
	require.NoError(t, err, "log failure should not fail the run")

	assert.Equal(t, "Rclla, Oaplx!", out.String(), "primary output should be complete")
	assert.Equal(t, "Rclla", log.buf.String(), "log should hold what was written before the failure")
	assert.True(t, res.LogFailed)
	require.Len(t, logErrs, 1, "log error should be reported exactly once")
	assert.Contains(t, logErrs[0].Error(), "disk full")
}

func TestDriver_OutputFailureIsFatal(t *testing.T) {
	d, err := New(Options{
		Transformer: affine.NewTransformer(affine.MustKey(5, 8), affine.Encode),
		Output:      &failAfterWriter{limit: 0},
	})
	require.NoError(t, err)

	_, err = d.Run(context.Background(), strings.NewReader("abc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing output")
}

func TestDriver_ReadError(t *testing.T) {
	out := &bytes.Buffer{}
	d := newDriver(t, affine.Encode, out, nil)

	_, err := d.Run(context.Background(), iotest.ErrReader(errors.New("device gone")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading input")
	assert.Contains(t, err.Error(), "device gone")
}

func TestDriver_ContextCancelled(t *testing.T) {
	out := &bytes.Buffer{}
	d := newDriver(t, affine.Encode, out, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Run(ctx, strings.NewReader("abc"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, out.String())
}

func TestDriver_RoundTrip(t *testing.T) {
	input := "The Quick Brown Fox Jumps Over The Lazy Dog.\n1234567890 ~!@#$%^&*()\n"

	enc := &bytes.Buffer{}
	_, err := newDriver(t, affine.Encode, enc, nil).Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.NotEqual(t, input, enc.String())

	dec := &bytes.Buffer{}
	_, err = newDriver(t, affine.Decode, dec, nil).Run(context.Background(), bytes.NewReader(enc.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, input, dec.String())
}
