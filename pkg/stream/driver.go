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

// Package stream drives an affine transform over a byte stream, mirroring the output
// into an optional log sink.
package stream

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/acipher/pkg/affine"
	"gitlab.com/tozd/go/errors"
)

// chunkSize bounds how much input is held in memory at once.
const chunkSize = 4096

// 🔧 Options contains configuration for the driver
type Options struct {
	// Transformer maps each input byte; required
	Transformer *affine.Transformer
	// Output receives every transformed byte; required
	Output io.Writer
	// Log optionally receives a copy of Output
	Log io.Writer
	// OnLogError is called once, with the first error returned by Log.
	// After that the log sink is dropped and the run continues.
	OnLogError func(error)
}

// 📊 Result summarises a finished run
type Result struct {
	Bytes     int64 // total bytes read and written
	Upper     int64 // uppercase letters transformed
	Lower     int64 // lowercase letters transformed
	Other     int64 // bytes passed through unchanged
	LogFailed bool  // whether the log sink was dropped after a write error
}

// 🏃 Driver pulls bytes from a reader, transforms them and pushes them to the sinks.
type Driver struct {
	tr         *affine.Transformer
	out        io.Writer
	log        io.Writer
	onLogError func(error)
}

// 🏭 New creates a driver with the given options
func New(opts Options) (*Driver, error) {
	if opts.Transformer == nil {
		return nil, errors.Errorf("transformer is required")
	}
	if opts.Output == nil {
		return nil, errors.Errorf("output is required")
	}
	return &Driver{
		tr:         opts.Transformer,
		out:        opts.Output,
		log:        opts.Log,
		onLogError: opts.OnLogError,
	}, nil
}

// 🏃 Run consumes r until EOF. Output preserves input order and length exactly.
// A failing primary output aborts the run; a failing log sink does not.
func (d *Driver) Run(ctx context.Context, r io.Reader) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	res := &Result{}
	logSink := d.log
	buf := make([]byte, chunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return res, errors.Errorf("stream interrupted: %w", err)
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			res.count(chunk)
			d.tr.Transform(chunk, chunk)

			if _, err := d.out.Write(chunk); err != nil {
				return res, errors.Errorf("writing output: %w", err)
			}
			res.Bytes += int64(n)

			if logSink != nil {
				if _, err := logSink.Write(chunk); err != nil {
					logSink = nil
					res.LogFailed = true
					logger.Warn().Err(err).Int64("offset", res.Bytes).Msg("log sink dropped")
					if d.onLogError != nil {
						d.onLogError(err)
					}
				}
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return res, errors.Errorf("reading input: %w", readErr)
		}
	}

	logger.Debug().
		Str("mode", d.tr.Mode().String()).
		Str("key", d.tr.Key().String()).
		Int64("bytes", res.Bytes).
		Int64("upper", res.Upper).
		Int64("lower", res.Lower).
		Int64("other", res.Other).
		Bool("log_failed", res.LogFailed).
		Msg("stream complete")

	return res, nil
}

func (r *Result) count(chunk []byte) {
	for _, c := range chunk {
		switch affine.Classify(c) {
		case affine.Upper:
			r.Upper++
		case affine.Lower:
			r.Lower++
		default:
			r.Other++
		}
	}
}
