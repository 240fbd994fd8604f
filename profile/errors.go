// Copyright 2025 The Perfprof Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profile

import "fmt"

// A ShapeError reports a malformed measurement matrix.
type ShapeError struct {
	// Row is the offending row, or -1 if the error applies to the
	// matrix as a whole.
	Row int
	Msg string
}

func (e *ShapeError) Error() string {
	if e.Row < 0 {
		return "bad matrix shape: " + e.Msg
	}
	return fmt.Sprintf("bad matrix shape: row %d %s", e.Row, e.Msg)
}

// A ConfigError reports an unusable configuration value.
type ConfigError struct {
	// Option names the option the value was supplied for.
	Option string
	Msg    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bad value for %s: %s", e.Option, e.Msg)
}
