// Copyright 2025 The Perfprof Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profplot

import (
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
)

// The plotting backend's default text handler is process-wide mutable
// state, like a global rendering preference. textModeMu serializes
// renders that change it so a concurrent render cannot observe, or
// restore, the wrong mode.
var textModeMu sync.Mutex

// setTextMode swaps the default text handler to LaTeX or plain
// rendering and returns a function restoring the previous handler.
// Callers must invoke restore exactly once, normally via defer, so the
// ambient mode survives a failed render.
func setTextMode(useTeX bool) (restore func()) {
	textModeMu.Lock()
	prev := plot.DefaultTextHandler
	if useTeX {
		plot.DefaultTextHandler = text.Latex{DPI: 72}
	} else {
		plot.DefaultTextHandler = text.Plain{Fonts: font.DefaultCache}
	}
	return func() {
		plot.DefaultTextHandler = prev
		textModeMu.Unlock()
	}
}
