// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package main

import (
	"bytes"
	"sync"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
