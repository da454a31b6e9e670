// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package source

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
)

// LoadLocal parses the rule table at path. A missing file is an empty
// table, not an error.
func LoadLocal(path string) (*rules.Table, error) {
	t, err := rules.ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return rules.NewTable(nil, nil), nil
	}
	return t, err
}

// fileStamp identifies one version of the local file.
type fileStamp struct {
	exists  bool
	size    int64
	modTime time.Time
}

func (s fileStamp) same(o fileStamp) bool {
	return s.exists == o.exists && s.size == o.size && s.modTime.Equal(o.modTime)
}

func statFile(path string) fileStamp {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{exists: true, size: info.Size(), modTime: info.ModTime()}
}
