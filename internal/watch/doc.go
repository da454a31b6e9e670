// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

// Package watch runs a callback whenever a set of files changes on disk.
//
// Parent directories are watched rather than the files themselves so that
// editors which save through a rename, and files that do not exist yet,
// are both picked up. Bursts of events are collapsed: the callback runs
// once the files have been quiet for the settle period, and never more
// often than the configured minimum interval.
package watch
