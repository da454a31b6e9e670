// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

/*
Package source loads the rule table and keeps the published snapshot fresh.

Two modes are supported:

  - Local only (no URL configured): the CSV file is checked on every lookup
    and republished whenever its size or modification time changes. A
    missing file yields an empty rule set.
  - Remote: the CSV is fetched over HTTP through a circuit breaker. A
    snapshot younger than the refresh interval is served as is. When a
    fetch fails the previous snapshot keeps serving and the error is kept
    for the health endpoint; if nothing has been loaded yet the local file
    is published with the source label "local-fallback".

Every published snapshot goes through recommend.Store, so readers never
observe a half-built table and pool. Concurrent refreshes collapse into one
through singleflight, and forced reloads are throttled with a token bucket.

The Refresher also implements suture.Service so the supervisor tree can keep
the snapshot warm in the background.
*/
package source
