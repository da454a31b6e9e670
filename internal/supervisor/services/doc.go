// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

/*
Package services provides suture.Service wrappers for FBT server components.

The rules refresher and the event bus already implement Serve and String,
so only components with a different lifecycle need a wrapper here:

  - HTTPServerService drives an *http.Server through ListenAndServe and a
    bounded graceful Shutdown.
  - FinalService wraps a service that cannot be started twice and reports
    its failure as suture.ErrDoNotRestart.
  - StatsService logs engine counters on an interval.
*/
package services
