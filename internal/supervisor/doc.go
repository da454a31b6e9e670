// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

/*
Package supervisor provides process supervision for the FBT server using suture v4.

# Overview

The tree organizes long-running services into three layers:

	RootSupervisor ("fbt")
	├── RulesSupervisor ("rules-layer")
	│   └── rules-refresher
	├── MessagingSupervisor ("messaging-layer")
	│   └── event-bus (FinalService)
	└── APISupervisor ("api-layer")
	    ├── http-server
	    └── stats-reporter

A crash in the refresher leaves the HTTP layer serving the last published
snapshot. Failures are counted per layer and decay over FailureDecay
seconds; past FailureThreshold the layer backs off for FailureBackoff.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddRulesService(refresher)
	tree.AddMessagingService(services.NewFinalService(bus, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, timeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Supervisor events (restarts, backoff, stop timeouts) are logged through
sutureslog, which the server points at the zerolog adapter in
internal/logging.
*/
package supervisor
