// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

/*
Package supervisor runs Gramgate's long-lived services under suture v4.

	RootSupervisor ("gramgate")
	├── SessionSupervisor ("session-layer")
	│   └── SessionWarmupService (if IG_EAGER_LOGIN)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The warmup service runs once and reports suture.ErrDoNotRestart, so a
rejected credential is logged at startup but does not restart in a loop;
the session manager keeps the failure and every later request sees it.

Supervisor events are written through sutureslog to an slog.Logger backed
by the zerolog logger (logging.NewSlogLogger).
*/
package supervisor
