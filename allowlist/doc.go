// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package allowlist provides a name-based allow-list for metrics.  A metric is allowed through
when the allow-list is empty, or when its name is an exact member of the allow-list.

An empty allow-list is not "deny everything".  It means no filtering was configured, and
every metric passes.

Filters are immutable once built and may be shared across goroutines without locking.
Adapters for the Prometheus and go-kit metrics frameworks live in the allowlistprom and
allowlistkit subpackages.
*/
package allowlist
