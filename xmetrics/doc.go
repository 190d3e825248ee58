// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xmetrics provides a Prometheus registry that doubles as a go-kit metrics.Provider, and
which can restrict the metrics it exposes to a configured allow-list.

The allow-list only affects what Gather returns.  Every metric is still created and updated
normally, so changing the allow-list never requires changes to instrumented code.
*/
package xmetrics
