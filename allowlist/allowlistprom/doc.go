// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package allowlistprom adapts an allow-list to Prometheus.  Filtering happens at gather time,
so metrics continue to be recorded normally and only the exposed set is restricted.  Names are
matched against fully-qualified metric family names, e.g. "xmidt_metricfilter_requests".
*/
package allowlistprom
