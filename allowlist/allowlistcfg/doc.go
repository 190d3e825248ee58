// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package allowlistcfg builds allowlist.Filter instances from viper configuration.  A typical
configuration looks like:

	metricFilter:
	  names:
	    - "xmidt_metricfilter_requests"
	    - "go_goroutines"

An absent section, or an empty list of names, configures a filter that allows every metric.
*/
package allowlistcfg
