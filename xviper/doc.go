// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xviper provides the small amount of glue between pflag, viper, and the configuration
structs in this module.
*/
package xviper
