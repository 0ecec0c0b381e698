// Package durationx parses the CLI's timeout strings:
// time.ParseDuration alone can't handle a bare, unit-less number of
// seconds or the inf/infinite/infinity literals for "no limit", so this
// package implements that small grammar directly atop strconv instead of
// wrapping time.ParseDuration.
package durationx
