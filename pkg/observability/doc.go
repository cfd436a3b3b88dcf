/*
Package observability provides tools for monitoring the tales navigator.

It includes Prometheus metrics and structured-logging lifecycle hooks, plus
Chain for combining any number of hook sets into one.
*/
package observability
