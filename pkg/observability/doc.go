/*
Package observability turns simulator lifecycle hooks into Prometheus metrics and
structured log lines.

Hooks from several sources can be chained with Chain and handed to the simulator.
*/
package observability
