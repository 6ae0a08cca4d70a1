// Package metrics records multiplication runs in a Prometheus registry and
// exports it as a node_exporter textfile. It also samples Go runtime memory
// statistics so that a run's allocation footprint can be reported.
package metrics
