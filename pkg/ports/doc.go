/*
Package ports defines the driven ports (interfaces) for the simchain engine.

These interfaces decouple the core from the structures that own chains and from the
backends that persist monitoring data.

# Key Interfaces

  - Definition: An externally owned process definition (head, tail, length, deep clone).
  - MonitorStore: Persists one ArrivalRecord per entity leaving a trajectory.
*/
package ports
