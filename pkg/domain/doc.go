/*
Package domain contains the core contract of the simchain process engine.

It defines the Activity node that every executable step implements, the embeddable Base that
carries the shared attributes and chain links, and the opaque Entity handle that flows through
Run and Remove. This package is kept pure and free of I/O or persistence concerns.

# Key Entities

  - Activity: one executable step of a trajectory. Steps are chained through non-owning
    Next/Prev links; a chain is owned by the process definition that built it.
  - Base: the shared part of every step (name, tag, count, priority and the links).
    Copying a Base never copies its links.
  - Entity: the simulated actor traversing a chain. The core only forwards it.
  - ArrivalRecord: the monitoring row written when an entity leaves a chain.
*/
package domain
