/*
Package activities provides concrete steps built on the domain.Activity contract.

Every step embeds domain.Base, resolves its inputs through param.Param on each Run, and keeps
any per-entity state keyed by the entity so that one chain can be shared by many in-flight
entities. Clone copies configuration only; per-entity bookkeeping never crosses chains.

  - Timeout: costs a (possibly dynamic) delay.
  - SetAttribute: writes entity attributes, combining with the current value via a modifier.
  - Log: emits a structured log line for the entity.
  - Rollback: sends the entity back along the chain a bounded number of times.
*/
package activities
