/*
Package chain owns and inspects chains of activities.

Trajectory is the reference process definition: it owns its nodes, links them in append
order and clones them node by node. The accessor functions (Head, Tail, Count, Clone) work on
any ports.Definition and never mutate it; absence is reported through a boolean rather than
a nil pointer the caller might forget to check.
*/
package chain
