/*
Package param resolves step parameters that may be fixed or computed at run time.

A Param[T] is bound to exactly one source:

  - Const: a value fixed when the chain is built.
  - Func: a context-free callback returning a dynamically typed value, converted to T.
  - FromEntity: a callback receiving the executing entity and returning T.

Steps call Resolve without caring which source was configured. Nothing is cached: every call
re-evaluates callbacks, so parameters may vary over time or per entity.
*/
package param
