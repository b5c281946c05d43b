/*
Package host binds step parameters from an external definition layer.

Expressions written in a definition file are compiled once with expr-lang/expr and evaluated
on every call, giving the context-free callbacks of package param. Attribute references become
entity-aware callbacks. Plain values become constants.

An Env is not safe for concurrent use: its random source is shared by every callback compiled
against it. Build one Env per simulation.
*/
package host
