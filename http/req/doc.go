/*
Package req provides the view of an HTTP request that middleware and handlers receive.

A [Request] exposes the method, the decoded path and the path parameters
captured while routing.
Middleware may attach request-scoped values with [Request.WithValue].

Package req also decodes payloads into structs.
It supports JSON-encoded bodies and payloads encoded in query parameters.
In both cases the struct ought to use "json" or "schema" tags to match keys
and "validate" tags to declare the rules the data must meet.
Validation failures are returned as [ValidationErrors],
which unwrap to [switchback.ErrNotValid].
*/
package req
