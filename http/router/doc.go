/*
Package router matches requests to handlers and invokes them.

# Patterns

A [Pattern] like "/hello/{name}" is made of literal segments and placeholders.
A placeholder captures exactly one non-empty path segment.
Matching is case-sensitive, ignores the query string and never matches part of a pattern.

# Table

A [Table] keeps Routes in the order they were registered.
The first Route whose Pattern matches a path wins,
so overlapping patterns like "/books" and "/{id}" resolve by registration order alone.
Registering the same pattern string twice fails with [ErrDuplicateRoute].

# Handlers

A Route dispatches to one of two kinds of [Handler]:

  - a [HandlerFunc], allowed the Methods declared when registering it
  - a [ResourceFunc], building a [Resource] per request whose non-nil operations
    decide the allowed Methods

# Dispatcher

A [Dispatcher] resolves a request to an [Outcome]:
[NotFound] responds 404 "Not found",
[MethodNotAllowed] responds 405 "Method not Allowed",
and [Dispatched] invokes the handler with path parameters available through [req.Request.Param].

A handler failure, a returned error or a recovered panic,
goes to the [ExemptionHandler] if one is set
and is otherwise returned wrapped in [ErrHandlerFailure].
*/
package router
