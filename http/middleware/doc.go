/*
Package middleware defines the two kinds of middleware in switchback and a set of basic ones.

A Middleware hooks into requests dispatched through a Stack:
ProcessRequest runs before dispatch in the order Middlewares were added
and ProcessResponse runs after it in reverse order.

	stack := middleware.NewStack(dispatcher.Dispatch)
	stack.Add(middleware.Timing(log))
	stack.Add(middleware.Sessions(store))

The available Middlewares are:
  - Sessions
  - Timing

An Adapter wraps the whole application at the transport level, static files included.

The available Adapters are:
  - CacheControl
  - CORS
  - ForceHTTPS
  - Idempotent
  - InjectIPAddress
  - LogRequest
  - RateLimit
  - ReportPanic
  - RequestID

Due to the amount of configuration required, middleware does not provide a default Adapter chain.
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.ReportPanic(env, log),
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
	}
*/
package middleware
