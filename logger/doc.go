/*
Package logger provides logging functionality to a switchback app by defining the required behavior in [Logger]
and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
[ColorLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal] produce messages.

Log messages emitted by [ColorLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2022/04/28 15:55:21 [ERROR] app/app.go:143 'handler failed' log_context: {"error":"boom"}

The log context is a JSON-encoded [LogContext].
It carries data inessential to the message proper
but useful for a fuller picture of the application state at the time of logging.

# SentryLogger

When a Sentry DSN is configured, [NewLogger] returns a [SentryLogger]
that also ships any [LogContext.Error] logged at warn level or above.
*/
package logger
