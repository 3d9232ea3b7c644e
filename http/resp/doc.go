/*
Package resp provides the Response that middleware and handlers populate while handling a request.

A [Response] starts with status 200, an empty header collection and no body.
It carries exactly one of three bodies, each paired with its Content-Type:

  - [Response.SetText]: text/plain
  - [Response.SetHTML]: text/html
  - [Response.SetJSON]: application/json

Once the pipeline finishes, [Response.Send] writes it to the [net/http.ResponseWriter].
*/
package resp
