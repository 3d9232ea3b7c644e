/*
Package session stores values a visitor carries across requests.

Sessions live in signed cookies by default or in Redis with WithRedis.
The Sessions middleware loads a *Session before a handler runs;
handlers reach it with FromRequest.
*/
package session
