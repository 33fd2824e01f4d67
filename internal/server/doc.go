// Package server provides HTTP routing, middleware and the server that hosts the local result page.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// [RequestLogger] and [Recover] are the stock middleware.
//
// The [BasicRouter] implementation registers "METHOD path" patterns on an [http.ServeMux].
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Server
//
// [Server] runs until its context is cancelled and then shuts down gracefully. The result page is
// served by the web package; this package only knows about [Health].
package server
