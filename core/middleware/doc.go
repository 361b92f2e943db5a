// Package middleware groups the Fiber middleware registered by the start
// command.
//
//   - rayid: tags each request with an X-Ray-ID (incoming or generated) and
//     stores it in Locals for logger.WithRayID.
//   - auth: checks the X-API-Key header, or a Bearer token, against the
//     configured key. Path prefixes such as /health stay public.
//
// Order matters: rayid runs first so rejected requests are still traceable.
package middleware
