// Package history keeps reconciliation runs for review.
//
// A saved report holds the platform reports of one run together with who ran
// it and when. Reviewers move it from OPEN to REVIEWED or RESOLVED and may
// attach a note. Runs requested with save=true are recorded through
// Service.Record, which satisfies fulfillment.Recorder.
//
// # HTTP Endpoints
//
//   - POST /api/history : Saves a report.
//   - GET /api/history : Lists reports newest first (?date, ?status, ?limit).
//   - GET /api/history/:id : Returns one report.
//   - PATCH /api/history/:id : Updates note and status.
//   - DELETE /api/history/:id : Removes a report.
package history
