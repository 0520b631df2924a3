// Package services defines shared utilities consumed by the batch runner and
// the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, item positions, and source URLs for
//     logging.
//   - Structured error markers plus the Wrap helper that let the runner tell a
//     download failure apart from an unexpected one.
//
// Use these helpers when wiring new integrations so failure classification and
// log fields stay uniform across the tool.
package services
