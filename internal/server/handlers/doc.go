// Package handlers contains the HTTP handlers of the plenar APIs.
//
// This package provides handlers for:
//   - the NLP API: speech extraction, text, tone and topic analysis, speaker
//     profiles and party comparisons over posted speeches
//   - the Wrapped API: read-only access to a loaded web export
//   - the rendered API reference pages
//   - shared response helper functions
//
// All handlers report failures as classified errors from foundation/errors;
// the HTTPErrorAdapter turns them into the shared error body
// {success: false, error, detail}.
package handlers
