// Package n8n is a client for the n8n public REST API (/api/v1).
//
// Only the workflow endpoints flowsync needs are covered: list, create,
// get, and update. Requests carry the X-N8N-API-KEY header and are retried
// on transport errors, 429 and 5xx responses through go-retryablehttp.
//
// Failures are classified so callers can react without string matching:
//
//	_, err := client.Get(ctx, id)
//	switch {
//	case errors.Is(err, kerrors.ErrUnauthorized): // bad API key
//	case errors.Is(err, kerrors.ErrNotFound):     // unknown workflow
//	case errors.Is(err, kerrors.ErrTransport):    // network or decode failure
//	}
//
// Workflow documents are kept as Document (a map of raw JSON values) so
// fields the tool does not model are written back to disk unchanged.
package n8n
