// Package integrity hashes and signs the round operation journal.
//
// Each journal entry carries a content hash, a chain hash linking it to the
// previous entry, and an HMAC signature of the chain hash made with a key
// derived per journal from the configured root key.
package integrity
