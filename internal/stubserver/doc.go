// Package stubserver is a stand-in inference server for local development
// and integration tests. It accepts the same multipart form as the real
// server and answers with any of the response shapes the client tolerates.
package stubserver
