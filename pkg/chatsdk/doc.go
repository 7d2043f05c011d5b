// Package chatsdk is the Go client for the Snug chat service.
//
// The package has two layers. SDKClient and Session are thin typed wrappers
// over the HTTP API. Controller sits on top and owns the displayed state of a
// chat client: it runs the login/logout lifecycle, polls snapshots on a fixed
// cadence, merges message history idempotently, and guards every asynchronous
// result against the session it was started under so stale responses can
// never corrupt the state of a newer session.
package chatsdk
