// Package log provides named loggers for seek's services.
//
// Every line carries a `[name>]` marker so output from the index loader,
// the web server and the websocket hub can be told apart:
//
//	l := log.ForService("index")
//	l.Infof("loaded %d documents from %s", n, src)
//	l.Debugf("keys: %v", keys) // only with --debug or EnableDebugFor("index")
//
// Debug output can be enabled for everything (SetGlobalDebug) or for a
// single service (EnableDebugFor). SetOutput redirects every logger, which
// is what tests use to capture lines in a bytes.Buffer.
//
// The package name collides with the standard library's log. Files that need
// both import the standard one as stdlog.
package log
