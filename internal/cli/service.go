package cli

import "github.com/alanz/liquidfix/internal/app"

// newAppService constructs the app.Service every subcommand drives a solve
// through. It takes no arguments today — app.Service currently carries no
// shared collaborator state of its own, unlike the teacher's NewService,
// which wires several adapters up front — but keeping it as a named factory
// (rather than calling app.NewService() directly at each call site) leaves
// room for that to grow without touching every subcommand.
func newAppService() app.Service {
	return app.NewService()
}
