package postquery

import "go.uber.org/zap"

// logger is the package-level diagnostic logger, used only at Debug level
// by parseRoot, on the soft-warning and unclosed-parenthesis paths.
// It defaults to a no-op logger: spec intent is explicit that the core
// never decides what a caller's diagnostics surface looks like (Parse
// returns warnings as data, via Warning), so nothing here is ever required
// for correct operation — it exists purely so a caller debugging why a
// query parsed the way it did can opt in with SetLogger, the same
// package-level injection style the teacher's CLI uses for its own zap
// logger in cmd/root.go.
var logger = zap.NewNop()

// SetLogger installs l as the package-level diagnostic logger. Passing nil
// restores the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop()
		return
	}
	logger = l
}
