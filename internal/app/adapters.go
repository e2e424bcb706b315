package app

// LogInjector is an Injector that records every stroke through the logger
// instead of touching the OS. It is the default when no platform injector
// is available, and doubles as a dry-run mode.
type LogInjector struct {
	logger *Logger
}

// NewLogInjector creates a logging injector.
func NewLogInjector(logger *Logger) *LogInjector {
	if logger == nil {
		logger = NullLogger
	}
	return &LogInjector{logger: logger.WithComponent("injector")}
}

// PressKey logs a key-down.
func (li *LogInjector) PressKey(name string) error {
	li.logger.Info("press %s", name)
	return nil
}

// ReleaseKey logs a key-up.
func (li *LogInjector) ReleaseKey(name string) error {
	li.logger.Info("release %s", name)
	return nil
}

// TypeRune logs a character injection.
func (li *LogInjector) TypeRune(r rune) error {
	li.logger.Info("type %q", r)
	return nil
}
