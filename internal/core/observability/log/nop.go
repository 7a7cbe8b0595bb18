package log

var _ Log = nopLogger{}

type nopLogger struct{}

// Nop returns a logger that drops everything. It is the default for
// containers constructed without an explicit logger.
func Nop() Log {
	return nopLogger{}
}

func (nopLogger) Debug(string, ...Field) {}
func (nopLogger) Info(string, ...Field)  {}
func (nopLogger) Warn(string, ...Field)  {}
func (nopLogger) Error(string, ...Field) {}

func (n nopLogger) With(...Field) Log { return n }

func (nopLogger) SetLevel(Level)  {}
func (nopLogger) GetLevel() Level { return LevelSilent }
