// internal/logger/logger.go
//
// Structured JSON logger (Zap + Lumberjack).
//
// Context
// -------
// Roster writes lifecycle, form, and request events to one JSON log per day
// under `<log dir>/YYYY-MM-DD.log`.  With tee enabled the same events are
// also written to stdout in console form.  Rotation, compression, and
// retention are handled by Lumberjack.
//
// Usage
// -----
//
//	log, err := logger.New(cfg.LogDir(), cfg.Log.Tee || runningInTTY())
//	if err != nil { … }
//	log.Infow("form opened", "form", "course")
//
// Controllers never call zap.S(); they receive this logger by injection.
package logger

import (
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var encCfg = zapcore.EncoderConfig{
	TimeKey:      "ts",
	LevelKey:     "level",
	MessageKey:   "msg",
	CallerKey:    "caller",
	EncodeTime:   zapcore.ISO8601TimeEncoder,
	EncodeLevel:  zapcore.LowercaseLevelEncoder,
	EncodeCaller: zapcore.ShortCallerEncoder,
}

// New returns a *zap.SugaredLogger writing JSON into logDir.  When tee is
// true a console core on stdout is attached as well.  The logger is
// installed as the process-wide default via zap.ReplaceGlobals.
func New(logDir string, tee bool) (*zap.SugaredLogger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	fileSink := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, time.Now().Format("2006-01-02")+".log"),
		MaxSize:    50, // MB
		MaxBackups: 7,
		MaxAge:     14, // days
		Compress:   true,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(fileSink), zap.InfoLevel),
	}
	if tee {
		cores = append(cores, Console().Desugar().Core())
	}

	z := zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.ErrorOutput(zapcore.AddSync(fileSink)),
	).Sugar()

	zap.ReplaceGlobals(z.Desugar())

	z.Infow("logger online", "dir", logDir, "tee", tee)
	return z, nil
}

// Console returns a stdout-only logger for boot, before the config (and
// therefore the log directory) is known.
func Console() *zap.SugaredLogger {
	cfg := encCfg
	cfg.EncodeLevel = zapcore.LowercaseColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stdout), zap.InfoLevel)
	return zap.New(core).Sugar()
}
