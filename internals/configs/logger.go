package configs

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger menyiapkan global zerolog logger.
// LOG_FORMAT=json → JSON ke stdout, selain itu console writer.
// LOG_FILE diisi → ikut ditulis ke file yang dirotasi lumberjack.
func InitLogger() {
	level, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		out = os.Stdout
	}

	if path := strings.TrimSpace(os.Getenv("LOG_FILE")); path != "" {
		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    GetEnvInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: GetEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAge:     GetEnvInt("LOG_MAX_AGE_DAYS", 14),
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(out, rotator)
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("service", "sponsorku").Logger()
}
