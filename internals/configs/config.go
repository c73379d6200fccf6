package configs

import (
	"context"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret         string
	JWTTTL            time.Duration
	GoogleClientID    string
	MidtransServerKey string
	MidtransUseProd   bool
	FastTrackPriceIDR int64
	PaymentPendingTTL time.Duration
	AdminAPIKey       string
	AppDebug          bool

	// TrustedProxies: CIDR/IP proxy yang header X-Forwarded-For-nya dipercaya.
	// Kosong → IP klien selalu dari koneksi langsung.
	TrustedProxies []string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Info().Msg("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Info().Msg("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTTTL = time.Duration(GetEnvInt("JWT_TTL_HOURS", 24*7)) * time.Hour
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransUseProd = GetEnvBool("MIDTRANS_USE_PROD", false)
	FastTrackPriceIDR = int64(GetEnvInt("FASTTRACK_PRICE_IDR", 50000))
	PaymentPendingTTL = time.Duration(GetEnvInt("PAYMENT_PENDING_TTL_HOURS", 24)) * time.Hour
	AdminAPIKey = GetEnv("ADMIN_API_KEY")
	AppDebug = GetEnvBool("APP_DEBUG", false)
	TrustedProxies = ParseTrustedProxies(GetEnv("TRUSTED_PROXIES"))

	if JWTSecret == "" {
		log.Error().Msg("❌ JWT_SECRET belum diset!")
	} else {
		log.Info().Msg("✅ JWT_SECRET berhasil dimuat.")
	}
	if MidtransServerKey == "" {
		log.Warn().Msg("⚠️ MIDTRANS_SERVER_KEY belum diset, fast-track payment tidak aktif")
	}
	if GoogleClientID == "" {
		log.Warn().Msg("⚠️ GOOGLE_CLIENT_ID belum diset, login Google ditolak")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return strings.TrimSpace(value)
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// ParseTrustedProxies: "10.0.0.0/8, 173.245.48.0/20, 127.0.0.1" → list valid.
// Entri yang bukan CIDR/IP dibuang (tidak pernah jadi 0.0.0.0/0).
func ParseTrustedProxies(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.Contains(p, "/") {
			if _, _, err := net.ParseCIDR(p); err != nil {
				log.Warn().Str("entry", p).Msg("⚠️ TRUSTED_PROXIES: CIDR tidak valid, dilewati")
				continue
			}
		} else if net.ParseIP(p) == nil {
			log.Warn().Str("entry", p).Msg("⚠️ TRUSTED_PROXIES: IP tidak valid, dilewati")
			continue
		}
		out = append(out, p)
	}
	return out
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if AppDebug {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Info().Msgf(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Warn().Msgf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Error().Msgf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && !isNotFound(err):
		log.Error().Err(err).Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("[SQL]")
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Warn().Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("[SLOW SQL]")
	case l.LogLevel >= gormLogger.Info:
		log.Debug().Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("[QUERY]")
	}
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "record not found")
}
