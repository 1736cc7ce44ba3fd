package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// GormLoggerConfig tunes how SQL traces reach zap.
type GormLoggerConfig struct {
	SlowThreshold time.Duration
	// LogParams includes bound values in logged SQL. Off by default: user
	// rows carry names and emails.
	LogParams bool
	// ExpectedError marks failures the repository turns into domain
	// outcomes, such as unique index hits. They are logged at debug level.
	ExpectedError func(error) bool
}

func DefaultGormLoggerConfig() *GormLoggerConfig {
	return &GormLoggerConfig{SlowThreshold: 200 * time.Millisecond}
}

// GormLoggerAdapter implements gorm's logger.Interface on the global zap
// logger.
type GormLoggerAdapter struct {
	logLevel logger.LogLevel
	logger   *zap.Logger
	config   *GormLoggerConfig
}

func NewGormLoggerAdapter(logLevel logger.LogLevel) *GormLoggerAdapter {
	return NewGormLoggerAdapterWithConfig(logLevel, DefaultGormLoggerConfig())
}

func NewGormLoggerAdapterWithConfig(logLevel logger.LogLevel, config *GormLoggerConfig) *GormLoggerAdapter {
	if config == nil {
		config = DefaultGormLoggerConfig()
	}
	return &GormLoggerAdapter{
		logLevel: logLevel,
		logger:   With(zap.String("component", "gorm")),
		config:   config,
	}
}

func (l *GormLoggerAdapter) LogMode(logLevel logger.LogLevel) logger.Interface {
	return &GormLoggerAdapter{logLevel: logLevel, logger: l.logger, config: l.config}
}

// ParamsFilter keeps placeholders in traced SQL unless LogParams is set.
func (l *GormLoggerAdapter) ParamsFilter(ctx context.Context, sql string, params ...interface{}) (string, []interface{}) {
	if l.config.LogParams {
		return sql, params
	}
	return sql, nil
}

func (l *GormLoggerAdapter) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= logger.Info {
		FromContext(ctx, l.logger).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= logger.Warn {
		FromContext(ctx, l.logger).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= logger.Error {
		FromContext(ctx, l.logger).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) expected(err error) bool {
	if errors.Is(err, logger.ErrRecordNotFound) {
		return true
	}
	return l.config.ExpectedError != nil && l.config.ExpectedError(err)
}

func (l *GormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.logLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	log := FromContext(ctx, l.logger)
	fields := func(extra ...zap.Field) []zap.Field {
		sql, rows := fc()
		return append([]zap.Field{
			zap.String("sql", sql),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
		}, extra...)
	}

	switch {
	case err != nil && l.expected(err):
		if ce := log.Check(zap.DebugLevel, "Query rejected"); ce != nil {
			ce.Write(fields(zap.Error(err))...)
		}
	case err != nil:
		if l.logLevel >= logger.Error {
			log.Error("Database operation failed", fields(zap.Error(err))...)
		}
	case l.config.SlowThreshold > 0 && elapsed > l.config.SlowThreshold:
		if l.logLevel >= logger.Warn {
			log.Warn("Slow SQL query", fields(zap.Duration("threshold", l.config.SlowThreshold))...)
		}
	case l.logLevel >= logger.Info:
		log.Info("SQL query executed", fields()...)
	}
}
