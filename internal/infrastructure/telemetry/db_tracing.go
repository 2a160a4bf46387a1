package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for query-level tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include query variables in spans, dev only
	SlowQueryThresh time.Duration
	DBName          string
}

// DefaultDBTracingConfig returns the secure defaults: variables stripped,
// 200ms slow-query threshold.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:         false,
		LogFullSQL:      false,
		SlowQueryThresh: 200 * time.Millisecond,
		DBName:          "postgresql",
	}
}

// RegisterDBTracing installs the otelgorm plugin on the GORM handle so every
// query produces a child span, plus an after callback that flags slow queries
// and records errors. No-op when tracing is disabled.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(cfg.DBName),
	}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := db.Callback().Create().Before("gorm:create").Register("portal:before_create", markQueryStart); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("portal:before_query", markQueryStart); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("portal:before_update", markQueryStart); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("portal:before_delete", markQueryStart); err != nil {
		return err
	}

	after := slowQueryCallback(cfg.SlowQueryThresh)
	if err := db.Callback().Create().After("gorm:create").Register("portal:after_create", after); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("portal:after_query", after); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("portal:after_update", after); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("portal:after_delete", after); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh))

	return nil
}

// slowQueryCallback annotates the active span with row counts, errors and a
// slow-query event once the statement completes.
func slowQueryCallback(threshold time.Duration) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		span := trace.SpanFromContext(ctx)
		if !span.IsRecording() {
			return
		}

		if db.Statement.RowsAffected >= 0 {
			span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
		}
		if db.Statement.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
		}

		// ErrRecordNotFound is an expected outcome, not a failure.
		if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
			span.SetStatus(codes.Error, db.Error.Error())
			span.RecordError(db.Error)
		}

		if start, ok := ctx.Value(queryStartKey).(time.Time); ok {
			if elapsed := time.Since(start); elapsed > threshold {
				span.AddEvent("slow_query", trace.WithAttributes(
					attribute.Int64("duration_ms", elapsed.Milliseconds()),
					attribute.Int64("threshold_ms", threshold.Milliseconds())))
			}
		}
	}
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey, time.Now())
	}
}

type dbTracingContextKey string

const queryStartKey dbTracingContextKey = "query_start_time"
