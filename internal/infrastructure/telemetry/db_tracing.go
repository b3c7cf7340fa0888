package telemetry

import (
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const startTimeKey = "telemetry:query_start"

// DBTracingConfig holds database tracing configuration.
type DBTracingConfig struct {
	Enabled bool
	// DBName labels spans with the logical database name.
	DBName string
	// LogFullSQL includes bound query variables in spans. Keep this
	// off outside development; purchase orders and supplier rows
	// carry commercial data.
	LogFullSQL bool
	// SlowQueryThreshold marks queries slower than this on the span.
	SlowQueryThreshold time.Duration
}

// DefaultDBTracingConfig returns the production-safe defaults.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:            false,
		DBName:             "supplychain",
		LogFullSQL:         false,
		SlowQueryThreshold: 200 * time.Millisecond,
	}
}

// DBTracing instruments GORM with otelgorm spans plus slow-query and
// error annotations.
type DBTracing struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracing creates the database tracing plugin.
func NewDBTracing(cfg DBTracingConfig, logger *zap.Logger) *DBTracing {
	return &DBTracing{config: cfg, logger: logger}
}

// Register installs the otelgorm plugin and the timing callbacks on
// the given GORM instance. A disabled config registers nothing.
func (t *DBTracing) Register(db *gorm.DB) error {
	if !t.config.Enabled {
		t.logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(t.config.DBName),
	}
	if !t.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := t.registerTimingCallbacks(db); err != nil {
		return err
	}

	t.logger.Info("Database tracing enabled",
		zap.String("db_name", t.config.DBName),
		zap.Bool("log_full_sql", t.config.LogFullSQL),
		zap.Duration("slow_query_threshold", t.config.SlowQueryThreshold),
	)
	return nil
}

func (t *DBTracing) registerTimingCallbacks(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("telemetry:before_create", t.before); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("telemetry:before_query", t.before); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("telemetry:before_update", t.before); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("telemetry:before_delete", t.before); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("telemetry:before_row", t.before); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").Register("telemetry:before_raw", t.before); err != nil {
		return err
	}

	if err := db.Callback().Create().After("gorm:create").Register("telemetry:after_create", t.after); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("telemetry:after_query", t.after); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("telemetry:after_update", t.after); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("telemetry:after_delete", t.after); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("telemetry:after_row", t.after); err != nil {
		return err
	}
	return db.Callback().Raw().After("gorm:raw").Register("telemetry:after_raw", t.after)
}

func (t *DBTracing) before(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

// after annotates the active span with row counts, error status, and a
// slow-query event when the operation exceeded the threshold.
func (t *DBTracing) after(db *gorm.DB) {
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

	// ErrRecordNotFound is a normal repository outcome, not a failure.
	if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if v, ok := db.InstanceGet(startTimeKey); ok {
		if start, ok := v.(time.Time); ok {
			elapsed := time.Since(start)
			if elapsed > t.config.SlowQueryThreshold {
				span.SetAttributes(
					attribute.Bool("db.slow_query", true),
					attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
				)
				span.AddEvent("slow_query", trace.WithAttributes(
					attribute.Int64("duration_ms", elapsed.Milliseconds()),
					attribute.Int64("threshold_ms", t.config.SlowQueryThreshold.Milliseconds()),
				))
			}
		}
	}
}
