package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"recruit-go/internal/config"
	"recruit-go/internal/storage/models"
	"recruit-go/internal/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var mysqlTracer = otel.Tracer("recruit-go/storage/mysql")

// GormTracingPlugin adds OpenTelemetry spans around GORM operations.
type GormTracingPlugin struct {
	tracer   trace.Tracer
	dbName   string
	dbSystem string
}

// Name returns the plugin name.
func (p *GormTracingPlugin) Name() string {
	return "GormOpenTelemetryPlugin"
}

// Initialize registers the GORM callbacks that open and close spans.
func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("otel:before_create", p.before("CREATE")); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("otel:after_create", p.after()); err != nil {
		return err
	}

	if err := cb.Query().Before("gorm:query").Register("otel:before_query", p.before("SELECT")); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("otel:after_query", p.after()); err != nil {
		return err
	}

	if err := cb.Update().Before("gorm:update").Register("otel:before_update", p.before("UPDATE")); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("otel:after_update", p.after()); err != nil {
		return err
	}

	if err := cb.Delete().Before("gorm:delete").Register("otel:before_delete", p.before("DELETE")); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("otel:after_delete", p.after()); err != nil {
		return err
	}

	return nil
}

type gormSpanKey struct{}

func (p *GormTracingPlugin) before(operation string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}

		tableName := db.Statement.Table
		if tableName == "" {
			tableName = "unknown"
		}

		spanName := fmt.Sprintf("%s %s", operation, tableName)
		newCtx, span := p.tracer.Start(ctx, spanName,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("db.system", p.dbSystem),
				attribute.String("db.name", p.dbName),
				attribute.String("db.operation", operation),
				attribute.String("db.sql.table", tableName),
			),
		)

		db.Statement.Context = context.WithValue(newCtx, gormSpanKey{}, span)
	}
}

func (p *GormTracingPlugin) after() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		span, ok := db.Statement.Context.Value(gormSpanKey{}).(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))

		if db.Error != nil {
			if db.Error == gorm.ErrRecordNotFound {
				// Not-found is part of normal business flow, not a failure.
				span.SetAttributes(attribute.String("error.type", "record_not_found"))
				span.SetStatus(codes.Ok, "record not found")
			} else {
				tracing.RecordError(span, db.Error, tracing.ErrorTypeDB)
			}
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}
}

// NewGormTracingPlugin creates a tracing plugin for the named database.
func NewGormTracingPlugin(dbName string) *GormTracingPlugin {
	return &GormTracingPlugin{
		tracer:   mysqlTracer,
		dbName:   dbName,
		dbSystem: "mysql",
	}
}

// MySQL provides the relational record store.
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL connects to MySQL, registers tracing and migrates the schema.
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL config must not be nil")
	}

	var logLevel logger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = logger.Silent
	case 2:
		logLevel = logger.Error
	case 3:
		logLevel = logger.Warn
	case 4:
		logLevel = logger.Info
	default:
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logLevel),
		PrepareStmt:                              true,
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute)

	if err := db.Use(NewGormTracingPlugin(cfg.Database)); err != nil {
		return nil, fmt.Errorf("failed to register tracing plugin: %w", err)
	}

	m := &MySQL{db: db, cfg: cfg}
	if err := m.AutoMigrate(); err != nil {
		if sqlDB, derr := db.DB(); derr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}

	log.Println("connected to MySQL and migrated schema")
	return m, nil
}

// NewMySQLWithDB wraps an existing GORM connection. Used by tests, which run
// the same repository code against an in-memory SQLite database.
func NewMySQLWithDB(db *gorm.DB) *MySQL {
	return &MySQL{db: db}
}

// AutoMigrate migrates all entity tables.
func (m *MySQL) AutoMigrate() error {
	return m.db.AutoMigrate(
		&models.Job{},
		&models.Application{},
		&models.CandidateApplication{},
		&models.Client{},
		&models.Vendor{},
		&models.Resume{},
	)
}

// DB returns the underlying GORM handle.
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close closes the database connection.
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ---- Applications ----

// CreateApplication inserts a new application record.
func (m *MySQL) CreateApplication(ctx context.Context, app *models.Application) error {
	if err := m.db.WithContext(ctx).Create(app).Error; err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// GetApplicationByID fetches one application. Returns
// gorm.ErrRecordNotFound when the id does not exist.
func (m *MySQL) GetApplicationByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := m.db.WithContext(ctx).Where("application_uuid = ?", id).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ListApplications returns all applications, optionally narrowed by job id.
// Any further filtering happens client-side over the full result.
func (m *MySQL) ListApplications(ctx context.Context, jobID string) ([]models.Application, error) {
	var apps []models.Application
	q := m.db.WithContext(ctx).Order("applied_at DESC")
	if jobID != "" {
		q = q.Where("job_id = ?", jobID)
	}
	if err := q.Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// SaveApplication writes the full application record back.
func (m *MySQL) SaveApplication(ctx context.Context, app *models.Application) error {
	if err := m.db.WithContext(ctx).Save(app).Error; err != nil {
		return fmt.Errorf("failed to save application: %w", err)
	}
	return nil
}

// DeleteApplication removes the record. Returns gorm.ErrRecordNotFound when
// nothing was deleted.
func (m *MySQL) DeleteApplication(ctx context.Context, id string) error {
	tx := m.db.WithContext(ctx).Where("application_uuid = ?", id).Delete(&models.Application{})
	if tx.Error != nil {
		return fmt.Errorf("failed to delete application: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ---- Jobs ----

// CreateJob inserts a new job posting.
func (m *MySQL) CreateJob(ctx context.Context, job *models.Job) error {
	if err := m.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// GetJobByID fetches one job posting.
func (m *MySQL) GetJobByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := m.db.WithContext(ctx).Where("job_id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// GetJobsByIDs fetches the given jobs keyed by id. Missing ids are simply
// absent from the result.
func (m *MySQL) GetJobsByIDs(ctx context.Context, ids []string) (map[string]models.Job, error) {
	result := make(map[string]models.Job, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var jobs []models.Job
	if err := m.db.WithContext(ctx).Where("job_id IN ?", ids).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	for _, j := range jobs {
		result[j.JobID] = j
	}
	return result, nil
}

// ListJobs returns all jobs, optionally narrowed by status.
func (m *MySQL) ListJobs(ctx context.Context, status string) ([]models.Job, error) {
	var jobs []models.Job
	q := m.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// SaveJob writes the full job record back.
func (m *MySQL) SaveJob(ctx context.Context, job *models.Job) error {
	if err := m.db.WithContext(ctx).Save(job).Error; err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// DeleteJob removes the posting.
func (m *MySQL) DeleteJob(ctx context.Context, id string) error {
	tx := m.db.WithContext(ctx).Where("job_id = ?", id).Delete(&models.Job{})
	if tx.Error != nil {
		return fmt.Errorf("failed to delete job: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementJobApplications bumps the denormalized applications counter.
// Read-modify-write free; still non-transactional with the application
// insert that triggers it.
func (m *MySQL) IncrementJobApplications(ctx context.Context, jobID string) error {
	tx := m.db.WithContext(ctx).Model(&models.Job{}).
		Where("job_id = ?", jobID).
		UpdateColumn("applications_count", gorm.Expr("applications_count + ?", 1))
	if tx.Error != nil {
		return fmt.Errorf("failed to increment applications count: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ---- Candidate applications ----

// CreateCandidateApplication inserts a new candidate record.
func (m *MySQL) CreateCandidateApplication(ctx context.Context, c *models.CandidateApplication) error {
	if err := m.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to insert candidate application: %w", err)
	}
	return nil
}

// GetCandidateApplicationByID fetches one candidate record.
func (m *MySQL) GetCandidateApplicationByID(ctx context.Context, id string) (*models.CandidateApplication, error) {
	var c models.CandidateApplication
	if err := m.db.WithContext(ctx).Where("candidate_uuid = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCandidateApplications returns all candidate records.
func (m *MySQL) ListCandidateApplications(ctx context.Context) ([]models.CandidateApplication, error) {
	var cs []models.CandidateApplication
	if err := m.db.WithContext(ctx).Order("created_at DESC").Find(&cs).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidate applications: %w", err)
	}
	return cs, nil
}

// SaveCandidateApplication writes the full candidate record back.
func (m *MySQL) SaveCandidateApplication(ctx context.Context, c *models.CandidateApplication) error {
	if err := m.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("failed to save candidate application: %w", err)
	}
	return nil
}

// DeleteCandidateApplication removes the record.
func (m *MySQL) DeleteCandidateApplication(ctx context.Context, id string) error {
	tx := m.db.WithContext(ctx).Where("candidate_uuid = ?", id).Delete(&models.CandidateApplication{})
	if tx.Error != nil {
		return fmt.Errorf("failed to delete candidate application: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ---- Clients ----

// CreateClient inserts a new client.
func (m *MySQL) CreateClient(ctx context.Context, c *models.Client) error {
	if err := m.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

// GetClientByID fetches one client.
func (m *MySQL) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	var c models.Client
	if err := m.db.WithContext(ctx).Where("client_id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListClients returns all clients.
func (m *MySQL) ListClients(ctx context.Context) ([]models.Client, error) {
	var cs []models.Client
	if err := m.db.WithContext(ctx).Order("created_at DESC").Find(&cs).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return cs, nil
}

// SaveClient writes the full client record back.
func (m *MySQL) SaveClient(ctx context.Context, c *models.Client) error {
	if err := m.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

// DeleteClient removes the client.
func (m *MySQL) DeleteClient(ctx context.Context, id string) error {
	tx := m.db.WithContext(ctx).Where("client_id = ?", id).Delete(&models.Client{})
	if tx.Error != nil {
		return fmt.Errorf("failed to delete client: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ---- Vendors ----

// CreateVendor inserts a new vendor.
func (m *MySQL) CreateVendor(ctx context.Context, v *models.Vendor) error {
	if err := m.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to insert vendor: %w", err)
	}
	return nil
}

// GetVendorByID fetches one vendor.
func (m *MySQL) GetVendorByID(ctx context.Context, id string) (*models.Vendor, error) {
	var v models.Vendor
	if err := m.db.WithContext(ctx).Where("vendor_id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVendors returns all vendors.
func (m *MySQL) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	var vs []models.Vendor
	if err := m.db.WithContext(ctx).Order("created_at DESC").Find(&vs).Error; err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vs, nil
}

// SaveVendor writes the full vendor record back.
func (m *MySQL) SaveVendor(ctx context.Context, v *models.Vendor) error {
	if err := m.db.WithContext(ctx).Save(v).Error; err != nil {
		return fmt.Errorf("failed to save vendor: %w", err)
	}
	return nil
}

// DeleteVendor removes the vendor.
func (m *MySQL) DeleteVendor(ctx context.Context, id string) error {
	tx := m.db.WithContext(ctx).Where("vendor_id = ?", id).Delete(&models.Vendor{})
	if tx.Error != nil {
		return fmt.Errorf("failed to delete vendor: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ---- Resumes ----

// CreateResume inserts a résumé metadata record.
func (m *MySQL) CreateResume(ctx context.Context, r *models.Resume) error {
	if err := m.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to insert resume record: %w", err)
	}
	return nil
}

// GetResumeByID fetches one résumé metadata record.
func (m *MySQL) GetResumeByID(ctx context.Context, id string) (*models.Resume, error) {
	var r models.Resume
	if err := m.db.WithContext(ctx).Where("resume_id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}
