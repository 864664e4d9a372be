package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"assetdesk/internal/core/apperror"
	"assetdesk/internal/core/record"
	"assetdesk/internal/domain/export"
	"assetdesk/internal/domain/query"
	"assetdesk/internal/metadata"
	"assetdesk/pkg/logger"
)

var tracer = otel.Tracer("assetdesk/reports")

// Source supplies the raw rows of a report.
type Source interface {
	Fetch(ctx context.Context, def metadata.ReportDef) ([]record.Record, error)
}

// Exporter turns a finished row set into a file or a handoff.
type Exporter interface {
	Export(ctx context.Context, job export.Job) (export.Artifact, export.Result)
}

// Config bounds pagination.
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Page is one page of pipeline output.
type Page struct {
	Rows        []record.Record `json:"rows"`
	Total       int             `json:"total"`
	Page        int             `json:"page"`
	PageSize    int             `json:"pageSize"`
	TotalPages  int             `json:"totalPages"`
	Fingerprint string          `json:"fingerprint"`
}

// Service provides report pages and exports.
type Service struct {
	registry *metadata.Registry
	source   Source
	exporter Exporter
	cfg      Config
	now      func() time.Time
}

// NewService creates a new reports service.
func NewService(registry *metadata.Registry, source Source, exporter Exporter, cfg Config) *Service {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 500
	}
	return &Service{
		registry: registry,
		source:   source,
		exporter: exporter,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Definitions lists every report ordered by name.
func (s *Service) Definitions() []metadata.ReportDef {
	return s.registry.List()
}

// Definition returns the report called name.
func (s *Service) Definition(name string) (metadata.ReportDef, error) {
	def, ok := s.registry.Get(name)
	if !ok {
		return metadata.ReportDef{}, apperror.NewNotFound("report", name)
	}
	return def, nil
}

// Query runs the pipeline and returns the requested page.
func (s *Service) Query(ctx context.Context, name string, p Params) (*Page, error) {
	ctx, span := tracer.Start(ctx, "reports.Query", trace.WithAttributes(attribute.String("report", name)))
	defer span.End()

	def, err := s.Definition(name)
	if err != nil {
		return nil, err
	}

	rows, err := s.load(ctx, def)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return nil, err
	}

	out := Run(rows, def, p, s.now())
	page, size := s.clamp(p.Page(), p.PageSize())
	span.SetAttributes(attribute.Int("rows.total", len(out)), attribute.Int("page", page))

	return paginate(out, page, size, p.Fingerprint()), nil
}

// Export runs the pipeline without pagination and hands every row to the exporter.
// The returned error covers lookup and loading; export failures are in the Result.
func (s *Service) Export(ctx context.Context, name string, kind export.Kind, p Params, sessionID string) (export.Artifact, export.Result, error) {
	ctx, span := tracer.Start(ctx, "reports.Export", trace.WithAttributes(
		attribute.String("report", name),
		attribute.String("kind", string(kind)),
	))
	defer span.End()

	def, err := s.Definition(name)
	if err != nil {
		return export.Artifact{}, export.Result{}, err
	}

	rows, err := s.load(ctx, def)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return export.Artifact{}, export.Result{}, err
	}

	out := Run(rows, def, p, s.now())
	job := export.Job{
		Kind:         kind,
		Records:      out,
		Columns:      def.Columns,
		BaseFilename: strings.ReplaceAll(def.Name, "-", "_"),
		Title:        def.Label,
		ReportType:   def.Name,
		FilterLines:  FilterLines(def, p),
		Filters:      p.State(),
		SessionID:    sessionID,
	}

	art, res := s.exporter.Export(ctx, job)

	log := logger.FromContext(ctx).WithComponent("reports").With(
		"report", name,
		"kind", kind,
		"records", len(out),
		"fingerprint", p.Fingerprint(),
	)
	if res.Success {
		log.Infow("export finished", "filename", res.Filename, "redirect", res.Redirect)
	} else {
		span.SetStatus(codes.Error, res.Error)
		log.Warnw("export failed", "error", res.Error)
	}

	return art, res, nil
}

// ClauseAction names a chain mutation.
type ClauseAction string

const (
	ClauseAppend    ClauseAction = "append"
	ClauseRemove    ClauseAction = "remove"
	ClauseReset     ClauseAction = "reset"
	ClauseNormalize ClauseAction = "normalize"
)

// MutateClauses applies a chain mutation for the report called name.
func (s *Service) MutateClauses(name string, chain query.Chain, action ClauseAction, clause query.Clause, id int) (query.Chain, error) {
	def, err := s.Definition(name)
	if err != nil {
		return nil, err
	}

	switch action {
	case ClauseAppend:
		if clause.Field == "" {
			return nil, apperror.NewValidation("clause field is required")
		}
		return chain.Append(clause), nil
	case ClauseRemove:
		return chain.Remove(id), nil
	case ClauseReset:
		return query.Reset(def), nil
	case ClauseNormalize:
		return chain.Normalize(), nil
	default:
		return nil, apperror.NewValidation(fmt.Sprintf("unknown clause action %q", action)).
			WithDetail("action", action)
	}
}

func (s *Service) load(ctx context.Context, def metadata.ReportDef) ([]record.Record, error) {
	ctx, span := tracer.Start(ctx, "reports.Fetch", trace.WithAttributes(attribute.String("endpoint", def.Endpoint)))
	defer span.End()

	rows, err := s.source.Fetch(ctx, def)
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.NewUpstream("could not load report rows", err).WithDetail("report", def.Name)
	}
	return record.AssignKeys(rows, def.IDField), nil
}

func (s *Service) clamp(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = s.cfg.DefaultPageSize
	}
	if size > s.cfg.MaxPageSize {
		size = s.cfg.MaxPageSize
	}
	return page, size
}

func paginate(rows []record.Record, page, size int, fingerprint string) *Page {
	total := len(rows)
	from := total
	// Pages past the end are empty; the guard keeps (page-1)*size from overflowing.
	if page-1 <= total/size {
		from = min((page-1)*size, total)
	}
	to := min(from+size, total)

	return &Page{
		Rows:        rows[from:to],
		Total:       total,
		Page:        page,
		PageSize:    size,
		TotalPages:  (total + size - 1) / size,
		Fingerprint: fingerprint,
	}
}
