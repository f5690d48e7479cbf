// Package reporting builds the exportable practice reports. Exports are
// labelled pdf, excel or csv to match the file names the front end offers,
// but the payload is always the JSON snapshot; real document rendering never
// made it past the label.
package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/swasthtrack/clinic/internal/domain/dashboard"
	"github.com/swasthtrack/clinic/internal/platform/idgen"
)

// Export formats accepted on the wire.
const (
	FormatPDF   = "pdf"
	FormatExcel = "excel"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

var validFormats = map[string]bool{
	FormatPDF: true, FormatExcel: true, FormatCSV: true, FormatJSON: true,
}

// Report is one generated snapshot.
type Report struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	GeneratedAt string `json:"generated_at"`
	Data        any    `json:"data"`
}

// Builder assembles reports from the dashboard aggregates.
type Builder struct {
	views *dashboard.Service
	ids   *idgen.Generator
	now   func() time.Time
}

func NewBuilder(views *dashboard.Service, ids *idgen.Generator) *Builder {
	return &Builder{views: views, ids: ids, now: time.Now}
}

// PracticeSummary snapshots the practice-wide counters.
func (b *Builder) PracticeSummary(ctx context.Context) (*Report, error) {
	stats, err := b.views.Admin(ctx)
	if err != nil {
		return nil, fmt.Errorf("practice summary: %w", err)
	}
	return b.wrap("Practice Summary", stats), nil
}

// PatientSummary snapshots one patient's view of the store.
func (b *Builder) PatientSummary(ctx context.Context, name string) (*Report, error) {
	view, err := b.views.PatientData(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("patient summary: %w", err)
	}
	return b.wrap(fmt.Sprintf("Patient Summary %s", name), view), nil
}

// DoctorActivity snapshots one doctor's panel.
func (b *Builder) DoctorActivity(ctx context.Context, name string) (*Report, error) {
	view, err := b.views.DoctorData(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("doctor activity: %w", err)
	}
	return b.wrap(fmt.Sprintf("Doctor Activity %s", name), view), nil
}

func (b *Builder) wrap(title string, data any) *Report {
	return &Report{
		ID:          b.ids.Next(idgen.PrefixReport),
		Title:       title,
		GeneratedAt: b.now().Format(time.RFC3339),
		Data:        data,
	}
}

// Export names the artifact and serializes it. The extension follows the
// requested format; the bytes are JSON either way.
func Export(r *Report, format string) (string, []byte, error) {
	if !validFormats[format] {
		return "", nil, fmt.Errorf("invalid export format: %s", format)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("serialize report %s: %w", r.ID, err)
	}
	name := fmt.Sprintf("%s_%s.%s", strings.ReplaceAll(r.Title, " ", "_"), r.ID, extension(format))
	return name, data, nil
}

// The extension is the format label itself, excel included; the payload is
// JSON regardless of label.
func extension(format string) string {
	return format
}

// Save exports the report into dir, creating it if needed, and returns the
// written path.
func Save(r *Report, format, dir string) (string, error) {
	name, data, err := Export(r, format)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
