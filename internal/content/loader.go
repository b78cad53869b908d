package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"
)

const instrumentationName = "github.com/fyrsmithlabs/socialintel/internal/content"

// maxFileSize bounds a single fixture file.
const maxFileSize = 4 * 1024 * 1024

// extensions are tried in order when resolving a dataset file.
var extensions = []string{".json", ".yaml", ".yml"}

var (
	// ErrNotFound indicates no file exists for a dataset.
	ErrNotFound = errors.New("content not found")

	// ErrTooLarge indicates a fixture file exceeds maxFileSize.
	ErrTooLarge = errors.New("content file too large")
)

// Loader reads fixtures from a directory. It holds no cached data.
type Loader struct {
	dir    string
	tracer trace.Tracer
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithTracerProvider sets the tracer provider used for load spans.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) LoaderOption {
	return func(l *Loader) {
		if tp != nil {
			l.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// NewLoader creates a loader for dir.
func NewLoader(dir string, opts ...LoaderOption) *Loader {
	l := &Loader{
		dir:    dir,
		tracer: otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir returns the content directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Trends loads the trend-monitor dataset.
func (l *Loader) Trends(ctx context.Context) (*Trends, error) {
	var t Trends
	if err := l.load(ctx, DatasetTrends, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Attraction loads the research-insights dataset.
func (l *Loader) Attraction(ctx context.Context) (*AttractionResearch, error) {
	var a AttractionResearch
	if err := l.load(ctx, DatasetAttraction, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Skills loads the communication-tips dataset.
func (l *Loader) Skills(ctx context.Context) (*SocialSkills, error) {
	var s SocialSkills
	if err := l.load(ctx, DatasetSkills, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load decodes dataset d into a fresh record and returns it.
func (l *Loader) Load(ctx context.Context, d Dataset) (interface{}, error) {
	switch d {
	case DatasetTrends:
		return l.Trends(ctx)
	case DatasetAttraction:
		return l.Attraction(ctx)
	case DatasetSkills:
		return l.Skills(ctx)
	default:
		return nil, fmt.Errorf("unknown dataset %q", d)
	}
}

// Validate loads every dataset and reports all failures together.
func (l *Loader) Validate(ctx context.Context) error {
	var errs []error
	for _, d := range Datasets {
		if _, err := l.Load(ctx, d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Resolve returns the path of the file backing d.
func (l *Loader) Resolve(d Dataset) (string, error) {
	for _, ext := range extensions {
		path := filepath.Join(l.dir, string(d)+ext)
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrNotFound, d, l.dir)
}

func (l *Loader) load(ctx context.Context, d Dataset, out interface{}) error {
	_, span := l.tracer.Start(ctx, "content.load")
	defer span.End()
	span.SetAttributes(attribute.String("dataset", string(d)))

	err := l.decode(d, out, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (l *Loader) decode(d Dataset, out interface{}, span trace.Span) error {
	path, err := l.Resolve(d)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("path", path))

	data, err := readFile(path)
	if err != nil {
		return err
	}

	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
	}
	span.SetAttributes(attribute.Int("bytes", len(data)))
	return nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (max %d)", ErrTooLarge, path, info.Size(), maxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
