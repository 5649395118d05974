package simtable

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"go.opentelemetry.io/otel/attribute"

	"github.com/MrWong99/rhymekit/internal/observe"
	"github.com/MrWong99/rhymekit/pkg/phoneme"
)

// ErrLoad wraps every failure to read or parse a table. A table that fails to
// load is never partially usable.
var ErrLoad = errors.New("simtable: load failed")

const defaultDelimiter = ','

// Option configures table loading.
type Option func(*loader)

type loader struct {
	delimiter rune
	metrics   *observe.Metrics
	logger    *slog.Logger
}

// WithDelimiter sets the field delimiter. Default: ','.
func WithDelimiter(r rune) Option {
	return func(l *loader) {
		l.delimiter = r
	}
}

// WithMetrics records load outcomes on m instead of [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(l *loader) {
		l.metrics = m
	}
}

// WithLogger sets the logger that reports successful loads. Default:
// [slog.Default].
func WithLogger(lg *slog.Logger) Option {
	return func(l *loader) {
		l.logger = lg
	}
}

func newLoader(opts []Option) *loader {
	l := &loader{delimiter: defaultDelimiter}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load parses a delimited similarity table from r.
//
// The header row names the W columns (header field count minus one): each
// label is an ARPAbet symbol, [StartLabel] or [EndLabel]. Exactly W data rows
// follow; row r is read from column r onwards and every value is mirrored so
// that the result is symmetric. Empty or omitted trailing cells are
// [Undefined]. Any malformed value or short row aborts the load with an error
// wrapping [ErrLoad].
func Load(r io.Reader, opts ...Option) (*Table, error) {
	return newLoader(opts).parse(r)
}

// LoadFile opens path and parses it with [Load].
func LoadFile(ctx context.Context, path string, opts ...Option) (*Table, error) {
	l := newLoader(opts)
	ctx, span := observe.StartSpan(ctx, "simtable.load")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	t, err := l.parseFile(path)
	m := l.metrics
	if m == nil {
		m = observe.DefaultMetrics()
	}
	if err != nil {
		m.RecordTableLoad(ctx, "error")
		span.RecordError(err)
		return nil, err
	}
	m.RecordTableLoad(ctx, "ok")
	observe.Logger(ctx, l.logger).Info("similarity table loaded", "path", path, "width", t.Width())
	return t, nil
}

// Once returns a function that loads the table at path on its first call and
// returns the same table (or the same error) on every later call. Concurrent
// first calls block until the single load completes.
func Once(path string, opts ...Option) func() (*Table, error) {
	return sync.OnceValues(func() (*Table, error) {
		return LoadFile(context.Background(), path, opts...)
	})
}

func (l *loader) parseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %w", ErrLoad, path, err)
	}
	defer f.Close()
	t, err := l.parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w (file %q)", err, path)
	}
	return t, nil
}

func (l *loader) parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = l.delimiter
	cr.FieldsPerRecord = -1
	// Trimming would swallow empty cells of a whitespace-delimited table.
	cr.TrimLeadingSpace = !unicode.IsSpace(l.delimiter)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrLoad)
	}

	header := records[0]
	width := len(header) - 1
	if width <= 0 {
		return nil, fmt.Errorf("%w: header has no columns", ErrLoad)
	}
	keys, err := resolveColumns(header[1:])
	if err != nil {
		return nil, err
	}

	rows := records[1:]
	if len(rows) != width {
		return nil, fmt.Errorf("%w: header declares %d columns but %d data rows follow", ErrLoad, width, len(rows))
	}

	t := newTable()
	t.width = width
	for r, row := range rows {
		if len(row) < r+2 {
			return nil, fmt.Errorf("%w: row %d (%q) has %d fields, needs at least %d", ErrLoad, r+1, row[0], len(row), r+2)
		}
		if len(row) > width+1 {
			return nil, fmt.Errorf("%w: row %d (%q) has %d fields, header allows %d", ErrLoad, r+1, row[0], len(row), width+1)
		}
		for c := r; c < width; c++ {
			v := Undefined
			if c+1 < len(row) {
				if v, err = parseCell(row[c+1]); err != nil {
					return nil, fmt.Errorf("%w: row %d column %d: %w", ErrLoad, r+1, c+1, err)
				}
			}
			t.set(keys[r], keys[c], v)
		}
	}
	return t, nil
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return Undefined, nil
	}
	return strconv.ParseFloat(cell, 64)
}

// resolveColumns maps header labels to phoneme or boundary keys.
func resolveColumns(labels []string) ([]key, error) {
	keys := make([]key, len(labels))
	seen := make(map[key]int, len(labels))
	for i, raw := range labels {
		label := strings.ToUpper(strings.TrimSpace(raw))
		var k key
		switch label {
		case StartLabel:
			k = key{boundary: Start}
		case EndLabel:
			k = key{boundary: End}
		default:
			p, ok := phoneme.Lookup(label)
			if !ok {
				return nil, fmt.Errorf("%w: header column %d: unknown label %q", ErrLoad, i+1, raw)
			}
			k = key{id: p.ID}
		}
		if prev, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: header column %d: %q duplicates column %d", ErrLoad, i+1, raw, prev+1)
		}
		seen[k] = i
		keys[i] = k
	}
	return keys, nil
}
