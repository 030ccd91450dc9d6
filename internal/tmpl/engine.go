// Package tmpl renders label and annotation templates.
//
// A template mixes literal text with JavaScript expressions between the open
// and close delimiters ("<%=" and "%>" by default). The open delimiter
// without its trailing "=" starts a statement block. Expressions see the
// record variables and a fmtNumber(value, decimals) helper.
package tmpl

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto"
	"github.com/dop251/goja"
	"github.com/vinceanalytics/pdnsview/internal/metrics"
)

// ErrUnclosed is returned for a template whose last block has no close
// delimiter.
var ErrUnclosed = errors.New("tmpl: unclosed template block")

// Record is the data a template is rendered against.
type Record struct {
	Vars map[string]any
	// Series holds the values statistic calls are computed over.
	Series []float64
	// Value is the current value used by the Dif statistic forms.
	Value float64
}

// Var returns a record holding one variable.
func Var(name string, v any) Record {
	return Record{Vars: map[string]any{name: v}}
}

type runtime struct {
	mu    sync.Mutex
	vm    *goja.Runtime
	cache *ristretto.Cache
}

// Engine renders templates. Views created with With share the JavaScript
// runtime and the compiled program cache.
type Engine struct {
	rt       *runtime
	settings Settings
}

// New returns an engine with default settings.
func New() (*Engine, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 12,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Engine{
		rt: &runtime{
			vm:    goja.New(),
			cache: cache,
		},
		settings: DefaultSettings(),
	}, nil
}

// With returns a view of e using s.
func (e *Engine) With(s Settings) *Engine {
	return &Engine{rt: e.rt, settings: s}
}

func (e *Engine) Settings() Settings { return e.settings }

func (e *Engine) Close() {
	e.rt.cache.Close()
}

// Render renders template against rec. Malformed templates return an error.
func (e *Engine) Render(template string, rec Record) (string, error) {
	if !strings.Contains(template, e.statementOpen()) {
		return template, nil
	}
	src := statRefs(template)
	prg, err := e.program(src)
	if err != nil {
		return "", fmt.Errorf("tmpl: compile %q: %w", template, err)
	}
	vars := make(map[string]any, len(rec.Vars)+1)
	for k, v := range rec.Vars {
		vars[k] = v
	}
	s := e.settings
	if src != template {
		bindStats(vars, rec, s.StatsDecimals)
	}
	vars["fmtNumber"] = func(v float64, decimals int) string {
		return s.Format(v, decimals)
	}

	e.rt.mu.Lock()
	defer e.rt.mu.Unlock()
	fv, err := e.rt.vm.RunProgram(prg)
	if err != nil {
		return "", fmt.Errorf("tmpl: %q: %w", template, err)
	}
	fn, ok := goja.AssertFunction(fv)
	if !ok {
		return "", fmt.Errorf("tmpl: %q did not compile to a function", template)
	}
	out, err := fn(goja.Undefined(), e.rt.vm.ToValue(vars))
	if err != nil {
		return "", fmt.Errorf("tmpl: %q: %w", template, err)
	}
	return out.String(), nil
}

// MustRender renders template and returns the raw template on error. It is
// used where a fallback text is better than no text, like legends.
func (e *Engine) MustRender(template string, rec Record) string {
	s, err := e.Render(template, rec)
	if err != nil {
		return template
	}
	return s
}

// Check compiles template without running it.
func (e *Engine) Check(template string) error {
	if !strings.Contains(template, e.statementOpen()) {
		return nil
	}
	_, err := e.program(statRefs(template))
	if err != nil {
		return fmt.Errorf("tmpl: compile %q: %w", template, err)
	}
	return nil
}

func (e *Engine) statementOpen() string {
	o := strings.TrimSuffix(e.settings.Open, "=")
	if o == "" {
		return e.settings.Open
	}
	return o
}

func (e *Engine) program(src string) (*goja.Program, error) {
	key := xxhash.Sum64String(e.settings.Open + "\x00" + e.settings.Close + "\x00" + src)
	if v, ok := e.rt.cache.Get(key); ok {
		metrics.TemplateCache.WithLabelValues("hit").Inc()
		return v.(*goja.Program), nil
	}
	metrics.TemplateCache.WithLabelValues("miss").Inc()
	js, err := e.translate(src)
	if err != nil {
		return nil, err
	}
	prg, err := goja.Compile("template", js, false)
	if err != nil {
		return nil, err
	}
	e.rt.cache.Set(key, prg, 1)
	return prg, nil
}

// translate turns a template into the source of a function taking the
// record object.
func (e *Engine) translate(src string) (string, error) {
	open := e.settings.Open
	stmt := e.statementOpen()
	closeTag := e.settings.Close
	var b strings.Builder
	b.WriteString("(function(obj){var __p=[];with(obj){")
	for len(src) > 0 {
		i := strings.Index(src, stmt)
		if i < 0 {
			literalPush(&b, src)
			break
		}
		if i > 0 {
			literalPush(&b, src[:i])
		}
		src = src[i:]
		expr := strings.HasPrefix(src, open) && open != stmt
		if expr {
			src = src[len(open):]
		} else {
			src = src[len(stmt):]
		}
		j := strings.Index(src, closeTag)
		if j < 0 {
			return "", ErrUnclosed
		}
		code := src[:j]
		src = src[j+len(closeTag):]
		if expr {
			b.WriteString("__p.push((")
			b.WriteString(code)
			b.WriteString("));")
		} else {
			b.WriteString(code)
			b.WriteString("\n;")
		}
	}
	b.WriteString("}return __p.join('');})")
	return b.String(), nil
}

func literalPush(b *strings.Builder, s string) {
	q, _ := json.Marshal(s)
	b.WriteString("__p.push(")
	b.Write(q)
	b.WriteString(");")
}
