package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"business_document_generator/charts"
)

// TokenBudget is the max-token allowance per section for each length tier.
type TokenBudget struct {
	Short int
	Long  int
}

// For picks the tier for a length selector value.
func (b TokenBudget) For(length string) int {
	if length == LengthLong {
		return b.Long
	}
	return b.Short
}

// Section is one generated subdivision of the document.
type Section struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Document is the result of one complete generation run.
type Document struct {
	Fields   FieldSet         `json:"fields"`
	Sections []Section        `json:"sections"`
	Charts   []charts.Request `json:"charts"`
	Text     string           `json:"text"`
}

// Assembler 负责按文档类型逐节生成并拼接全文。
type Assembler struct {
	llm         LLMClient
	budget      TokenBudget
	temperature float64
	concurrency int
	logger      *zap.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

func WithTokenBudget(short, long int) Option {
	return func(a *Assembler) { a.budget = TokenBudget{Short: short, Long: long} }
}

func WithTemperature(t float64) Option {
	return func(a *Assembler) { a.temperature = t }
}

// WithConcurrency bounds the number of sections requested at once. 1 keeps
// the calls strictly sequential.
func WithConcurrency(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

func NewAssembler(llm LLMClient, opts ...Option) (*Assembler, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	a := &Assembler{
		llm:         llm,
		budget:      TokenBudget{Short: 900, Long: 2300},
		temperature: 0.7,
		concurrency: 1,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// GenerateSection sends one completion request for section and returns the
// raw model text.
func (a *Assembler) GenerateSection(ctx context.Context, section string, f FieldSet) (string, error) {
	prompt := BuildSectionPrompt(section, f, a.budget.For(f.Length), a.temperature)
	return a.llm.Complete(ctx, prompt)
}

// Assemble generates every section of f.Type in order, substitutes
// placeholders and joins the texts with blank lines. Any failure aborts the
// run and no partial document is returned. Sections may be requested
// concurrently, but results and chart requests always follow section order.
func (a *Assembler) Assemble(ctx context.Context, f FieldSet) (Document, error) {
	f, err := f.Normalize()
	if err != nil {
		return Document{}, err
	}
	if strings.TrimSpace(f.Overview) == "" {
		return Document{}, ErrMissingOverview
	}

	names := f.Type.Sections()
	texts := make([]string, len(names))
	placeholders := PlaceholderContext(f)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			raw, err := a.GenerateSection(gctx, name, f)
			if err != nil {
				return fmt.Errorf("generate %q: %w", name, err)
			}
			text, err := PostProcess(raw, placeholders)
			if err != nil {
				return fmt.Errorf("generate %q: %w", name, err)
			}
			texts[i] = text
			a.logger.Debug("section generated",
				zap.Int("index", i),
				zap.String("section", name),
				zap.Int("chars", len(text)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.logger.Warn("generation aborted", zap.Stringer("type", f.Type), zap.Error(err))
		return Document{}, err
	}

	doc := Document{Fields: f, Sections: make([]Section, 0, len(names))}
	for i, name := range names {
		doc.Sections = append(doc.Sections, Section{Name: name, Text: texts[i]})
		doc.Charts = append(doc.Charts, f.Type.ChartsFor(name)...)
	}
	doc.Text = strings.Join(texts, "\n\n")

	a.logger.Info("document assembled",
		zap.Stringer("type", f.Type),
		zap.Int("sections", len(names)),
		zap.Int("charts", len(doc.Charts)),
		zap.Duration("elapsed", time.Since(start)))
	return doc, nil
}
