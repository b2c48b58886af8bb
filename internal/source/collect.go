package source

import (
	"context"

	"go.uber.org/zap"

	"github.com/seitarof/gen-vtkwrap/internal/model"
	"github.com/seitarof/gen-vtkwrap/internal/parser"
)

// Collector loads and parses sources one at a time.
type Collector struct {
	loader Loader
	parser parser.Parser
	log    *zap.Logger
}

// NewCollector wires a loader and a parser.
func NewCollector(l Loader, p parser.Parser, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{loader: l, parser: p, log: log}
}

// Collect returns the filters of every source that loads and parses. A source
// that fails contributes nothing and the remaining sources are still read.
func (c *Collector) Collect(ctx context.Context, sources []Source) []model.FilterData {
	filters := []model.FilterData{}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			c.log.Error("collection cancelled", zap.Error(err))
			break
		}
		filters = append(filters, c.collectOne(ctx, src)...)
	}
	return filters
}

func (c *Collector) collectOne(ctx context.Context, src Source) []model.FilterData {
	data, err := c.loader.Load(ctx, src)
	if err != nil {
		c.log.Error("error reading source", zap.String("source", src.Location), zap.Error(err))
		return nil
	}
	if src.Preprocess != nil {
		data = []byte(src.Preprocess(string(data)))
	}

	filters, err := c.parser.Parse(data, parser.Meta{
		Source:   src.Location,
		Category: src.Category,
		Tags:     src.Tags,
	})
	if err != nil {
		c.log.Error("error parsing source", zap.String("source", src.Location), zap.Error(err))
		return nil
	}
	c.log.Debug("parsed source", zap.String("source", src.Location), zap.Int("filters", len(filters)))
	return filters
}
