package normative

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alexanderramin/normgate/internal/apperr"
	"github.com/alexanderramin/normgate/internal/config"
	"github.com/alexanderramin/normgate/internal/llm"
	"github.com/alexanderramin/normgate/internal/xstruct"
)

// PropositionExtractor composes the bounded-retry extractor with the Mapper.
type PropositionExtractor struct {
	extractor *xstruct.Extractor
	mapper    Mapper
	maxNorms  int
	enforce   bool
	logger    *zap.Logger
}

// NewPropositionExtractor builds an extractor. cfg.MaxExtractedNorms is
// stated to the model; it is only enforced when cfg.EnforceNormCap is set.
func NewPropositionExtractor(ex *xstruct.Extractor, cfg config.Extraction, logger *zap.Logger) *PropositionExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropositionExtractor{
		extractor: ex,
		maxNorms:  cfg.MaxExtractedNorms,
		enforce:   cfg.EnforceNormCap,
		logger:    logger.Named("propositions"),
	}
}

// ExtractPropositions returns the propositions implied by query.
func (p *PropositionExtractor) ExtractPropositions(ctx context.Context, query string) ([]Proposition, error) {
	res, err := p.Analyse(ctx, query)
	if err != nil {
		return nil, err
	}
	return res.Propositions, nil
}

// Analyse returns the full extraction result, including the statement the
// model echoed back. A reply with no propositions is a mapping error: an
// empty endeavour would otherwise be accepted without any scoring.
func (p *PropositionExtractor) Analyse(ctx context.Context, query string) (*AnalysisResult, error) {
	const op = "normative.Analyse"
	prompt := strings.NewReplacer(
		"{{max_norms}}", strconv.Itoa(p.maxNorms),
		"{{query}}", query,
	).Replace(extractionInstructions)
	messages := []llm.Message{llm.System(extractionSystem), llm.User(prompt)}

	payload, err := p.extractor.Extract(ctx, messages, ExtractionSchema, ExtractionExample)
	if err != nil {
		p.logger.Error("proposition extraction failed", zap.Error(err))
		return nil, err
	}

	res, err := p.mapper.MapAnalysis(payload)
	if err != nil {
		p.logger.Error("proposition mapping failed", zap.Error(err))
		return nil, err
	}

	if len(res.Propositions) == 0 {
		err := apperr.Mapping(op, "implied_propositions", errors.New("no propositions returned"))
		p.logger.Error("proposition extraction returned nothing", zap.Error(err))
		return nil, err
	}

	if n := len(res.Propositions); n > p.maxNorms {
		if p.enforce {
			p.logger.Warn("model exceeded proposition cap, truncating",
				zap.Int("returned", n), zap.Int("cap", p.maxNorms))
			res.Propositions = res.Propositions[:p.maxNorms]
		} else {
			p.logger.Warn("model exceeded advisory proposition cap",
				zap.Int("returned", n), zap.Int("cap", p.maxNorms))
		}
	}
	p.logger.Debug("propositions extracted", zap.Int("count", len(res.Propositions)))
	return res, nil
}
