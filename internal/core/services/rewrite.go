package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/webidl-updater/internal/catalog"
	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driven"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driving"
	"github.com/custodia-labs/webidl-updater/internal/logger"
	"github.com/custodia-labs/webidl-updater/internal/patch"
	"github.com/custodia-labs/webidl-updater/internal/splice"
)

// Ensure RewriteService implements the interface.
var _ driving.RewriteService = (*RewriteService)(nil)

// RewriteService fetches spec sources, corrects their Web IDL and writes
// the corrected documents back with their original formatting.
type RewriteService struct {
	catalog   driven.SourceCatalog
	fetcher   driven.Fetcher
	extractor driven.BlockExtractor
	engine    driven.GrammarEngine
	reports   driven.ReportStore
	settings  domain.Settings
}

// NewRewriteService creates a new rewrite service.
func NewRewriteService(
	catalog driven.SourceCatalog,
	fetcher driven.Fetcher,
	extractor driven.BlockExtractor,
	engine driven.GrammarEngine,
	reports driven.ReportStore,
	settings domain.Settings,
) *RewriteService {
	return &RewriteService{
		catalog:   catalog,
		fetcher:   fetcher,
		extractor: extractor,
		engine:    engine,
		reports:   reports,
		settings:  settings,
	}
}

// parsedDocument is a document whose blocks all parsed.
type parsedDocument struct {
	doc        domain.Document
	extraction domain.Extraction
	units      []driven.GrammarUnit
}

// Rewrite runs the pipeline over the selected specs.
func (s *RewriteService) Rewrite(ctx context.Context, opts driving.RewriteOptions) (*domain.RunSummary, error) {
	sources, err := s.targets(ctx, opts.ShortNames)
	if err != nil {
		return nil, err
	}
	if err := s.reports.Reset(ctx); err != nil {
		return nil, fmt.Errorf("reset output: %w", err)
	}

	summary := &domain.RunSummary{RunID: uuid.NewString()}
	docs, fetchErrs := s.fetchAll(ctx, sources)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Extraction and parsing run one document at a time.
	var parsed []*parsedDocument
	for i, source := range sources {
		if fetchErrs[i] != nil {
			logger.Error("%s: %v", source.ShortName, fetchErrs[i])
			summary.Documents = append(summary.Documents, domain.DocumentOutcome{
				ShortName: source.ShortName,
				Outcome:   domain.OutcomeFetchFailed,
				Err:       fetchErrs[i],
			})
			continue
		}

		p, outcome, err := s.parse(ctx, docs[i], summary.RunID)
		if err != nil {
			return nil, err
		}
		if outcome != nil {
			summary.Documents = append(summary.Documents, *outcome)
			continue
		}
		parsed = append(parsed, p)
	}

	validations := s.validate(parsed)

	for _, p := range parsed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcome, err := s.write(ctx, p, validations[p.doc.ShortName], summary.RunID, opts.NoDiff || s.settings.NoDiff)
		if err != nil {
			return nil, err
		}
		summary.Documents = append(summary.Documents, outcome)
	}

	return summary, nil
}

// targets returns the selected catalog entries that are not known to be broken.
func (s *RewriteService) targets(ctx context.Context, names []string) ([]domain.SpecSource, error) {
	all, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	selected, err := catalog.Select(all, names)
	if err != nil {
		return nil, err
	}

	targets := make([]domain.SpecSource, 0, len(selected))
	for _, source := range selected {
		if s.settings.IsBroken(source.URL) {
			logger.Debug("Skipping broken spec %s", source.URL)
			continue
		}
		targets = append(targets, source)
	}
	return targets, nil
}

// fetchAll fetches every source concurrently. A failed fetch only affects
// its own document.
func (s *RewriteService) fetchAll(ctx context.Context, sources []domain.SpecSource) ([]domain.Document, []error) {
	docs := make([]domain.Document, len(sources))
	errs := make([]error, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	if s.settings.FetchConcurrency > 0 {
		g.SetLimit(s.settings.FetchConcurrency)
	}
	for i, source := range sources {
		g.Go(func() error {
			logger.Debug("Fetching %s from %s", source.ShortName, source.FetchURL())
			docs[i], errs[i] = s.fetcher.Fetch(gctx, source)
			if errs[i] == nil {
				docs[i].ShortName = source.ShortName
			}
			return nil
		})
	}
	_ = g.Wait()
	return docs, errs
}

// parse extracts and parses the blocks of one document. A document that
// cannot be extracted or has a block that does not parse yields an
// outcome instead of a parsed document.
func (s *RewriteService) parse(ctx context.Context, doc domain.Document, runID string) (*parsedDocument, *domain.DocumentOutcome, error) {
	extraction, err := s.extractor.Extract(doc)
	if err != nil {
		logger.Error("%s: %v", doc.ShortName, err)
		return nil, &domain.DocumentOutcome{
			ShortName: doc.ShortName,
			Outcome:   domain.OutcomeExtractFailed,
			Err:       err,
		}, nil
	}

	p := &parsedDocument{doc: doc, extraction: extraction}
	for _, block := range extraction.Blocks {
		unit, err := s.engine.Parse(block.Text, block.Tag(doc.ShortName))
		if err == nil {
			p.units = append(p.units, unit)
			continue
		}

		failure := syntaxFailure(err, block.Index)
		logger.Error("%s: syntax error in block %d: %s", doc.ShortName, block.Index, failure.BareMessage)
		if err := s.reports.SaveReport(ctx, doc.ShortName, domain.NewSyntaxReport(runID, failure)); err != nil {
			return nil, nil, fmt.Errorf("save report: %w", err)
		}
		return nil, &domain.DocumentOutcome{
			ShortName: doc.ShortName,
			Outcome:   domain.OutcomeSyntaxError,
			Err:       err,
		}, nil
	}
	return p, nil, nil
}

func syntaxFailure(err error, block int) domain.SyntaxFailure {
	var sf driven.SyntaxFailure
	if errors.As(err, &sf) {
		return sf.Failure()
	}
	return domain.SyntaxFailure{Block: block, BareMessage: err.Error()}
}

// validate runs the rules over every parsed unit at once, applies the
// available corrections and groups the findings by document.
func (s *RewriteService) validate(parsed []*parsedDocument) map[string][]domain.Validation {
	var units []driven.GrammarUnit
	for _, p := range parsed {
		units = append(units, p.units...)
	}

	byDoc := make(map[string][]domain.Validation)
	for _, d := range s.engine.Validate(units) {
		src := d.Source()
		byDoc[src.Document] = append(byDoc[src.Document], domain.Validation{
			Block:     src.Block,
			Rule:      d.Rule(),
			Level:     d.Level(),
			Message:   d.Message(),
			Autofixed: d.Autofix(),
		})
	}
	return byDoc
}

// write splices the changed blocks of one document and stores the result.
func (s *RewriteService) write(ctx context.Context, p *parsedDocument, validations []domain.Validation, runID string, noDiff bool) (domain.DocumentOutcome, error) {
	name := p.doc.ShortName
	logger.Section(name)

	outcome := domain.DocumentOutcome{
		ShortName:   name,
		Outcome:     domain.OutcomeUnchanged,
		Validations: len(validations),
		Unresolved:  domain.Unresolved(validations),
	}
	for _, v := range outcome.Unresolved {
		logger.Warn("%s: block %d needs a manual fix (%s)", name, v.Block, v.Rule)
	}
	includesHTML := p.extraction.IncludesHTML()
	allowListed := s.settings.IsAllowListed(name)

	rewritten := make([]string, len(p.units))
	changed := false
	for i, unit := range p.units {
		rewritten[i] = s.engine.Serialize(unit)
		changed = changed || rewritten[i] != p.extraction.Blocks[i].Text
	}

	diff := false
	switch {
	case !changed:
		logger.Debug("%s: no changes", name)
	case includesHTML && !allowListed:
		logger.Info("%s includes rich elements, not allowlisted, skipping", name)
		outcome.Outcome = domain.OutcomeRichMarkup
	default:
		text, err := s.splice(p, rewritten, allowListed)
		if err != nil {
			logger.Error("%v", err)
			outcome.Outcome = domain.OutcomeRelocationFailed
			outcome.Err = err
			return outcome, nil
		}
		if text == p.doc.Text {
			break
		}

		diff = true
		outcome.Outcome = domain.OutcomeWritten
		if err := s.reports.SaveText(ctx, name, text); err != nil {
			return outcome, fmt.Errorf("save text: %w", err)
		}
		if !noDiff {
			patchText, err := patch.Create(name, p.doc.Text, text)
			if err != nil {
				return outcome, fmt.Errorf("create patch: %w", err)
			}
			if err := s.reports.SavePatch(ctx, name, patchText); err != nil {
				return outcome, fmt.Errorf("save patch: %w", err)
			}
		}
		logger.Info("%s: rewritten (%d validations)", name, len(validations))
	}

	report := domain.NewValidationReport(runID, validations, diff, includesHTML)
	if err := s.reports.SaveReport(ctx, name, report); err != nil {
		return outcome, fmt.Errorf("save report: %w", err)
	}
	return outcome, nil
}

// splice replaces the changed blocks of a document in order. Unchanged
// blocks are stepped over so a later block cannot be relocated into an
// earlier one.
func (s *RewriteService) splice(p *parsedDocument, rewritten []string, merge bool) (string, error) {
	r := splice.NewReplacer(p.doc.Text, nil)
	for i, block := range p.extraction.Blocks {
		if rewritten[i] == block.Text {
			r.Skip(block.Markup)
			continue
		}
		if err := r.Replace(splice.NewEdit(block, rewritten[i], merge)); err != nil {
			return "", &domain.RelocationError{
				Document: p.doc.ShortName,
				Block:    block.Index,
				Target:   block.Markup,
				Err:      err,
			}
		}
	}
	return r.Text(), nil
}
