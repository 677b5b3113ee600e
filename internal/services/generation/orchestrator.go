package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/common"
	"github.com/ternarybob/scribe/internal/interfaces"
	"github.com/ternarybob/scribe/internal/models"
	"golang.org/x/sync/errgroup"
)

// TemplateRegistry is the registry lookup the orchestrator needs
type TemplateRegistry interface {
	Exists(code string) bool
	GeneratorFamily(code string) (models.GeneratorFamily, error)
}

// Orchestrator drives a manual title through one generation attempt and processes the queue in batches
type Orchestrator struct {
	titles      interfaces.TitleStorage
	requests    interfaces.RequestStorage
	articles    interfaces.ArticleStorage
	registry    TemplateRegistry
	detector    interfaces.TemplateDetector
	builder     *ContextBuilder
	dispatcher  *Dispatcher
	estimator   CostEstimator
	logger      arbor.ILogger
	concurrency int
	now         func() time.Time
	newID       func() string
}

// NewOrchestrator creates an orchestrator. Every collaborator is required.
func NewOrchestrator(
	titles interfaces.TitleStorage,
	requests interfaces.RequestStorage,
	articles interfaces.ArticleStorage,
	registry TemplateRegistry,
	detector interfaces.TemplateDetector,
	builder *ContextBuilder,
	dispatcher *Dispatcher,
	estimator CostEstimator,
	logger arbor.ILogger,
) *Orchestrator {
	return &Orchestrator{
		titles:      titles,
		requests:    requests,
		articles:    articles,
		registry:    registry,
		detector:    detector,
		builder:     builder,
		dispatcher:  dispatcher,
		estimator:   estimator,
		logger:      logger,
		concurrency: 1,
		now:         time.Now,
		newID:       common.NewRequestID,
	}
}

// SetConcurrency sets how many titles a batch processes in parallel (minimum 1)
func (o *Orchestrator) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	o.concurrency = n
}

// DetectTemplate returns the title's suggested template when it is still registered.
// Otherwise it runs detection and persists the result onto the title so later calls reuse it.
func (o *Orchestrator) DetectTemplate(ctx context.Context, title *models.ManualTitle) (string, error) {
	if title.SuggestedTemplate != "" && o.registry.Exists(title.SuggestedTemplate) {
		return title.SuggestedTemplate, nil
	}

	if title.SuggestedTemplate != "" {
		o.logger.Warn().
			Str("title_id", title.ID).
			Str("template", title.SuggestedTemplate).
			Msg("Suggested template no longer registered, detecting again")
	}

	code := o.detector.DetectOptimalTemplate(title.Title, title.Description)
	if err := o.titles.SetSuggestedTemplate(ctx, title.ID, code); err != nil {
		return "", fmt.Errorf("failed to persist detected template: %w", err)
	}
	title.SuggestedTemplate = code

	return code, nil
}

// ProcessTitleByID loads the title with its platform and country and processes it
func (o *Orchestrator) ProcessTitleByID(ctx context.Context, id string) (*models.GenerationRequest, error) {
	title, err := o.titles.GetTitle(ctx, id)
	if err != nil {
		return nil, err
	}
	return o.ProcessManualTitle(ctx, title)
}

// ProcessManualTitle runs one generation attempt.
// The title is claimed (processing) and the request started before any generation work.
// On failure the request and title are marked failed and the error is returned.
func (o *Orchestrator) ProcessManualTitle(ctx context.Context, title *models.ManualTitle) (*models.GenerationRequest, error) {
	now := o.now()
	request := models.NewGenerationRequest(o.newID(), title.ID, now)
	if err := request.Start(now); err != nil {
		return nil, err
	}
	if err := o.requests.SaveRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create generation request: %w", err)
	}

	claimed, err := o.titles.ClaimTitle(ctx, title.ID, request.ID)
	if err != nil {
		claimErr := fmt.Errorf("%w: %w", ErrTitleNotClaimable, err)
		o.failRequest(ctx, request, claimErr)
		return request, claimErr
	}
	// Associations loaded by the caller survive the claim
	if claimed.Platform == nil {
		claimed.Platform = title.Platform
	}
	if claimed.Country == nil {
		claimed.Country = title.Country
	}
	title.Status = claimed.Status
	title.RequestID = claimed.RequestID

	o.logger.Info().
		Str("title_id", title.ID).
		Str("request_id", request.ID).
		Msg("Processing manual title")

	err = common.Guard(o.logger, "title "+title.ID, func() error {
		return o.generate(ctx, claimed, request)
	})
	if err != nil {
		o.failRequest(ctx, request, err)
		o.markTitle(ctx, title, models.TitleStatusFailed)

		o.logger.Error().
			Err(err).
			Str("title_id", title.ID).
			Str("request_id", request.ID).
			Msg("Generation failed")
		return request, err
	}

	o.markTitle(ctx, title, models.TitleStatusCompleted)

	o.logger.Info().
		Str("title_id", title.ID).
		Str("request_id", request.ID).
		Str("article_id", request.ArticleID).
		Str("template", request.TemplateCode).
		Float64("cost", request.Cost).
		Msg("Generation completed")

	return request, nil
}

// generate runs detection through persistence and completes the request
func (o *Orchestrator) generate(ctx context.Context, title *models.ManualTitle, request *models.GenerationRequest) error {
	code, err := o.DetectTemplate(ctx, title)
	if err != nil {
		return err
	}
	request.TemplateCode = code

	genCtx, err := o.builder.Build(ctx, title, code)
	if err != nil {
		return err
	}

	family, err := o.registry.GeneratorFamily(code)
	if err != nil {
		return err
	}
	request.GeneratorFamily = string(family)

	generator, err := o.dispatcher.Resolve(family)
	if err != nil {
		return err
	}

	var article *models.Article
	err = common.Guard(o.logger, "generator "+string(family), func() error {
		var genErr error
		article, genErr = generator.Generate(ctx, genCtx)
		return genErr
	})
	if err == nil && article == nil {
		err = errors.New("generator returned no article")
	}
	if err != nil {
		return &GenerationError{TemplateCode: code, Family: family, Err: err}
	}

	o.prepareArticle(article, title, request, genCtx)
	if err := o.articles.SaveArticle(ctx, article); err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}

	cost := o.estimator.Estimate(article, genCtx.TemplateConfig)

	completed := *request
	completed.Provider = article.Provider
	completed.Model = article.Model
	if err := completed.Complete(article.ID, cost, o.now()); err != nil {
		return err
	}
	if err := o.requests.SaveRequest(ctx, &completed); err != nil {
		o.discardArticle(ctx, article)
		return fmt.Errorf("failed to complete generation request: %w", err)
	}
	*request = completed

	return nil
}

// prepareArticle fills the identifiers the generator does not own
func (o *Orchestrator) prepareArticle(article *models.Article, title *models.ManualTitle, request *models.GenerationRequest, genCtx *models.GenerationContext) {
	if article.ID == "" {
		article.ID = common.NewArticleID()
	}
	article.ManualTitleID = title.ID
	article.RequestID = request.ID
	if article.Type == "" {
		article.Type = genCtx.TemplateCode
	}
	if article.LanguageCode == "" {
		article.LanguageCode = genCtx.LanguageCode
	}
	if article.PlatformID == 0 {
		article.PlatformID = genCtx.PlatformID
	}
	if article.CountryID == 0 {
		article.CountryID = genCtx.CountryID
	}
	if genCtx.Theme != nil && article.ThemeType == "" {
		article.ThemeType = genCtx.Theme.Type
		article.ThemeID = genCtx.Theme.ID
	}
	if article.AuthorID == nil {
		article.AuthorID = genCtx.AuthorID
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = o.now()
	}
}

// discardArticle removes an article whose request could not be completed
func (o *Orchestrator) discardArticle(ctx context.Context, article *models.Article) {
	if err := o.articles.DeleteArticle(ctx, article.ID); err != nil {
		o.logger.Error().
			Err(err).
			Str("article_id", article.ID).
			Str("request_id", article.RequestID).
			Msg("Failed to discard article of failed request")
	}
}

// failRequest records err verbatim on the request. Persistence errors are logged, not returned.
func (o *Orchestrator) failRequest(ctx context.Context, request *models.GenerationRequest, cause error) {
	if err := request.Fail(cause.Error(), o.now()); err != nil {
		o.logger.Warn().Err(err).Str("request_id", request.ID).Msg("Request already final")
		return
	}
	if err := o.requests.SaveRequest(ctx, request); err != nil {
		o.logger.Error().Err(err).Str("request_id", request.ID).Msg("Failed to record request failure")
	}
}

func (o *Orchestrator) markTitle(ctx context.Context, title *models.ManualTitle, status models.TitleStatus) {
	if err := o.titles.UpdateTitleStatus(ctx, title.ID, status); err != nil {
		o.logger.Error().
			Err(err).
			Str("title_id", title.ID).
			Str("status", string(status)).
			Msg("Failed to update title status")
		return
	}
	title.Status = status
}

// ProcessQueue processes up to limit pending or queued titles and returns how many completed.
// Per-title failures are recorded and logged and never returned; the error is reserved for reading the queue.
func (o *Orchestrator) ProcessQueue(ctx context.Context, limit int) (int, error) {
	result, err := o.ProcessQueueDetailed(ctx, limit)
	if err != nil {
		return 0, err
	}
	return result.Completed, nil
}

// ProcessQueueDetailed is ProcessQueue with a per-title outcome
func (o *Orchestrator) ProcessQueueDetailed(ctx context.Context, limit int) (*models.BatchResult, error) {
	result := &models.BatchResult{Items: []models.BatchItemResult{}}
	if limit <= 0 {
		return result, nil
	}

	titles, err := o.titles.ListQueuedTitles(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list queued titles: %w", err)
	}
	if len(titles) > limit {
		titles = titles[:limit]
	}
	result.Selected = len(titles)
	if len(titles) == 0 {
		return result, nil
	}

	o.logger.Info().
		Int("selected", len(titles)).
		Int("limit", limit).
		Int("concurrency", o.concurrency).
		Msg("Processing title queue")

	items := make([]models.BatchItemResult, len(titles))

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i, title := range titles {
		g.Go(func() error {
			items[i] = o.processItem(ctx, title)
			return nil
		})
	}
	_ = g.Wait()

	for _, item := range items {
		switch item.Status {
		case models.TitleStatusCompleted:
			result.Completed++
		case models.TitleStatusFailed:
			result.Failed++
		}
	}
	result.Items = items

	o.logger.Info().
		Int("selected", result.Selected).
		Int("completed", result.Completed).
		Int("failed", result.Failed).
		Msg("Title queue processed")

	return result, nil
}

// processItem isolates one title: errors and panics end up in the item result
func (o *Orchestrator) processItem(ctx context.Context, title *models.ManualTitle) models.BatchItemResult {
	item := models.BatchItemResult{TitleID: title.ID, Status: title.Status}

	if err := ctx.Err(); err != nil {
		item.Error = err.Error()
		return item
	}

	var request *models.GenerationRequest
	err := common.Guard(o.logger, "title "+title.ID, func() error {
		var processErr error
		request, processErr = o.ProcessManualTitle(ctx, title)
		return processErr
	})
	if request != nil {
		item.RequestID = request.ID
	}

	if err != nil {
		item.Error = err.Error()
		if errors.Is(err, ErrTitleNotClaimable) {
			// Another worker owns it; the title itself is untouched
			item.Status = title.Status
		} else {
			item.Status = models.TitleStatusFailed
		}
		o.logger.Warn().
			Err(err).
			Str("title_id", title.ID).
			Msg("Title failed, continuing with batch")
		return item
	}

	item.Status = models.TitleStatusCompleted
	return item
}
