package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tastevine/v1/internal/domain/recipe"
	"github.com/tastevine/v1/internal/ports/inbound"
	"github.com/tastevine/v1/internal/ports/outbound"
)

// Options tunes the generative-model service.
type Options struct {
	// Timeout bounds a single model call. Exceeding it yields
	// ErrModelTimeout rather than a parse error.
	Timeout time.Duration

	// CacheTTL controls how long identical generation requests are
	// served from cache. Zero disables caching.
	CacheTTL time.Duration

	// RequestsPerMinute caps outbound model calls across all users.
	RequestsPerMinute int

	// Metrics receives request and parse-failure observations.
	// Nil disables recording.
	Metrics Recorder
}

// Recorder receives model request observations.
type Recorder interface {
	RecordAIRequest(operation, status string, duration time.Duration)
	RecordAIParseFailure(operation, reason string)
}

// Service implements the generative-AI use cases on top of a ModelClient.
type Service struct {
	model   outbound.ModelClient
	cache   outbound.CacheRepository
	limiter *rate.Limiter
	metrics Recorder
	opts    Options
	logger  *zap.Logger
}

// NewService creates the AI service. cache may be nil to disable caching.
func NewService(model outbound.ModelClient, cache outbound.CacheRepository, opts Options, logger *zap.Logger) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), opts.RequestsPerMinute)
	}
	return &Service{
		model:   model,
		cache:   cache,
		limiter: limiter,
		metrics: opts.Metrics,
		opts:    opts,
		logger:  logger,
	}
}

// GenerateRecipe asks the model for a full recipe and parses the reply.
func (s *Service) GenerateRecipe(ctx context.Context, cmd inbound.GenerateRecipeCommand) (*recipe.Generated, error) {
	prompt := recipePrompt(cmd)

	if cached, ok := s.cachedRecipe(ctx, prompt); ok {
		return cached, nil
	}

	raw, err := s.generate(ctx, "generate_recipe", prompt, nil)
	if err != nil {
		return nil, err
	}

	generated, err := ParseRecipeResponse(raw)
	if err != nil {
		s.logger.Warn("recipe response rejected",
			zap.Error(err),
			zap.Int("response_length", len(raw)))
		s.recordParseFailure("generate_recipe", err)
		return nil, err
	}

	s.storeRecipe(ctx, prompt, generated)
	return generated, nil
}

// SuggestDishes returns the model's free-text dish suggestions for a set
// of ingredients. The text is passed through verbatim.
func (s *Service) SuggestDishes(ctx context.Context, ingredients []string) (string, error) {
	prompt := fmt.Sprintf(
		"Analyze these ingredients and suggest possible dishes: %s. "+
			"Consider common cooking techniques and flavor combinations.",
		strings.Join(ingredients, ", "))

	return s.generate(ctx, "suggest_dishes", prompt, nil)
}

// AnalyzeImage identifies the ingredients visible in an image.
func (s *Service) AnalyzeImage(ctx context.Context, data []byte, mimeType string) ([]string, error) {
	prompt := "Identify and list all ingredients visible in this image. " +
		"Format the response as a JSON array of strings, each string containing " +
		"an ingredient with its approximate quantity if visible."

	raw, err := s.generate(ctx, "analyze_image", prompt, &outbound.ImageInput{Data: data, MimeType: mimeType})
	if err != nil {
		return nil, err
	}

	ingredients, err := ParseIngredientList(raw)
	if err != nil {
		s.logger.Warn("image analysis response rejected", zap.Error(err))
		s.recordParseFailure("analyze_image", err)
		return nil, err
	}
	return ingredients, nil
}

// GenerateRemedy asks the model for a traditional remedy and parses the
// reply, accepting the legacy section format as a fallback.
func (s *Service) GenerateRemedy(ctx context.Context, cmd inbound.GenerateRemedyCommand) (*GeneratedRemedy, error) {
	raw, err := s.generate(ctx, "generate_remedy", remedyPrompt(cmd), nil)
	if err != nil {
		return nil, err
	}

	generated, err := ParseRemedyResponse(raw)
	if err != nil {
		s.logger.Warn("remedy response rejected", zap.Error(err))
		s.recordParseFailure("generate_remedy", err)
		return nil, err
	}
	return generated, nil
}

// generate performs one bounded, rate-limited model call.
func (s *Service) generate(ctx context.Context, operation, prompt string, image *outbound.ImageInput) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.model.GenerateText(ctx, prompt, image)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Error("model call timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", s.opts.Timeout))
			s.recordRequest(operation, "timeout", time.Since(start))
			return "", ErrModelTimeout
		}
		s.recordRequest(operation, "error", time.Since(start))
		return "", err
	}

	s.logger.Debug("model call completed",
		zap.String("operation", operation),
		zap.Duration("duration", time.Since(start)),
		zap.Int("response_length", len(raw)))
	s.recordRequest(operation, "success", time.Since(start))
	return raw, nil
}

func (s *Service) recordRequest(operation, status string, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordAIRequest(operation, status, duration)
	}
}

func (s *Service) recordParseFailure(operation string, err error) {
	if s.metrics != nil {
		s.metrics.RecordAIParseFailure(operation, parseFailureReason(err))
	}
}

func (s *Service) cachedRecipe(ctx context.Context, prompt string) (*recipe.Generated, bool) {
	if s.cache == nil || s.opts.CacheTTL <= 0 {
		return nil, false
	}

	data, err := s.cache.Get(ctx, recipeCacheKey(prompt))
	if err != nil || data == nil {
		return nil, false
	}

	var generated recipe.Generated
	if err := json.Unmarshal(data, &generated); err != nil {
		return nil, false
	}
	return &generated, true
}

func (s *Service) storeRecipe(ctx context.Context, prompt string, generated *recipe.Generated) {
	if s.cache == nil || s.opts.CacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(generated)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, recipeCacheKey(prompt), data, s.opts.CacheTTL); err != nil {
		s.logger.Debug("recipe cache write failed", zap.Error(err))
	}
}

func recipeCacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "ai:recipe:" + hex.EncodeToString(sum[:])
}

func recipePrompt(cmd inbound.GenerateRecipeCommand) string {
	return fmt.Sprintf(`Create a recipe using these parameters:
Ingredients: %s
Cuisine: %s
Dietary Restrictions: %s
Cook's Proficiency: %s
Time Available: %s

Respond with a valid JSON object containing EXACTLY these fields:
{
  "title": "Recipe name",
  "description": "Brief description",
  "prepTime": "Preparation time",
  "cookTime": "Cooking time",
  "totalTime": "Total time",
  "difficulty": "Easy/Medium/Hard",
  "ingredients": ["List of ingredients with quantities"],
  "alternativeIngredients": {"ingredient": "alternative"},
  "instructions": ["Step by step instructions"],
  "nutrition": {
    "calories": "per serving",
    "protein": "grams",
    "carbs": "grams",
    "fat": "grams"
  },
  "plating": "Plating suggestions",
  "history": "Cultural background and history"
}`,
		strings.Join(cmd.Ingredients, ", "),
		cmd.Cuisine,
		strings.Join(cmd.Restrictions, ", "),
		cmd.Proficiency,
		cmd.TimeAvailable)
}

func remedyPrompt(cmd inbound.GenerateRemedyCommand) string {
	var b strings.Builder
	b.WriteString("Generate a traditional remedy or comfort food recipe for someone with the following details:\n\n")
	fmt.Fprintf(&b, "Condition/Illness: %s\n", cmd.Illness)
	if cmd.Age != "" {
		fmt.Fprintf(&b, "Age: %s\n", cmd.Age)
	}
	if len(cmd.DietaryInfo) > 0 {
		fmt.Fprintf(&b, "Dietary information: %s\n", strings.Join(cmd.DietaryInfo, ", "))
	}
	if len(cmd.Preferences) > 0 {
		fmt.Fprintf(&b, "Preferences: %s\n", strings.Join(cmd.Preferences, ", "))
	}
	if len(cmd.Allergies) > 0 {
		fmt.Fprintf(&b, "Allergies to avoid: %s\n", strings.Join(cmd.Allergies, ", "))
	}
	if cmd.TimeAvailable != "" {
		fmt.Fprintf(&b, "Time available: %s\n", cmd.TimeAvailable)
	}
	if len(cmd.Cuisines) > 0 {
		fmt.Fprintf(&b, "Preferred cuisines: %s\n", strings.Join(cmd.Cuisines, ", "))
	}

	if len(cmd.Ingredients) > 0 {
		fmt.Fprintf(&b, "Available ingredients: %s\n", strings.Join(cmd.Ingredients, ", "))
	}

	b.WriteString(`
Respond with a valid JSON object containing these fields:
{
  "title": "Recipe name",
  "description": "Brief description",
  "ingredients": ["List each ingredient with quantity"],
  "instructions": ["Step-by-step instructions"],
  "cookingTime": "Total time needed",
  "servings": "Number of servings",
  "healthBenefits": ["List health benefits"],
  "remedyExplanation": "How this helps with the illness",
  "variations": ["List variations if any"],
  "precautions": ["List precautions"],
  "region": "Origin region",
  "tradition": "Cultural background"
}`)

	return b.String()
}
