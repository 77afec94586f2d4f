package ai

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/tastevine/v1/internal/ports/inbound"
	"github.com/tastevine/v1/internal/ports/outbound"
)

// scriptedModel returns canned responses and records the prompts it saw.
type scriptedModel struct {
	mu       sync.Mutex
	response string
	err      error
	delay    time.Duration
	calls    int
	prompts  []string
	images   []*outbound.ImageInput
}

func (m *scriptedModel) GenerateText(ctx context.Context, prompt string, image *outbound.ImageInput) (string, error) {
	m.mu.Lock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.images = append(m.images, image)
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.response, m.err
}

// memoryCache is a minimal CacheRepository for cache-path tests.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok, nil
}

const modelRecipeJSON = `{
	"title": "Garlic Noodles",
	"description": "Quick weeknight noodles.",
	"prepTime": "10 minutes",
	"cookTime": "15 minutes",
	"totalTime": "25 minutes",
	"difficulty": "Easy",
	"ingredients": ["200g noodles", "4 cloves garlic"],
	"instructions": ["Boil the noodles.", "Fry the garlic."],
	"nutrition": {"calories": "420", "protein": "12g", "carbs": "60g", "fat": "14g"},
	"plating": "Serve in a shallow bowl.",
	"history": "A takeout staple."
}`

type AIServiceTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestAIServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AIServiceTestSuite))
}

func (s *AIServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *AIServiceTestSuite) newService(model *scriptedModel, cache outbound.CacheRepository, opts Options) *Service {
	return NewService(model, cache, opts, zap.NewNop())
}

func (s *AIServiceTestSuite) TestGenerateRecipe() {
	cmd := inbound.GenerateRecipeCommand{
		Ingredients: []string{"noodles", "garlic"},
		Cuisine:     "Asian",
	}

	s.Run("parses the model response", func() {
		model := &scriptedModel{response: modelRecipeJSON}
		service := s.newService(model, nil, Options{})

		generated, err := service.GenerateRecipe(s.ctx, cmd)

		s.Require().NoError(err)
		s.Equal("Garlic Noodles", generated.Title)
		s.NotNil(generated.AlternativeIngredients)
		s.Contains(model.prompts[0], "noodles, garlic")
		s.Contains(model.prompts[0], "EXACTLY these fields")
	})

	s.Run("serves repeat requests from cache", func() {
		model := &scriptedModel{response: modelRecipeJSON}
		service := s.newService(model, newMemoryCache(), Options{CacheTTL: time.Minute})

		first, err := service.GenerateRecipe(s.ctx, cmd)
		s.Require().NoError(err)
		second, err := service.GenerateRecipe(s.ctx, cmd)
		s.Require().NoError(err)

		s.Equal(first.Title, second.Title)
		s.Equal(1, model.calls)
	})

	s.Run("maps deadline overruns to the timeout error", func() {
		model := &scriptedModel{response: modelRecipeJSON, delay: 200 * time.Millisecond}
		service := s.newService(model, nil, Options{Timeout: 20 * time.Millisecond})

		_, err := service.GenerateRecipe(s.ctx, cmd)

		s.Require().Error(err)
		s.ErrorIs(err, ErrModelTimeout)
	})

	s.Run("surfaces parse failures untouched", func() {
		model := &scriptedModel{response: "I cannot help with that."}
		service := s.newService(model, nil, Options{})

		_, err := service.GenerateRecipe(s.ctx, cmd)

		s.Require().Error(err)
		s.ErrorIs(err, ErrNoJSONFound)
	})
}

func (s *AIServiceTestSuite) TestSuggestDishes() {
	model := &scriptedModel{response: "You could make a stir fry or a soup."}
	service := s.newService(model, nil, Options{})

	text, err := service.SuggestDishes(s.ctx, []string{"carrot", "ginger"})

	s.Require().NoError(err)
	s.Equal(model.response, text)
	s.Contains(model.prompts[0], "carrot, ginger")
}

func (s *AIServiceTestSuite) TestAnalyzeImage() {
	s.Run("passes the image through and parses the list", func() {
		model := &scriptedModel{response: `["2 tomatoes", "1 onion"]`}
		service := s.newService(model, nil, Options{})

		ingredients, err := service.AnalyzeImage(s.ctx, []byte{0xFF, 0xD8}, "image/jpeg")

		s.Require().NoError(err)
		s.Equal([]string{"2 tomatoes", "1 onion"}, ingredients)
		s.Require().NotNil(model.images[0])
		s.Equal("image/jpeg", model.images[0].MimeType)
	})

	s.Run("rejects prose responses", func() {
		model := &scriptedModel{response: "I see some vegetables."}
		service := s.newService(model, nil, Options{})

		_, err := service.AnalyzeImage(s.ctx, []byte{0xFF, 0xD8}, "image/jpeg")

		s.Require().Error(err)
		s.ErrorIs(err, ErrNoJSONFound)
	})
}

func (s *AIServiceTestSuite) TestGenerateRemedy() {
	cmd := inbound.GenerateRemedyCommand{Illness: "sore throat"}

	s.Run("parses a JSON remedy", func() {
		model := &scriptedModel{response: `{
			"title": "Honey Ginger Tea",
			"description": "A soothing warm drink.",
			"ingredients": ["1 tbsp honey", "3 slices ginger"],
			"instructions": ["Steep the ginger.", "Stir in the honey."]
		}`}
		service := s.newService(model, nil, Options{})

		generated, err := service.GenerateRemedy(s.ctx, cmd)

		s.Require().NoError(err)
		s.Equal("Honey Ginger Tea", generated.Title)
		s.Contains(model.prompts[0], "sore throat")
	})

	s.Run("accepts the legacy section format", func() {
		model := &scriptedModel{response: "Title: Honey Ginger Tea\n" +
			"Description: A soothing warm drink.\n" +
			"Ingredients:\n- 1 tbsp honey\n- 3 slices ginger\n" +
			"Instructions:\n1. Steep the ginger.\n2. Stir in the honey.\n"}
		service := s.newService(model, nil, Options{})

		generated, err := service.GenerateRemedy(s.ctx, cmd)

		s.Require().NoError(err)
		s.Equal("Honey Ginger Tea", generated.Title)
		s.Len(generated.Ingredients, 2)
	})
}
