package scraper

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"recipe_fetcher/internal/config"
)

type ScraperTestSuite struct {
	suite.Suite
	cfg    config.ScraperConfig
	logger *slog.Logger
}

func TestScraperTestSuite(t *testing.T) {
	suite.Run(t, new(ScraperTestSuite))
}

func (s *ScraperTestSuite) SetupTest() {
	s.cfg = config.ScraperConfig{
		UserAgent:    "test-agent",
		Timeout:      5 * time.Second,
		MaxBodyBytes: 1 << 20,
		MaxTextChars: 200,
	}
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func (s *ScraperTestSuite) serve(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
}

func (s *ScraperTestSuite) TestSchemaOrg_DirectRecipeNode() {
	srv := s.serve(`<html><head><script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@type": "Recipe",
		"name": "Pancakes",
		"description": "Fluffy &amp; golden.",
		"image": ["https://img.example.com/p.jpg"],
		"recipeYield": ["4", "4 servings"],
		"recipeIngredient": ["2 cups flour", "½ tsp salt"],
		"recipeInstructions": [
			{"@type": "HowToStep", "text": "Mix the batter."},
			{"@type": "HowToStep", "text": "Fry until golden."}
		],
		"nutrition": {"@type": "NutritionInformation", "calories": "250 kcal", "proteinContent": "8 g"}
	}
	</script></head><body></body></html>`)
	defer srv.Close()

	scraper := NewSchemaOrg(NewPageFetcher(s.cfg, s.logger), s.logger)
	data, err := scraper.Scrape(context.Background(), srv.URL)

	s.Require().NoError(err)
	s.Equal("Pancakes", data.Name)
	s.Equal("Fluffy & golden.", data.Description)
	s.Equal("https://img.example.com/p.jpg", data.ImageURL)
	s.Equal(srv.URL, data.SourceURL)
	s.Require().NotNil(data.Serves)
	s.Equal(4, *data.Serves)

	s.Require().Len(data.Ingredients, 2)
	s.Equal("flour", data.Ingredients[0].Name)
	s.Equal(2.0, data.Ingredients[0].Quantity)
	s.Equal("cup", data.Ingredients[0].Unit)
	s.Equal("salt", data.Ingredients[1].Name)
	s.Equal(0.5, data.Ingredients[1].Quantity)

	s.Require().Len(data.Steps, 2)
	s.Equal("Mix the batter.", data.Steps[0].Description)
	s.Equal(1, data.Steps[0].Order)
	s.Equal(2, data.Steps[1].Order)

	s.Require().Len(data.Nutrients, 2)
	s.Equal("calories", data.Nutrients[0].Macro)
	s.Equal(250.0, data.Nutrients[0].Mass)
	s.Equal("proteinContent", data.Nutrients[1].Macro)
	s.Equal(8.0, data.Nutrients[1].Mass)
}

func (s *ScraperTestSuite) TestSchemaOrg_GraphAndSections() {
	srv := s.serve(`<html><head><script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@graph": [
			{"@type": "WebPage", "name": "ignored"},
			{
				"@type": ["Recipe", "NewsArticle"],
				"name": "Stew",
				"recipeIngredient": ["1 lb beef"],
				"recipeInstructions": [
					{
						"@type": "HowToSection",
						"name": "Prep",
						"itemListElement": [{"@type": "HowToStep", "text": "Cube the beef."}]
					},
					{
						"@type": "HowToSection",
						"name": "Cook",
						"itemListElement": [{"@type": "HowToStep", "text": "Simmer for two hours."}]
					}
				]
			}
		]
	}
	</script></head><body></body></html>`)
	defer srv.Close()

	scraper := NewSchemaOrg(NewPageFetcher(s.cfg, s.logger), s.logger)
	data, err := scraper.Scrape(context.Background(), srv.URL)

	s.Require().NoError(err)
	s.Equal("Stew", data.Name)
	s.Require().Len(data.Steps, 2)
	s.Equal("Cube the beef.", data.Steps[0].Description)
	s.Equal("Simmer for two hours.", data.Steps[1].Description)
}

func (s *ScraperTestSuite) TestSchemaOrg_StringInstructions() {
	srv := s.serve(`<html><head><script type="application/ld+json">
	{"@type": "Recipe", "name": "Toast", "recipeInstructions": "<p>Toast the bread.</p>"}
	</script></head><body></body></html>`)
	defer srv.Close()

	scraper := NewSchemaOrg(NewPageFetcher(s.cfg, s.logger), s.logger)
	data, err := scraper.Scrape(context.Background(), srv.URL)

	s.Require().NoError(err)
	s.Require().Len(data.Steps, 1)
	s.Equal("Toast the bread.", data.Steps[0].Description)
}

func (s *ScraperTestSuite) TestSchemaOrg_NoMarkup() {
	srv := s.serve(`<html><head><script type="application/ld+json">
	{"@type": "NewsArticle", "headline": "not food"}
	</script></head><body><p>plain page</p></body></html>`)
	defer srv.Close()

	scraper := NewSchemaOrg(NewPageFetcher(s.cfg, s.logger), s.logger)
	_, err := scraper.Scrape(context.Background(), srv.URL)

	s.ErrorIs(err, ErrNoRecipeMarkup)
}

func (s *ScraperTestSuite) TestSchemaOrg_MalformedBlockSkipped() {
	srv := s.serve(`<html><head>
	<script type="application/ld+json">{not json</script>
	<script type="application/ld+json">{"@type": "Recipe", "name": "Soup"}</script>
	</head><body></body></html>`)
	defer srv.Close()

	scraper := NewSchemaOrg(NewPageFetcher(s.cfg, s.logger), s.logger)
	data, err := scraper.Scrape(context.Background(), srv.URL)

	s.Require().NoError(err)
	s.Equal("Soup", data.Name)
}

func (s *ScraperTestSuite) TestText_PrefersRecipeContainer() {
	srv := s.serve(`<html><body>
	<nav>Home About Contact</nav>
	<div class="sidebar">Ads everywhere</div>
	<div class="recipe-card">Flour Sugar Bake it all</div>
	<footer>Copyright</footer>
	</body></html>`)
	defer srv.Close()

	fetcher := NewPageFetcher(s.cfg, s.logger)
	text, err := fetcher.Text(context.Background(), srv.URL)

	s.Require().NoError(err)
	s.Equal("Flour Sugar Bake it all", text)
}

func (s *ScraperTestSuite) TestText_StripsBoilerplate() {
	srv := s.serve(`<html><body>
	<script>var x = 1;</script>
	<style>.a { color: red }</style>
	<nav>menu</nav>
	<p>Real content here</p>
	</body></html>`)
	defer srv.Close()

	fetcher := NewPageFetcher(s.cfg, s.logger)
	text, err := fetcher.Text(context.Background(), srv.URL)

	s.Require().NoError(err)
	s.Equal("Real content here", text)
}

func (s *ScraperTestSuite) TestText_CapsLength() {
	srv := s.serve("<html><body><p>" + strings.Repeat("word ", 200) + "</p></body></html>")
	defer srv.Close()

	fetcher := NewPageFetcher(s.cfg, s.logger)
	text, err := fetcher.Text(context.Background(), srv.URL)

	s.Require().NoError(err)
	s.Len(text, s.cfg.MaxTextChars)
}

func (s *ScraperTestSuite) TestText_RejectsBadStatus() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	fetcher := NewPageFetcher(s.cfg, s.logger)
	_, err := fetcher.Text(context.Background(), srv.URL)

	s.Error(err)
}

func (s *ScraperTestSuite) TestDocument_RejectsNonHTTP() {
	fetcher := NewPageFetcher(s.cfg, s.logger)
	_, err := fetcher.Document(context.Background(), "ftp://example.com/recipe")

	s.Error(err)
}
