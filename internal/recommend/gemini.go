package recommend

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/meditrack/meditrack/internal/models"
)

// GeminiRecommender classifies symptoms with the Gemini API. Responses
// are treated as untrusted text: anything that does not parse back to a
// known specialty or doctor id is discarded.
type GeminiRecommender struct {
	model   *genai.GenerativeModel
	doctors DoctorLister
	logger  *zap.Logger
}

func NewGeminiRecommender(
	ctx context.Context,
	apiKey string,
	modelName string,
	doctors DoctorLister,
	logger *zap.Logger,
) (*GeminiRecommender, error) {

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &GeminiRecommender{
		model:   client.GenerativeModel(modelName),
		doctors: doctors,
		logger:  logger,
	}, nil
}

func (g *GeminiRecommender) Classify(ctx context.Context, symptoms string) (models.Specialty, error) {
	prompt := fmt.Sprintf(
		"A patient describes their symptoms as: %q.\n"+
			"Answer with exactly one of: GENERAL, CARDIOLOGIST, DERMATOLOGIST, "+
			"NEUROLOGIST, ORTHOPEDIC, PEDIATRICIAN. No other text.",
		symptoms,
	)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("classify symptoms: %w", err)
	}

	specialty := models.Specialty(strings.ToUpper(strings.TrimSpace(text)))
	if !specialty.Valid() {
		g.logger.Warn("unparseable specialty from model, defaulting",
			zap.String("answer", text))
		specialty = models.SpecialtyGeneral
	}
	return specialty, nil
}

func (g *GeminiRecommender) RankBySimilarity(ctx context.Context, query string) ([]uint, error) {
	doctors, err := g.doctors.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		return nil, nil
	}

	var catalog strings.Builder
	for _, d := range doctors {
		fmt.Fprintf(&catalog, "id=%d specialty=%s description=%q\n", d.ID, d.Specialty, d.Description)
	}

	prompt := fmt.Sprintf(
		"Given these doctors:\n%s\nRank them by relevance to the request %q. "+
			"Answer with the ids only, comma separated, most relevant first.",
		catalog.String(), query,
	)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("rank doctors: %w", err)
	}

	known := make(map[uint]bool, len(doctors))
	for _, d := range doctors {
		known[d.ID] = true
	}

	var ranked []uint
	seen := make(map[uint]bool)
	for _, tok := range strings.Split(text, ",") {
		n, err := strconv.ParseUint(strings.TrimSpace(tok), 10, 64)
		if err != nil {
			continue
		}
		id := uint(n)
		if known[id] && !seen[id] {
			ranked = append(ranked, id)
			seen[id] = true
		}
	}

	// keep doctors the model forgot at the tail, directory order
	for _, d := range doctors {
		if !seen[d.ID] {
			ranked = append(ranked, d.ID)
		}
	}
	return ranked, nil
}

func (g *GeminiRecommender) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty model response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

var _ Recommender = (*GeminiRecommender)(nil)
