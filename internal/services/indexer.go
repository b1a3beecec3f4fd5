package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"hirelytics/backend/internal/models"
)

const (
	embeddingSize = 768 // text-embedding-004 output dimension
	chunkSize     = 1200
	chunkOverlap  = 150
)

// CandidateIndexer maintains the CV vector index used for similar-candidate
// lookups. Indexing is best-effort: the analysis pipeline never waits on it.
type CandidateIndexer interface {
	InitCollection() error
	IndexCandidate(ctx context.Context, candidate *models.Candidate) error
	FindSimilar(ctx context.Context, cvText string, limit int) ([]models.SimilarCandidate, error)
}

type candidateIndexer struct {
	client         *qdrant.Client
	gemini         GeminiService
	collectionName string
}

func NewCandidateIndexer(urlStr, apiKey, collectionName string, gemini GeminiService) (CandidateIndexer, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &candidateIndexer{
		client:         client,
		gemini:         gemini,
		collectionName: collectionName,
	}, nil
}

// InitCollection implements CandidateIndexer.
func (ci *candidateIndexer) InitCollection() error {
	ctx := context.Background()

	exists, err := ci.client.CollectionExists(ctx, ci.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = ci.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: ci.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     embeddingSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// IndexCandidate implements CandidateIndexer. Long CVs are split into
// overlapping chunks so retrieval stays precise on multi-page documents.
func (ci *candidateIndexer) IndexCandidate(ctx context.Context, candidate *models.Candidate) error {
	if ci.gemini == nil {
		return fmt.Errorf("embedding backend unavailable")
	}

	chunks := chunkText(candidate.CVText, chunkSize, chunkOverlap)
	if len(chunks) == 0 {
		return fmt.Errorf("no text to index for candidate %s", candidate.ID)
	}

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for i, chunk := range chunks {
		embedding, err := ci.gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(uuid.New().ID())),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"candidate_id":   candidate.ID.String(),
				"job_id":         candidate.JobID.String(),
				"candidate_name": candidate.Name,
				"chunk_index":    i,
				"text":           chunk,
			}),
		})
	}

	_, err := ci.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: ci.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert candidate points: %w", err)
	}

	return nil
}

// FindSimilar implements CandidateIndexer. Results are deduplicated by
// candidate, keeping the best-scoring chunk for each.
func (ci *candidateIndexer) FindSimilar(ctx context.Context, cvText string, limit int) ([]models.SimilarCandidate, error) {
	if ci.gemini == nil {
		return nil, fmt.Errorf("embedding backend unavailable")
	}
	if limit <= 0 {
		limit = 5
	}

	embedding, err := ci.gemini.GenerateEmbedding(ctx, cvText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	// Over-fetch so dedup by candidate still fills the requested limit.
	fetchLimit := uint64(limit * 4)
	points, err := ci.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: ci.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(fetchLimit),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	seen := make(map[string]bool)
	var results []models.SimilarCandidate
	for _, point := range points {
		candidateID := payloadString(point.Payload, "candidate_id")
		if candidateID == "" || seen[candidateID] {
			continue
		}
		seen[candidateID] = true

		results = append(results, models.SimilarCandidate{
			CandidateID: candidateID,
			Name:        payloadString(point.Payload, "candidate_name"),
			Score:       point.Score,
			Excerpt:     excerpt(payloadString(point.Payload, "text"), 200),
		})
		if len(results) >= limit {
			break
		}
	}

	return results, nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if value, ok := payload[key]; ok {
		if s, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
			return s.StringValue
		}
	}
	return ""
}

func excerpt(text string, max int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "..."
}

// chunkText splits text into paragraph-aligned chunks of at most maxSize
// characters, carrying overlap characters from the previous chunk so context
// is not lost at boundaries.
func chunkText(text string, maxSize, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= maxSize {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, current.String())
		current.Reset()
		if overlap > 0 {
			prev := []rune(chunks[len(chunks)-1])
			if len(prev) > overlap {
				prev = prev[len(prev)-overlap:]
			}
			current.WriteString(string(prev))
			current.WriteString(" ")
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if current.Len()+len(para)+2 > maxSize {
			flush()
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}

	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, current.String())
	}

	return chunks
}
