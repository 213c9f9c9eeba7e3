package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// RubricIndexService is the vector index of scoring rubrics and model
// answers. The AI reviewer searches it for grading context before judging a
// submission.
type RubricIndexService interface {
	EnsureCollection() error
	IndexRubricDoc(ctx context.Context, docID, skill, text string, embedding []float32) error
	SearchRubrics(ctx context.Context, queryEmbedding []float32, skill string, limit int) ([]RubricMatch, error)
	DeleteRubricDoc(ctx context.Context, docID string) error
}

type RubricMatch struct {
	ID    string
	Score float32
	Skill string
	Text  string
}

type rubricIndexService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewRubricIndexService(urlStr, apiKey, collectionName string) (RubricIndexService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one.
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

	return &rubricIndexService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// EnsureCollection implements RubricIndexService.
func (r *rubricIndexService) EnsureCollection() error {
	ctx := context.Background()

	exists, err := r.client.CollectionExists(ctx, r.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = r.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: r.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     r.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully", r.collectionName)
	return nil
}

// IndexRubricDoc implements RubricIndexService.
func (r *rubricIndexService) IndexRubricDoc(ctx context.Context, docID, skill, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"doc_id": docID,
			"skill":  skill,
			"text":   text,
		}),
	}

	_, err := r.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: r.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert rubric doc: %w", err)
	}
	return nil
}

// SearchRubrics implements RubricIndexService.
func (r *rubricIndexService) SearchRubrics(ctx context.Context, queryEmbedding []float32, skill string, limit int) ([]RubricMatch, error) {
	var filter *qdrant.Filter
	if skill != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("skill", skill),
			},
		}
	}

	searchResult, err := r.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: r.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search rubrics: %w", err)
	}

	var matches []RubricMatch
	for _, point := range searchResult {
		payload := point.Payload

		match := RubricMatch{Score: point.Score}
		if docID, ok := payload["doc_id"]; ok {
			if val, ok := docID.GetKind().(*qdrant.Value_StringValue); ok {
				match.ID = val.StringValue
			}
		}
		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				match.Text = val.StringValue
			}
		}
		if s, ok := payload["skill"]; ok {
			if val, ok := s.GetKind().(*qdrant.Value_StringValue); ok {
				match.Skill = val.StringValue
			}
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// DeleteRubricDoc implements RubricIndexService.
func (r *rubricIndexService) DeleteRubricDoc(ctx context.Context, docID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("doc_id", docID),
		},
	}

	_, err := r.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: r.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete rubric doc: %w", err)
	}
	return nil
}
