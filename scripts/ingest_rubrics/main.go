package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"alfredoptarigan/skillbridge-assessment/internal/config"
	"alfredoptarigan/skillbridge-assessment/internal/services"
)

// Indexes grading rubric PDFs into the vector collection the AI task scorer
// searches for context.
func main() {
	log.Println("🚀 Starting rubric ingestion...")

	cfg := config.Load()

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	rubricIndex, err := services.NewRubricIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}
	if err := rubricIndex.EnsureCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	parser := services.NewArtifactParserService()
	chunker := services.NewTextChunker()

	ctx := context.Background()

	documents := []struct {
		Path  string
		Skill string
		Name  string
	}{
		{
			Path:  "./reference_docs/design_rubric.pdf",
			Skill: "CSS",
			Name:  "Design Task Rubric",
		},
		{
			Path:  "./reference_docs/critique_rubric.pdf",
			Skill: "React",
			Name:  "Critique Task Rubric",
		},
		{
			Path:  "./reference_docs/code_review_rubric.pdf",
			Skill: "Python",
			Name:  "Code Review Rubric",
		},
	}

	successCount := 0
	failCount := 0

	for _, doc := range documents {
		log.Printf("\n📄 Processing: %s", doc.Name)

		if _, err := os.Stat(doc.Path); os.IsNotExist(err) {
			log.Printf("⚠️  File not found, skipping: %s", doc.Path)
			failCount++
			continue
		}

		text, err := parser.ExtractText(doc.Path)
		if err != nil {
			log.Printf("❌ Failed to extract text: %v", err)
			failCount++
			continue
		}
		text = services.CleanText(text)

		chunks := chunker.ChunkText(text, 1000, 100)
		log.Printf("   Split into %d chunk(s)", len(chunks))

		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("❌ Failed to embed chunk %d: %v", i, err)
				failCount++
				continue
			}

			docID := fmt.Sprintf("%s-%d", doc.Name, i)
			if err := rubricIndex.IndexRubricDoc(ctx, docID, doc.Skill, chunk, embedding); err != nil {
				log.Printf("❌ Failed to index chunk %d: %v", i, err)
				failCount++
				continue
			}
			successCount++
		}
	}

	log.Printf("\n🎉 Rubric ingestion completed: %d chunk(s) indexed, %d failure(s)", successCount, failCount)
}
