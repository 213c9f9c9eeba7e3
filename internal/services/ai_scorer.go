package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"alfredoptarigan/skillbridge-assessment/internal/models"
)

const aiTaskMaxScore = 10.0

// ReviewResult is what the LLM returns for one graded item.
type ReviewResult struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// aiQuestionScorer grades short and code answers with the LLM. Any failure
// falls back to the flat midpoint score so scoring never blocks on the API.
type aiQuestionScorer struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	fallback      QuestionScorer
	maxRetries    int
}

func NewAIQuestionScorer(gemini GeminiService, maxRetries int) QuestionScorer {
	return &aiQuestionScorer{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		fallback:      NewConstantQuestionScorer(),
		maxRetries:    maxRetries,
	}
}

// ScoreQuestion implements QuestionScorer.
func (s *aiQuestionScorer) ScoreQuestion(ctx context.Context, question *models.Question, answer string) float64 {
	prompt := s.promptBuilder.BuildAnswerReviewPrompt(question.Text, string(question.Type), answer)

	response, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.3, s.maxRetries)
	if err != nil {
		log.Printf("⚠️  AI review failed for question %s, using flat score: %v", question.ID, err)
		return s.fallback.ScoreQuestion(ctx, question, answer)
	}

	result, err := parseReviewResponse(response)
	if err != nil {
		log.Printf("⚠️  Unparseable AI review for question %s, using flat score: %v", question.ID, err)
		return s.fallback.ScoreQuestion(ctx, question, answer)
	}

	return clampScore(result.Score, mcqFullScore)
}

// aiTaskScorer grades task submissions with the LLM, injecting rubric context
// from the vector index and extracting text from uploaded PDF artifacts. Like
// the question scorer it degrades to the flat score on any failure.
type aiTaskScorer struct {
	gemini        GeminiService
	rubricIndex   RubricIndexService
	parser        ArtifactParserService
	storage       ArtifactStorageService
	promptBuilder *PromptBuilder
	fallback      TaskScorer
	maxRetries    int
}

func NewAITaskScorer(
	gemini GeminiService,
	rubricIndex RubricIndexService,
	parser ArtifactParserService,
	storage ArtifactStorageService,
	maxRetries int,
) TaskScorer {
	return &aiTaskScorer{
		gemini:        gemini,
		rubricIndex:   rubricIndex,
		parser:        parser,
		storage:       storage,
		promptBuilder: NewPromptBuilder(),
		fallback:      NewConstantTaskScorer(),
		maxRetries:    maxRetries,
	}
}

// ScoreTask implements TaskScorer.
func (s *aiTaskScorer) ScoreTask(ctx context.Context, task *models.Task, answer string) float64 {
	submission := s.resolveSubmissionText(answer)

	rubricContext := s.retrieveRubricContext(ctx, task)

	prompt := s.promptBuilder.BuildTaskReviewPrompt(
		task.Title,
		task.Instructions,
		string(task.Rubric),
		rubricContext,
		submission,
		float64(task.MaxScore),
	)

	response, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.3, s.maxRetries)
	if err != nil {
		log.Printf("⚠️  AI review failed for task %s, using flat score: %v", task.ID, err)
		return s.fallback.ScoreTask(ctx, task, answer)
	}

	result, err := parseReviewResponse(response)
	if err != nil {
		log.Printf("⚠️  Unparseable AI review for task %s, using flat score: %v", task.ID, err)
		return s.fallback.ScoreTask(ctx, task, answer)
	}

	return clampScore(result.Score, float64(task.MaxScore))
}

// Max implements TaskScorer.
func (s *aiTaskScorer) Max() float64 {
	return aiTaskMaxScore
}

// resolveSubmissionText turns an upload-task answer (a stored artifact
// filename) into reviewable text. Non-PDF answers pass through unchanged.
func (s *aiTaskScorer) resolveSubmissionText(answer string) string {
	if !strings.HasSuffix(strings.ToLower(answer), ".pdf") {
		return answer
	}

	text, err := s.parser.ExtractText(s.storage.ArtifactPath(answer))
	if err != nil {
		log.Printf("⚠️  Failed to extract artifact text from %s: %v", answer, err)
		return answer
	}
	return CleanText(text)
}

func (s *aiTaskScorer) retrieveRubricContext(ctx context.Context, task *models.Task) string {
	query := s.promptBuilder.BuildRubricQuery(task.Title, task.SkillTags)

	embedding, err := s.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("⚠️  Failed to embed rubric query for task %s: %v", task.ID, err)
		return "No relevant context found."
	}

	var matches []RubricMatch
	for _, skill := range task.SkillTags {
		found, err := s.rubricIndex.SearchRubrics(ctx, embedding, skill, 3)
		if err != nil {
			log.Printf("⚠️  Rubric search failed for skill %s: %v", skill, err)
			continue
		}
		matches = append(matches, found...)
	}
	if len(task.SkillTags) == 0 {
		found, err := s.rubricIndex.SearchRubrics(ctx, embedding, "", 3)
		if err != nil {
			log.Printf("⚠️  Rubric search failed: %v", err)
		} else {
			matches = found
		}
	}

	return FormatRubricContext(matches)
}

func parseReviewResponse(response string) (*ReviewResult, error) {
	jsonStr := extractJSON(response)

	var result ReviewResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w\nResponse: %s", err, response)
	}
	return &result, nil
}

func clampScore(score, max float64) float64 {
	if score < 0 {
		return 0
	}
	if score > max {
		return max
	}
	return score
}

// extractJSON pulls a JSON object out of text the LLM may have wrapped in
// markdown fencing.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
