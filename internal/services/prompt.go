package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnswerReviewPrompt creates the prompt for reviewing a short or code
// answer against its question.
func (pb *PromptBuilder) BuildAnswerReviewPrompt(questionText, questionType, answer string) string {
	return fmt.Sprintf(`You are an expert technical assessor grading a candidate's %s answer in a skills assessment.

QUESTION:
%s

CANDIDATE'S ANSWER:
%s

Your task is to grade the answer on a 0-10 scale where 10 is a complete, correct answer and 0 is irrelevant or empty.

Return your response in the following JSON format:
{
  "score": <0-10>,
  "feedback": "<2-3 sentences explaining the score>"
}

Be objective. Partial credit is expected for partially correct answers.`,
		questionType, questionText, answer)
}

// BuildTaskReviewPrompt creates the prompt for reviewing a task submission
// against its instructions and rubric.
func (pb *PromptBuilder) BuildTaskReviewPrompt(taskTitle, instructions, rubric, rubricContext, submission string, maxScore float64) string {
	return fmt.Sprintf(`You are an expert reviewer grading a candidate's task submission in a skills assessment.

TASK: %s

INSTRUCTIONS:
%s

SCORING RUBRIC:
%s

RELATED RUBRIC CONTEXT:
%s

CANDIDATE'S SUBMISSION:
%s

Your task is to grade the submission on a 0-%.0f scale using the rubric.

Return your response in the following JSON format:
{
  "score": <0-%.0f>,
  "feedback": "<3-5 sentences explaining strengths and gaps>"
}

Be thorough and specific. Reference actual details from the submission.`,
		taskTitle, instructions, rubric, rubricContext, submission, maxScore, maxScore)
}

// BuildRubricQuery creates the retrieval query for rubric context.
func (pb *PromptBuilder) BuildRubricQuery(taskTitle string, skills []string) string {
	if len(skills) > 0 {
		return fmt.Sprintf("Grading criteria for %s (%s)", taskTitle, strings.Join(skills, ", "))
	}
	return fmt.Sprintf("Grading criteria for %s", taskTitle)
}

// FormatRubricContext flattens rubric matches for prompt injection.
func FormatRubricContext(matches []RubricMatch) string {
	if len(matches) == 0 {
		return "No relevant context found."
	}

	var parts []string
	for i, match := range matches {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, match.Score, strings.TrimSpace(match.Text)))
	}

	return strings.Join(parts, "\n\n")
}
