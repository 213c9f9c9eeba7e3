package services

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/skillbridge-assessment/internal/models"
	"alfredoptarigan/skillbridge-assessment/internal/repositories"
)

// Selection is the interpreter's output: the pool items to freeze into an
// assessment. Internship blueprints never select tasks.
type Selection struct {
	Questions []models.Question
	Tasks     []models.Task
}

// SelectorService interprets a blueprint's rule document into a bounded
// selection of active pool items. Under-supplied pools are never an error:
// the selection simply comes back short.
type SelectorService interface {
	Select(blueprint *models.Blueprint, skills []string) (*Selection, error)
}

type selectorService struct {
	poolRepo repositories.PoolRepository

	// rng is injectable so selection is deterministic under test. Guarded
	// because selections for different assessments may run concurrently.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSelectorService(poolRepo repositories.PoolRepository, rng *rand.Rand) SelectorService {
	return &selectorService{
		poolRepo: poolRepo,
		rng:      rng,
	}
}

// Select implements SelectorService. Returns models.ErrNoEligibleContent
// (with a valid, empty selection) when the blueprint matches nothing at all.
func (s *selectorService) Select(blueprint *models.Blueprint, skills []string) (*Selection, error) {
	var (
		selection *Selection
		err       error
	)

	switch blueprint.Kind {
	case models.KindInternship:
		selection, err = s.selectForInternship(blueprint, skills)
	case models.KindGig:
		selection, err = s.selectForGig(blueprint, skills)
	default:
		return nil, fmt.Errorf("unknown blueprint kind %q", blueprint.Kind)
	}
	if err != nil {
		return nil, err
	}

	if len(selection.Questions) == 0 && len(selection.Tasks) == 0 {
		return selection, models.ErrNoEligibleContent
	}
	return selection, nil
}

func (s *selectorService) selectForInternship(blueprint *models.Blueprint, skills []string) (*Selection, error) {
	rules, err := blueprint.InternshipRuleDoc()
	if err != nil {
		return nil, err
	}

	selection := &Selection{}

	// MCQ: skill-matched pool first, backfilled with untagged fundamentals
	// when the match is short of the requested count.
	mcqPool, err := s.poolRepo.ActiveQuestionsByType(models.QuestionMCQ)
	if err != nil {
		return nil, err
	}
	matched := filterQuestionsBySkills(mcqPool, skills)
	pool := matched
	if len(matched) < rules.MCQCount {
		pool = append(append([]models.Question{}, matched...), untaggedQuestions(mcqPool)...)
	}
	selection.Questions = append(selection.Questions, s.sampleQuestions(pool, rules.MCQCount)...)

	// Short answers are skill-agnostic.
	shortPool, err := s.poolRepo.ActiveQuestionsByType(models.QuestionShort)
	if err != nil {
		return nil, err
	}
	selection.Questions = append(selection.Questions, s.sampleQuestions(shortPool, rules.ShortCount)...)

	// At most one code question, filtered to the allowed languages.
	if rules.Code.Enabled {
		codePool, err := s.poolRepo.ActiveQuestionsByType(models.QuestionCode)
		if err != nil {
			return nil, err
		}
		if len(rules.Code.Languages) > 0 {
			codePool = filterQuestionsByLanguage(codePool, rules.Code.Languages)
		}
		selection.Questions = append(selection.Questions, s.sampleQuestions(codePool, 1)...)
	}

	return selection, nil
}

func (s *selectorService) selectForGig(blueprint *models.Blueprint, skills []string) (*Selection, error) {
	rules, err := blueprint.GigRuleDoc()
	if err != nil {
		return nil, err
	}

	selection := &Selection{}
	for _, section := range rules.Sections {
		switch section.Type {
		case "upload", "critique":
			pool, err := s.poolRepo.ActiveTasksByType(models.TaskType(section.Type))
			if err != nil {
				return nil, err
			}
			if blueprint.RoleID != nil {
				pool = filterTasksByRole(pool, *blueprint.RoleID)
			}
			if len(skills) > 0 {
				pool = filterTasksBySkills(pool, skills)
			}
			selection.Tasks = append(selection.Tasks, s.sampleTasks(pool, section.Count)...)

		case "mcq", "short", "code":
			pool, err := s.poolRepo.ActiveQuestionsByType(models.QuestionType(section.Type))
			if err != nil {
				return nil, err
			}
			if section.Type == "mcq" && len(section.Skills) > 0 {
				pool = filterQuestionsBySkills(pool, section.Skills)
			}
			if section.Type == "code" && section.Constraints != nil && len(section.Constraints.LanguageOpts) > 0 {
				pool = filterQuestionsByLanguage(pool, section.Constraints.LanguageOpts)
			}
			selection.Questions = append(selection.Questions, s.sampleQuestions(pool, section.Count)...)

		default:
			return nil, fmt.Errorf("unknown section type %q in blueprint %s", section.Type, blueprint.ID)
		}
	}

	return selection, nil
}

// sampleQuestions shuffles a copy of the pool and takes the first n. A pool
// smaller than n yields the whole pool.
func (s *selectorService) sampleQuestions(pool []models.Question, n int) []models.Question {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	shuffled := append([]models.Question{}, pool...)

	s.mu.Lock()
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	s.mu.Unlock()

	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func (s *selectorService) sampleTasks(pool []models.Task, n int) []models.Task {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	shuffled := append([]models.Task{}, pool...)

	s.mu.Lock()
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	s.mu.Unlock()

	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func tagsIntersect(tags, skills []string) bool {
	for _, tag := range tags {
		for _, skill := range skills {
			if tag == skill {
				return true
			}
		}
	}
	return false
}

func filterQuestionsBySkills(pool []models.Question, skills []string) []models.Question {
	var out []models.Question
	for _, q := range pool {
		if tagsIntersect(q.SkillTags, skills) {
			out = append(out, q)
		}
	}
	return out
}

func untaggedQuestions(pool []models.Question) []models.Question {
	var out []models.Question
	for _, q := range pool {
		if len(q.SkillTags) == 0 {
			out = append(out, q)
		}
	}
	return out
}

func filterQuestionsByLanguage(pool []models.Question, languages []string) []models.Question {
	var out []models.Question
	for _, q := range pool {
		for _, lang := range languages {
			if q.Language == lang {
				out = append(out, q)
				break
			}
		}
	}
	return out
}

func filterTasksByRole(pool []models.Task, roleID uuid.UUID) []models.Task {
	var out []models.Task
	for _, t := range pool {
		if t.RoleID != nil && *t.RoleID == roleID {
			out = append(out, t)
		}
	}
	return out
}

// filterTasksBySkills keeps tasks whose tags intersect the selection skills,
// plus untagged tasks (generic work applicable to any skill set).
func filterTasksBySkills(pool []models.Task, skills []string) []models.Task {
	var out []models.Task
	for _, t := range pool {
		if len(t.SkillTags) == 0 || tagsIntersect(t.SkillTags, skills) {
			out = append(out, t)
		}
	}
	return out
}
