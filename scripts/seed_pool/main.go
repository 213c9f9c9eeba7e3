package main

import (
	"encoding/json"
	"log"

	"gorm.io/datatypes"

	"alfredoptarigan/skillbridge-assessment/internal/config"
	"alfredoptarigan/skillbridge-assessment/internal/models"
)

func main() {
	log.Println("🚀 Starting pool seeding...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Apply-time skill dropdown
	skillNames := []string{"Algorithms", "CSS", "Django", "JavaScript", "Python", "React"}
	for _, name := range skillNames {
		skill := models.AssessmentSkill{Name: name}
		if err := db.Where(models.AssessmentSkill{Name: name}).FirstOrCreate(&skill).Error; err != nil {
			log.Fatalf("❌ Failed to seed skill %s: %v", name, err)
		}
	}
	log.Printf("✅ Seeded %d assessment skills", len(skillNames))

	// Gig role profiles
	roles := []models.RoleProfile{
		{Key: "designer", Name: "Designer", Description: "Graphic and UI design gigs"},
		{Key: "video_editor", Name: "Video Editor", Description: "Video editing and motion gigs"},
		{Key: "web_developer", Name: "Web Developer", Description: "Web development gigs"},
	}
	for i := range roles {
		if err := db.Where(models.RoleProfile{Key: roles[i].Key}).FirstOrCreate(&roles[i]).Error; err != nil {
			log.Fatalf("❌ Failed to seed role %s: %v", roles[i].Key, err)
		}
	}
	log.Printf("✅ Seeded %d role profiles", len(roles))

	// MCQs: tagged per skill plus untagged fundamentals for backfill
	questions := []models.Question{
		{
			Type: models.QuestionMCQ, Section: models.SectionTechnical, Active: true,
			Text:      "Which data structure gives O(1) average lookup by key?",
			SkillTags: []string{"Algorithms", "Python"},
			Choices: []models.Choice{
				{Key: "A", Text: "Linked list"}, {Key: "B", Text: "Hash map"},
				{Key: "C", Text: "Binary tree"}, {Key: "D", Text: "Stack"},
			},
			AnswerKey: "B",
		},
		{
			Type: models.QuestionMCQ, Section: models.SectionTechnical, Active: true,
			Text:      "Which hook runs after every render of a React component by default?",
			SkillTags: []string{"React", "JavaScript"},
			Choices: []models.Choice{
				{Key: "A", Text: "useState"}, {Key: "B", Text: "useMemo"},
				{Key: "C", Text: "useEffect"}, {Key: "D", Text: "useRef"},
			},
			AnswerKey: "C",
		},
		{
			Type: models.QuestionMCQ, Section: models.SectionTechnical, Active: true,
			Text:      "In Django, which command applies pending database migrations?",
			SkillTags: []string{"Django", "Python"},
			Choices: []models.Choice{
				{Key: "A", Text: "migrate"}, {Key: "B", Text: "makemigrations"},
				{Key: "C", Text: "syncdb"}, {Key: "D", Text: "runserver"},
			},
			AnswerKey: "A",
		},
		{
			Type: models.QuestionMCQ, Section: models.SectionTechnical, Active: true,
			Text:      "Which CSS property controls the stacking order of positioned elements?",
			SkillTags: []string{"CSS"},
			Choices: []models.Choice{
				{Key: "A", Text: "order"}, {Key: "B", Text: "position"},
				{Key: "C", Text: "z-index"}, {Key: "D", Text: "float"},
			},
			AnswerKey: "C",
		},
		{
			Type: models.QuestionMCQ, Section: models.SectionAptitude, Active: true,
			Text: "If 3 workers finish a job in 12 days, how many days do 4 workers need at the same rate?",
			Choices: []models.Choice{
				{Key: "A", Text: "9"}, {Key: "B", Text: "8"},
				{Key: "C", Text: "10"}, {Key: "D", Text: "16"},
			},
			AnswerKey: "A",
		},
		{
			Type: models.QuestionMCQ, Section: models.SectionHR, Active: true,
			Text: "A teammate repeatedly misses handoffs that block your work. What is the best first step?",
			Choices: []models.Choice{
				{Key: "A", Text: "Escalate to their manager"}, {Key: "B", Text: "Talk to them directly about the impact"},
				{Key: "C", Text: "Do their part yourself"}, {Key: "D", Text: "Ignore it"},
			},
			AnswerKey: "B",
		},
	}

	// Short answers (skill-agnostic)
	questions = append(questions,
		models.Question{
			Type: models.QuestionShort, Section: models.SectionTechnical, Active: true,
			Text: "Explain the difference between an interface and a concrete implementation, with one example.",
		},
		models.Question{
			Type: models.QuestionShort, Section: models.SectionHR, Active: true,
			Text: "Describe a project you are proud of and your specific contribution to it.",
		},
	)

	// Code questions per language
	pyTests, _ := json.Marshal([]map[string]string{
		{"input": "[2, 7, 11], 9", "expected": "[0, 1]"},
	})
	jsTests, _ := json.Marshal([]map[string]string{
		{"input": "'listen', 'silent'", "expected": "true"},
	})
	questions = append(questions,
		models.Question{
			Type: models.QuestionCode, Section: models.SectionTechnical, Active: true,
			Text:        "Return indices of the two numbers that add up to the target.",
			SkillTags:   []string{"Python", "Algorithms"},
			Language:    "python",
			StarterCode: "def two_sum(nums, target):\n    pass\n",
			Tests:       datatypes.JSON(pyTests),
		},
		models.Question{
			Type: models.QuestionCode, Section: models.SectionTechnical, Active: true,
			Text:        "Return true when the two strings are anagrams of each other.",
			SkillTags:   []string{"JavaScript", "Algorithms"},
			Language:    "javascript",
			StarterCode: "function isAnagram(a, b) {\n}\n",
			Tests:       datatypes.JSON(jsTests),
		},
	)

	for i := range questions {
		if err := db.Where(models.Question{Text: questions[i].Text}).
			FirstOrCreate(&questions[i]).Error; err != nil {
			log.Fatalf("❌ Failed to seed question: %v", err)
		}
	}
	log.Printf("✅ Seeded %d questions", len(questions))

	// Gig tasks
	designRubric, _ := json.Marshal(map[string]string{
		"composition": "Layout balance and visual hierarchy",
		"branding":    "Consistency with the provided brand brief",
	})
	critiqueRubric, _ := json.Marshal(map[string]string{
		"depth":       "Identifies concrete usability problems",
		"suggestions": "Proposes actionable improvements",
	})
	tasks := []models.Task{
		{
			Type: models.TaskUpload, Active: true,
			RoleID:       &roles[0].ID,
			Title:        "Landing page banner",
			Instructions: "Design a banner for a student job fair landing page and upload it as a PDF export.",
			ArtifactType: "pdf",
			SkillTags:    []string{"CSS"},
			Rubric:       datatypes.JSON(designRubric),
			MaxScore:     10,
		},
		{
			Type: models.TaskCritique, Active: true,
			RoleID:       &roles[2].ID,
			Title:        "Checkout flow critique",
			Instructions: "Review the provided checkout flow screenshots and write a critique of its usability.",
			SkillTags:    []string{"JavaScript", "React"},
			Rubric:       datatypes.JSON(critiqueRubric),
			MaxScore:     10,
		},
	}
	for i := range tasks {
		if err := db.Where(models.Task{Title: tasks[i].Title}).FirstOrCreate(&tasks[i]).Error; err != nil {
			log.Fatalf("❌ Failed to seed task: %v", err)
		}
	}
	log.Printf("✅ Seeded %d tasks", len(tasks))

	// Blueprints
	internshipRules, _ := json.Marshal(models.InternshipRules{
		MCQCount:   4,
		ShortCount: 2,
		Code:       models.CodeRule{Enabled: true, Languages: []string{"python", "javascript"}},
	})
	gigRules, _ := json.Marshal(models.GigRules{
		Sections: []models.BlueprintSection{
			{Type: "upload", Count: 1},
			{Type: "mcq", Count: 2, Skills: []string{"CSS", "JavaScript"}},
		},
	})
	blueprints := []models.Blueprint{
		{
			Name:            "Internship screening",
			Kind:            models.KindInternship,
			Rules:           datatypes.JSON(internshipRules),
			DurationMinutes: 60,
		},
		{
			Name:            "Designer gig screening",
			Kind:            models.KindGig,
			RoleID:          &roles[0].ID,
			Rules:           datatypes.JSON(gigRules),
			DurationMinutes: 45,
		},
	}
	for i := range blueprints {
		if err := db.Where(models.Blueprint{Name: blueprints[i].Name}).
			FirstOrCreate(&blueprints[i]).Error; err != nil {
			log.Fatalf("❌ Failed to seed blueprint: %v", err)
		}
	}
	log.Printf("✅ Seeded %d blueprints", len(blueprints))

	// Demo application for local end-to-end runs
	student := models.StudentProfile{
		FullName: "Demo Student",
		Email:    "demo.student@example.com",
		Skills:   []string{"Python", "React"},
	}
	if err := db.Where(models.StudentProfile{Email: student.Email}).FirstOrCreate(&student).Error; err != nil {
		log.Fatalf("❌ Failed to seed student: %v", err)
	}
	job := models.Job{
		Title:         "Backend Intern",
		EmployerName:  "Acme Corp",
		EmployerEmail: "hiring@acme.example.com",
		JobType:       "internship",
	}
	if err := db.Where(models.Job{Title: job.Title, EmployerName: job.EmployerName}).FirstOrCreate(&job).Error; err != nil {
		log.Fatalf("❌ Failed to seed job: %v", err)
	}
	application := models.Application{
		StudentID: student.ID,
		JobID:     job.ID,
		Status:    "applied",
	}
	if err := db.Where(models.Application{StudentID: student.ID, JobID: job.ID}).
		FirstOrCreate(&application).Error; err != nil {
		log.Fatalf("❌ Failed to seed application: %v", err)
	}
	log.Printf("✅ Seeded demo application %s", application.ID)

	log.Println("🎉 Pool seeding completed")
}
