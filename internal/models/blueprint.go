package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BlueprintKind string

const (
	KindInternship BlueprintKind = "internship"
	KindGig        BlueprintKind = "gig"
)

// Blueprint declares how an assessment is assembled: how many items of each
// type, from which pool slices, within what duration. Blueprints are treated
// as immutable once an assessment references them; rule changes mean a new
// blueprint.
type Blueprint struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name            string         `gorm:"type:text;not null" json:"name"`
	Kind            BlueprintKind  `gorm:"type:text;not null" json:"kind"`
	RoleID          *uuid.UUID     `gorm:"type:uuid" json:"role_id,omitempty"`
	Rules           datatypes.JSON `gorm:"type:jsonb;not null" json:"rules"`
	DurationMinutes int            `gorm:"not null;default:60" json:"duration_minutes"`
	CreatedAt       time.Time      `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (Blueprint) TableName() string {
	return "assessment_blueprints"
}

// InternshipRules is the rule document for internship blueprints, e.g.
// {"mcq": 12, "short": 2, "code": {"enabled": true, "languages": ["python"]}}.
type InternshipRules struct {
	MCQCount   int      `json:"mcq" validate:"min=0"`
	ShortCount int      `json:"short" validate:"min=0"`
	Code       CodeRule `json:"code"`
}

type CodeRule struct {
	Enabled   bool     `json:"enabled"`
	Languages []string `json:"languages,omitempty"`
}

// GigRules is the rule document for gig blueprints: an ordered section list.
type GigRules struct {
	Sections []BlueprintSection `json:"sections" validate:"required,min=1,dive"`
}

type BlueprintSection struct {
	Type        string              `json:"type" validate:"required,oneof=upload critique mcq short code"`
	Count       int                 `json:"count" validate:"min=1"`
	Skills      []string            `json:"skills,omitempty"`
	Constraints *SectionConstraints `json:"constraints,omitempty"`
}

type SectionConstraints struct {
	LanguageOpts []string `json:"language_opts,omitempty"`
}

// InternshipRuleDoc decodes the rules column for an internship blueprint.
func (b *Blueprint) InternshipRuleDoc() (*InternshipRules, error) {
	if b.Kind != KindInternship {
		return nil, fmt.Errorf("blueprint %s is not an internship blueprint", b.ID)
	}
	var rules InternshipRules
	if err := json.Unmarshal(b.Rules, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode internship rules: %w", err)
	}
	return &rules, nil
}

// GigRuleDoc decodes the rules column for a gig blueprint.
func (b *Blueprint) GigRuleDoc() (*GigRules, error) {
	if b.Kind != KindGig {
		return nil, fmt.Errorf("blueprint %s is not a gig blueprint", b.ID)
	}
	var rules GigRules
	if err := json.Unmarshal(b.Rules, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode gig rules: %w", err)
	}
	return &rules, nil
}
