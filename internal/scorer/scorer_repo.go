package scorer

import (
	"errors"

	"gorm.io/gorm"
)

// ScorerRepository defines the interface for scorer account data operations
type ScorerRepository interface {
	CreateScorer(scorer *Scorer) error
	GetScorerByID(id uint) (*Scorer, error)
	GetScorerByEmail(email string) (*Scorer, error)
	UpdateScorer(scorer *Scorer) error
}

type scorerRepository struct {
	db *gorm.DB
}

// NewScorerRepository creates a new instance of ScorerRepository
func NewScorerRepository(db *gorm.DB) ScorerRepository {
	return &scorerRepository{db: db}
}

func (r *scorerRepository) CreateScorer(scorer *Scorer) error {
	return r.db.Create(scorer).Error
}

func (r *scorerRepository) GetScorerByID(id uint) (*Scorer, error) {
	var scorer Scorer
	if err := r.db.First(&scorer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &scorer, nil
}

func (r *scorerRepository) GetScorerByEmail(email string) (*Scorer, error) {
	var scorer Scorer
	if err := r.db.Where("email = ?", email).First(&scorer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &scorer, nil
}

func (r *scorerRepository) UpdateScorer(scorer *Scorer) error {
	return r.db.Save(scorer).Error
}
