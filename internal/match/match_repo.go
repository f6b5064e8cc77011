package match

import (
	"errors"

	"gorm.io/gorm"
)

// MatchRepository defines methods to interact with match-related data
type MatchRepository interface {
	CreateMatch(match *Match) error
	GetMatchByID(id uint) (*Match, error)
	GetMatchByPublicID(publicID string) (*Match, error)
	GetMatchByCode(code string) (*Match, error)
	GetMatches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error)
	GetScorerMatches(scorerID uint, status string, page, pageSize int) ([]Match, int64, error)
	UpdateMatch(match *Match) error
	DeleteMatch(id uint) error

	// Ledger methods
	SaveDelivery(delivery *Delivery) error
	DeleteDelivery(matchID uint, seq int) error

	// Transaction support
	WithTransaction(txFunc func(MatchRepository) error) error
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// WithTransaction implements transaction support
func (r *GormMatchRepository) WithTransaction(txFunc func(MatchRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&GormMatchRepository{db: tx})
	})
}

// CreateMatch creates a new match
func (r *GormMatchRepository) CreateMatch(match *Match) error {
	return r.db.Create(match).Error
}

// withMatchGraph preloads everything the engine needs to rebuild state:
// both rosters and the full ledger in sequence order.
func withMatchGraph(db *gorm.DB) *gorm.DB {
	return db.Preload("Team1.Players").
		Preload("Team2.Players").
		Preload("Deliveries", func(db *gorm.DB) *gorm.DB {
			return db.Order("deliveries.seq ASC")
		})
}

// GetMatchByID retrieves a match by ID with rosters and ledger
func (r *GormMatchRepository) GetMatchByID(id uint) (*Match, error) {
	var match Match
	result := withMatchGraph(r.db).First(&match, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &match, nil
}

// GetMatchByPublicID retrieves a match by its public UUID
func (r *GormMatchRepository) GetMatchByPublicID(publicID string) (*Match, error) {
	var match Match
	result := withMatchGraph(r.db).Where("public_id = ?", publicID).First(&match)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &match, nil
}

// GetMatchByCode retrieves a match by its spectator join code
func (r *GormMatchRepository) GetMatchByCode(code string) (*Match, error) {
	var match Match
	result := withMatchGraph(r.db).Where("code = ?", code).First(&match)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &match, nil
}

// GetMatches retrieves matches based on filters with pagination
func (r *GormMatchRepository) GetMatches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{})
	for key, value := range filters {
		query = query.Where(key, value)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := query.Preload("Team1").
		Preload("Team2").
		Order("created_at desc").
		Offset(offset).Limit(pageSize).
		Find(&matches)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return matches, total, nil
}

// GetScorerMatches retrieves matches created by a specific scorer
func (r *GormMatchRepository) GetScorerMatches(scorerID uint, status string, page, pageSize int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{}).Where("created_by_scorer_id = ?", scorerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := query.Preload("Team1").
		Preload("Team2").
		Order("created_at desc").
		Offset(offset).Limit(pageSize).
		Find(&matches)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return matches, total, nil
}

// UpdateMatch persists the match row. Associations are saved separately so
// a state save cannot resurrect a popped delivery.
func (r *GormMatchRepository) UpdateMatch(match *Match) error {
	return r.db.Omit("Team1", "Team2", "Deliveries").Save(match).Error
}

// DeleteMatch soft-deletes a match
func (r *GormMatchRepository) DeleteMatch(id uint) error {
	return r.db.Delete(&Match{}, id).Error
}

// SaveDelivery persists one ledger entry
func (r *GormMatchRepository) SaveDelivery(delivery *Delivery) error {
	return r.db.Save(delivery).Error
}

// DeleteDelivery removes a ledger entry after an undo. Keyed by sequence
// because the in-memory entry may predate its own insert.
func (r *GormMatchRepository) DeleteDelivery(matchID uint, seq int) error {
	return r.db.Unscoped().Where("match_id = ? AND seq = ?", matchID, seq).Delete(&Delivery{}).Error
}
