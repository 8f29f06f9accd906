package repositories

import (
	"errors"

	"reliefhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProgramNotFound  = errors.New("program not found")
	ErrAlreadyMember    = errors.New("volunteer already joined this program")
	ErrProgramNotActive = errors.New("program is not active")
)

type ProgramRepository interface {
	Create(program *models.Program) error
	FindByID(id string) (*models.Program, error)
	FindAll(status models.ProgramStatus) ([]models.Program, error)

	// UpdateStatus is a guarded transition: it only fires while the program
	// is still active. Returns ErrProgramNotActive when the guard misses.
	UpdateStatus(programID string, status models.ProgramStatus) error

	// Membership operations. CreateMembership relies on the composite unique
	// index; a duplicate insert comes back as ErrAlreadyMember.
	CreateMembership(membership *models.ProgramMembership) error
	MembershipExists(programID, volunteerID string) (bool, error)
	FindMemberIDs(programID string) ([]string, error)
	FindMembers(programID string) ([]models.Profile, error)
	CountMembers(programID string) (int64, error)
}

type ProgramRepositoryImpl struct {
	db *gorm.DB
}

func NewProgramRepository(db *gorm.DB) ProgramRepository {
	return &ProgramRepositoryImpl{db: db}
}

func (r *ProgramRepositoryImpl) Create(program *models.Program) error {
	return r.db.Create(program).Error
}

func (r *ProgramRepositoryImpl) FindByID(id string) (*models.Program, error) {
	var program models.Program
	err := r.db.First(&program, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return &program, nil
}

func (r *ProgramRepositoryImpl) FindAll(status models.ProgramStatus) ([]models.Program, error) {
	var programs []models.Program
	q := r.db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&programs).Error
	return programs, err
}

func (r *ProgramRepositoryImpl) UpdateStatus(programID string, status models.ProgramStatus) error {
	result := r.db.Model(&models.Program{}).
		Where("id = ? AND status = ?", programID, models.ProgramStatusActive).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the program does not exist or it already left the active state.
		if _, err := r.FindByID(programID); err != nil {
			return err
		}
		return ErrProgramNotActive
	}
	return nil
}

func (r *ProgramRepositoryImpl) CreateMembership(membership *models.ProgramMembership) error {
	err := r.db.Create(membership).Error
	if err != nil && isUniqueViolation(err) {
		return ErrAlreadyMember
	}
	return err
}

func (r *ProgramRepositoryImpl) MembershipExists(programID, volunteerID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProgramMembership{}).
		Where("program_id = ? AND volunteer_id = ?", programID, volunteerID).
		Count(&count).Error
	return count > 0, err
}

func (r *ProgramRepositoryImpl) FindMemberIDs(programID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.ProgramMembership{}).
		Where("program_id = ?", programID).
		Pluck("volunteer_id", &ids).Error
	return ids, err
}

func (r *ProgramRepositoryImpl) FindMembers(programID string) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.
		Joins("JOIN program_memberships ON program_memberships.volunteer_id = profiles.user_id").
		Where("program_memberships.program_id = ?", programID).
		Find(&profiles).Error
	return profiles, err
}

func (r *ProgramRepositoryImpl) CountMembers(programID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProgramMembership{}).
		Where("program_id = ?", programID).
		Count(&count).Error
	return count, err
}
