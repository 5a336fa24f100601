package admin

import (
	"context"
	"errors"
	"strings"

	"restoran-inventory/internal/apperr"
	"restoran-inventory/internal/ident"
	"restoran-inventory/internal/logger"
	"restoran-inventory/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BranchService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewBranchService(db *gorm.DB, log *zap.Logger) *BranchService {
	return &BranchService{db: db, log: logger.OrNop(log)}
}

type BranchInput struct {
	BranchID   string // generated when empty
	BranchName string
	Address    string
	Postcode   string
	Phone      string
}

// BranchPatch only touches the fields that are set.
type BranchPatch struct {
	BranchName *string
	Address    *string
	Postcode   *string
	Phone      *string
}

func (s *BranchService) List(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	if err := s.db.WithContext(ctx).Order("branch_id").Find(&branches).Error; err != nil {
		return nil, apperr.Storage("list branches", err)
	}
	return branches, nil
}

func (s *BranchService) Get(ctx context.Context, branchID string) (*models.Branch, error) {
	branch, err := findBranch(s.db.WithContext(ctx), branchID)
	if err != nil {
		return nil, apperr.Storage("get branch", err)
	}
	if branch == nil {
		return nil, apperr.NotFound("branch %s", branchID)
	}
	return branch, nil
}

// Create stores a new branch. An explicit BranchID is kept as given; otherwise
// the next B-number is derived inside the same transaction as the insert.
func (s *BranchService) Create(ctx context.Context, in BranchInput) (*models.Branch, error) {
	branch := models.Branch{
		BranchName: strings.TrimSpace(in.BranchName),
		Address:    strings.TrimSpace(in.Address),
		Postcode:   strings.TrimSpace(in.Postcode),
		Phone:      strings.TrimSpace(in.Phone),
	}
	if branch.BranchName == "" {
		return nil, apperr.Invalid("branch name is required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		last, err := ident.LastID(ctx, tx, &models.Branch{}, "branch_id")
		if err != nil {
			return err
		}
		branch.ID = ident.Resolve(in.BranchID, ident.BranchPrefix, last)

		existing, err := findBranch(tx, branch.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.Invalid("branch %s already exists", branch.ID)
		}
		return tx.Create(&branch).Error
	})
	if err != nil {
		return nil, apperr.Storage("create branch", err)
	}

	s.log.Info("branch created", zap.String("branch_id", branch.ID))
	return &branch, nil
}

// Update applies patch to an existing branch. A missing branch is not an
// error: it returns nil, nil.
func (s *BranchService) Update(ctx context.Context, branchID string, patch BranchPatch) (*models.Branch, error) {
	var updated *models.Branch
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		branch, err := findBranch(tx, branchID)
		if err != nil || branch == nil {
			return err
		}

		if patch.BranchName != nil {
			name := strings.TrimSpace(*patch.BranchName)
			if name == "" {
				return apperr.Invalid("branch name is required")
			}
			branch.BranchName = name
		}
		if patch.Address != nil {
			branch.Address = strings.TrimSpace(*patch.Address)
		}
		if patch.Postcode != nil {
			branch.Postcode = strings.TrimSpace(*patch.Postcode)
		}
		if patch.Phone != nil {
			branch.Phone = strings.TrimSpace(*patch.Phone)
		}

		if err := tx.Save(branch).Error; err != nil {
			return err
		}
		updated = branch
		return nil
	})
	if err != nil {
		return nil, apperr.Storage("update branch", err)
	}
	return updated, nil
}

// Delete removes a branch. Deleting a missing branch is a no-op; a branch that
// still has stock, transfers or admins is refused with ErrInUse.
func (s *BranchService) Delete(ctx context.Context, branchID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs := []struct {
			model any
			where string
			args  []any
			what  string
		}{
			{&models.Stock{}, "branch_id = ?", []any{branchID}, "stock"},
			{&models.Transfer{}, "from_branch = ? OR to_branch = ?", []any{branchID, branchID}, "transfers"},
			{&models.User{}, "branch_id = ?", []any{branchID}, "users"},
		}
		for _, ref := range refs {
			var n int64
			if err := tx.Model(ref.model).Where(ref.where, ref.args...).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return apperr.InUse("branch %s still has %s", branchID, ref.what)
			}
		}
		return tx.Delete(&models.Branch{}, "branch_id = ?", branchID).Error
	})
	if err != nil {
		return apperr.Storage("delete branch", err)
	}
	return nil
}

// Validate checks the identifier format before looking the branch up.
func (s *BranchService) Validate(ctx context.Context, branchID string) (bool, error) {
	branchID = strings.TrimSpace(branchID)
	if !ident.IsBranchID(branchID) {
		return false, apperr.Invalid("branch id %q must start with %s", branchID, ident.BranchPrefix)
	}
	branch, err := findBranch(s.db.WithContext(ctx), branchID)
	if err != nil {
		return false, apperr.Storage("validate branch", err)
	}
	return branch != nil, nil
}

func findBranch(tx *gorm.DB, branchID string) (*models.Branch, error) {
	var branch models.Branch
	err := tx.Where("branch_id = ?", branchID).First(&branch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &branch, nil
}
