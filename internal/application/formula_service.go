package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// FormulaService manages feed formulas. Every ingredient must reference an
// existing raw material, and the 100% gate is enforced again at production
// time so an edited formula can never consume stock while invalid.
type FormulaService struct {
	uow       domain.UnitOfWork
	formulas  domain.FormulaRepository
	materials domain.RawMaterialRepository
	logger    *zap.Logger
}

// NewFormulaService creates a FormulaService.
func NewFormulaService(
	uow domain.UnitOfWork,
	formulas domain.FormulaRepository,
	materials domain.RawMaterialRepository,
	logger *zap.Logger,
) *FormulaService {
	return &FormulaService{
		uow:       uow,
		formulas:  formulas,
		materials: materials,
		logger:    logger.Named("formula"),
	}
}

// Create registers a formula after checking every ingredient material exists.
func (s *FormulaService) Create(ctx context.Context, cmd CreateFormulaCommand) (*domain.FeedFormula, error) {
	formula, err := domain.NewFeedFormula(cmd.Name, cmd.Ingredients)
	if err != nil {
		return nil, err
	}
	if err := formula.Validate(); err != nil {
		return nil, err
	}

	for _, ing := range formula.Ingredients {
		material, err := s.materials.FindByID(ctx, ing.MaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, fmt.Errorf("ingredient %s: %w", ing.MaterialID, domain.ErrMaterialNotFound)
		}
	}

	err = s.uow.Execute(ctx, func(tx domain.Tx) error {
		return s.formulas.Save(tx, formula)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("formula created",
		zap.String("formulaId", formula.FormulaID),
		zap.String("name", formula.Name),
		zap.Int("ingredients", len(formula.Ingredients)))
	return formula, nil
}

// Get returns one formula.
func (s *FormulaService) Get(ctx context.Context, formulaID string) (*domain.FeedFormula, error) {
	formula, err := s.formulas.FindByID(ctx, formulaID)
	if err != nil {
		return nil, err
	}
	if formula == nil {
		return nil, fmt.Errorf("formula %s: %w", formulaID, domain.ErrFormulaNotFound)
	}
	return formula, nil
}

// List returns all formulas.
func (s *FormulaService) List(ctx context.Context) ([]*domain.FeedFormula, error) {
	return s.formulas.FindAll(ctx)
}
