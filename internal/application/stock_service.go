package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// StockService covers stock registration, direct replenishment that involves
// no counter-party (egg lays, packaging top-ups) and the read-side queries.
// Purchases and sales go through the TransactionCoordinator because they also
// post ledger entries.
type StockService struct {
	uow               domain.UnitOfWork
	materials         domain.RawMaterialRepository
	feeds             domain.FinishedFeedRepository
	eggs              domain.EggStockRepository
	packaging         domain.PackagingStockRepository
	baseCurrency      string
	secondaryCurrency string
	logger            *zap.Logger
}

// NewStockService creates a StockService.
func NewStockService(
	uow domain.UnitOfWork,
	materials domain.RawMaterialRepository,
	feeds domain.FinishedFeedRepository,
	eggs domain.EggStockRepository,
	packaging domain.PackagingStockRepository,
	baseCurrency, secondaryCurrency string,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		uow:               uow,
		materials:         materials,
		feeds:             feeds,
		eggs:              eggs,
		packaging:         packaging,
		baseCurrency:      baseCurrency,
		secondaryCurrency: secondaryCurrency,
		logger:            logger.Named("stock"),
	}
}

// CreateMaterial registers a raw material with empty stock.
func (s *StockService) CreateMaterial(ctx context.Context, cmd CreateMaterialCommand) (*domain.RawMaterial, error) {
	material, err := domain.NewRawMaterial(cmd.Name, cmd.Unit, s.baseCurrency, s.secondaryCurrency, cmd.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	err = s.uow.Execute(ctx, func(tx domain.Tx) error {
		return s.materials.Save(tx, material)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("raw material created", zap.String("materialId", material.MaterialID), zap.String("name", material.Name))
	return material, nil
}

// CreateFeed registers a finished feed with empty stock.
func (s *StockService) CreateFeed(ctx context.Context, cmd CreateFeedCommand) (*domain.FinishedFeed, error) {
	feed, err := domain.NewFinishedFeed(cmd.Name, s.baseCurrency, s.secondaryCurrency, cmd.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	err = s.uow.Execute(ctx, func(tx domain.Tx) error {
		return s.feeds.Save(tx, feed)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("finished feed created", zap.String("feedId", feed.FeedID), zap.String("name", feed.Name))
	return feed, nil
}

// AddEggLay records produced eggs into one grade.
func (s *StockService) AddEggLay(ctx context.Context, cmd AddEggLayCommand) (*domain.EggStock, error) {
	costBase, err := domain.NewMoney(cmd.UnitCostBase, s.baseCurrency)
	if err != nil {
		return nil, err
	}
	costSecondary, err := domain.NewMoney(cmd.UnitCostSecondary, s.secondaryCurrency)
	if err != nil {
		return nil, err
	}

	var stock *domain.EggStock
	err = s.uow.Execute(ctx, func(tx domain.Tx) error {
		var err error
		stock, err = s.eggStock(tx.Context())
		if err != nil {
			return err
		}
		if err := stock.AddLay(cmd.Grade, cmd.Count, costBase, costSecondary); err != nil {
			return err
		}
		return s.eggs.Save(tx, stock)
	})
	if err != nil {
		return nil, err
	}
	return stock, nil
}

// ReplenishPackaging adds cartons and trays to packaging stock.
func (s *StockService) ReplenishPackaging(ctx context.Context, cmd ReplenishPackagingCommand) (*domain.PackagingStock, error) {
	costCarton, err := domain.NewMoney(cmd.UnitCostCarton, s.baseCurrency)
	if err != nil {
		return nil, err
	}
	costTray, err := domain.NewMoney(cmd.UnitCostTray, s.baseCurrency)
	if err != nil {
		return nil, err
	}

	var stock *domain.PackagingStock
	err = s.uow.Execute(ctx, func(tx domain.Tx) error {
		var err error
		stock, err = s.packagingStock(tx.Context())
		if err != nil {
			return err
		}
		if err := stock.Replenish(cmd.Cartons, cmd.Trays, costCarton, costTray); err != nil {
			return err
		}
		return s.packaging.Save(tx, stock)
	})
	if err != nil {
		return nil, err
	}
	return stock, nil
}

// Materials lists all raw materials.
func (s *StockService) Materials(ctx context.Context) ([]*domain.RawMaterial, error) {
	return s.materials.FindAll(ctx)
}

// Material returns one raw material.
func (s *StockService) Material(ctx context.Context, materialID string) (*domain.RawMaterial, error) {
	material, err := s.materials.FindByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, fmt.Errorf("material %s: %w", materialID, domain.ErrMaterialNotFound)
	}
	return material, nil
}

// Feeds lists all finished feeds.
func (s *StockService) Feeds(ctx context.Context) ([]*domain.FinishedFeed, error) {
	return s.feeds.FindAll(ctx)
}

// EggStock returns the egg stock aggregate, creating the empty one on first
// access.
func (s *StockService) EggStock(ctx context.Context) (*domain.EggStock, error) {
	return s.eggStock(ctx)
}

// PackagingStock returns the packaging aggregate, creating the empty one on
// first access.
func (s *StockService) PackagingStock(ctx context.Context) (*domain.PackagingStock, error) {
	return s.packagingStock(ctx)
}

// LowStockReport lists every stock item at or below its threshold.
func (s *StockService) LowStockReport(ctx context.Context) (*LowStockReport, error) {
	report := &LowStockReport{}

	materials, err := s.materials.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range materials {
		if m.IsLowStock() {
			report.Materials = append(report.Materials, m)
		}
	}

	feeds, err := s.feeds.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range feeds {
		if f.IsLowStock() {
			report.Feeds = append(report.Feeds, f)
		}
	}

	eggs, err := s.eggStock(ctx)
	if err != nil {
		return nil, err
	}
	for _, grade := range []domain.EggGrade{domain.EggLarge, domain.EggMedium, domain.EggSmall} {
		if eggs.Grade(grade).IsLowStock() {
			report.EggGrades = append(report.EggGrades, grade)
		}
	}

	packaging, err := s.packagingStock(ctx)
	if err != nil {
		return nil, err
	}
	report.PackagingLow = packaging.IsLowStock()

	return report, nil
}

func (s *StockService) eggStock(ctx context.Context) (*domain.EggStock, error) {
	stock, err := s.eggs.Find(ctx)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		stock = domain.NewEggStock(s.baseCurrency, s.secondaryCurrency)
	}
	return stock, nil
}

func (s *StockService) packagingStock(ctx context.Context) (*domain.PackagingStock, error) {
	stock, err := s.packaging.Find(ctx)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		stock = domain.NewPackagingStock(s.baseCurrency)
	}
	return stock, nil
}

// LowStockReport aggregates everything at or below its low-stock threshold.
type LowStockReport struct {
	Materials    []*domain.RawMaterial   `json:"materials"`
	Feeds        []*domain.FinishedFeed  `json:"feeds"`
	EggGrades    []domain.EggGrade       `json:"eggGrades"`
	PackagingLow bool                    `json:"packagingLow"`
}
