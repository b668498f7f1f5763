package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/inventory-service/pkg/db"
	"github.com/angelmondragon/inventory-service/pkg/db/models"
	pkgerrors "github.com/angelmondragon/inventory-service/pkg/errors"
	"github.com/angelmondragon/inventory-service/pkg/logger"
	"github.com/angelmondragon/inventory-service/pkg/metrics"
	"gorm.io/gorm"
)

// Service exposes inventory record management and stock mutations.
type Service interface {
	List(ctx context.Context, criteria Criteria) ([]RecordDTO, error)
	Get(ctx context.Context, key Key) (*RecordDTO, error)
	Create(ctx context.Context, raw map[string]any) (*RecordDTO, error)
	Update(ctx context.Context, key Key, raw map[string]any) (*RecordDTO, error)
	Delete(ctx context.Context, key Key) error
	Checkout(ctx context.Context, key Key, raw map[string]any) (*RecordDTO, error)
	Reorder(ctx context.Context, key Key, raw map[string]any) (*RecordDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type stockMutation func(rec *models.InventoryRecord, ordered int, now time.Time) error

type service struct {
	repo    *Repository
	tx      txRunner
	metrics *metrics.StockMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService constructs the inventory service. stock may be nil.
func NewService(repo *Repository, tx txRunner, stock *metrics.StockMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		metrics: stock,
		logg:    logg,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) List(ctx context.Context, criteria Criteria) ([]RecordDTO, error) {
	var (
		recs []models.InventoryRecord
		err  error
	)
	if criteria.IsEmpty() {
		recs, err = s.repo.ListAll(ctx)
	} else {
		recs, err = s.repo.FilterBy(ctx, criteria)
	}
	if err != nil {
		return nil, internal(err, "list inventory records")
	}
	return SerializeAll(recs), nil
}

func (s *service) Get(ctx context.Context, key Key) (*RecordDTO, error) {
	rec, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, internal(err, "load inventory record")
	}
	if rec == nil {
		return nil, notFound(key)
	}
	dto := Serialize(rec)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, raw map[string]any) (*RecordDTO, error) {
	draft, err := Deserialize(raw)
	if err != nil {
		return nil, err
	}
	rec, err := draft.NewRecord(s.now())
	if err != nil {
		return nil, err
	}
	key := KeyOf(rec)
	ctx = s.logg.WithRecordKey(ctx, key.ProductID, key.Condition.String())

	existing, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, internal(err, "load inventory record")
	}
	if existing != nil {
		return nil, conflict(key)
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, conflict(key)
		}
		return nil, internal(err, "create inventory record")
	}

	s.logg.Info(ctx, "inventory.record.created")
	dto := Serialize(rec)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, key Key, raw map[string]any) (*RecordDTO, error) {
	ctx = s.logg.WithRecordKey(ctx, key.ProductID, key.Condition.String())

	var updated *models.InventoryRecord
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		rec, err := repo.FindByKey(ctx, key)
		if err != nil {
			return internal(err, "load inventory record")
		}
		if rec == nil {
			return notFound(key)
		}

		draft, err := Deserialize(raw)
		if err != nil {
			return err
		}
		draft.Apply(rec)
		rec.UpdatedAt = s.now()

		if err := repo.Save(ctx, rec); err != nil {
			return internal(err, "update inventory record")
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(ctx, "inventory.record.updated")
	dto := Serialize(updated)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, key Key) error {
	ctx = s.logg.WithRecordKey(ctx, key.ProductID, key.Condition.String())
	removed, err := s.repo.Delete(ctx, key)
	if err != nil {
		return internal(err, "delete inventory record")
	}
	if removed > 0 {
		s.logg.Info(ctx, "inventory.record.deleted")
	}
	return nil
}

func (s *service) Checkout(ctx context.Context, key Key, raw map[string]any) (*RecordDTO, error) {
	return s.mutate(ctx, metrics.OperationCheckout, key, raw, Checkout)
}

func (s *service) Reorder(ctx context.Context, key Key, raw map[string]any) (*RecordDTO, error) {
	return s.mutate(ctx, metrics.OperationReorder, key, raw, Reorder)
}

// mutate resolves the record, then validates the amount, then applies apply.
// The quantity write is guarded on the value read inside the transaction.
func (s *service) mutate(ctx context.Context, operation string, key Key, raw map[string]any, apply stockMutation) (*RecordDTO, error) {
	start := time.Now()
	ctx = s.logg.WithRecordKey(ctx, key.ProductID, key.Condition.String())

	var (
		result  *models.InventoryRecord
		ordered int
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		rec, err := repo.FindByKey(ctx, key)
		if err != nil {
			return internal(err, "load inventory record")
		}
		if rec == nil {
			return notFound(key)
		}

		ordered, err = ParseOrderedQuantity(raw)
		if err != nil {
			return err
		}

		previous := rec.Quantity
		if err := apply(rec, ordered, s.now()); err != nil {
			return err
		}
		if err := repo.SaveQuantity(ctx, rec, previous); err != nil {
			if errors.Is(err, ErrStaleRecord) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, fmt.Sprintf("inventory record %s changed concurrently, retry", key))
			}
			return internal(err, operation+" inventory record")
		}
		result = rec
		return nil
	})

	s.metrics.Observe(operation, outcomeFor(err), ordered, time.Since(start))
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"operation":        operation,
		"ordered_quantity": ordered,
		"quantity":         result.Quantity,
	})
	s.logg.Info(ctx, "inventory.stock.mutated")

	dto := Serialize(result)
	return &dto, nil
}

func outcomeFor(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		return metrics.OutcomeError
	}
	switch typed.Code() {
	case pkgerrors.CodeNotFound:
		return metrics.OutcomeNotFound
	case pkgerrors.CodeValidation:
		return metrics.OutcomeInvalid
	case pkgerrors.CodeOutOfRange:
		return metrics.OutcomeRange
	case pkgerrors.CodeInactiveRecord:
		return metrics.OutcomeInactive
	}
	return metrics.OutcomeError
}

func notFound(key Key) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("inventory record %s not found", key))
}

func conflict(key Key) error {
	return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("inventory record %s already exists", key))
}

func internal(err error, msg string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
