package rule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var ruleColumns = []string{
	"id",
	"staff_id",
	"rule_type",
	"day_of_week",
	"specific_date",
	"start_time",
	"end_time",
	"is_available",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил доступности
// Правила создаются административным контуром, движку нужны только чтения
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListApplicable получает правила сотрудника, потенциально применимые к дате:
// еженедельные на этот день недели и разовые (exception, blocked) на эту дату
// Календарный день берется из date как записан, поэтому вызывающий код
// передает значение уже в таймзоне настроек
// Выбор единственного применимого правила по приоритету делает scheduling.ResolveRule
func (r *Repository) ListApplicable(ctx context.Context, staffID int64, dayOfWeek int, date time.Time) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"rule_type": domain.RuleRecurring},
				squirrel.Eq{"day_of_week": dayOfWeek},
			},
			squirrel.And{
				squirrel.Eq{"rule_type": []string{
					string(domain.RuleException),
					string(domain.RuleBlocked),
				}},
				squirrel.Eq{"specific_date": date.Format(domain.DateFormat)},
			},
		}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListApplicable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListApplicable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		var rule domain.AvailabilityRule
		var dayOfWeek sql.NullInt64
		var specificDate sql.NullTime
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.StaffID,
			&rule.Type,
			&dayOfWeek,
			&specificDate,
			&rule.StartTime,
			&rule.EndTime,
			&rule.IsAvailable,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListApplicable - scan row: %v", ErrScanRow, err)
		}

		if dayOfWeek.Valid {
			dow := int(dayOfWeek.Int64)
			rule.DayOfWeek = &dow
		}
		if specificDate.Valid {
			d := specificDate.Time
			rule.SpecificDate = &d
		}
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListApplicable - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
