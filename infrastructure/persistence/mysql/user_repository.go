package mysql

import (
	"context"
	"database/sql"
	"errors"
	"iter"
	"strings"

	"flexible-project/domain/shared"
	"flexible-project/domain/user"
	"flexible-project/infrastructure/persistence"
	"flexible-project/infrastructure/persistence/mysql/po"
	"flexible-project/infrastructure/persistence/retry"
	"flexible-project/infrastructure/persistence/specification"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const mysqlDuplicateEntry = 1062

// UserRepository retries reads with the full policy and writes with
// retry.Config.ForWrites.
type UserRepository struct {
	db          *gorm.DB
	transactor  *Transactor
	translator  specification.Translator
	retryConfig retry.Config
	writeRetry  retry.Config
}

func NewUserRepository(db *gorm.DB, retryConfig retry.Config) *UserRepository {
	writeRetry := retryConfig.ForWrites()
	transactor := NewTransactor(db)
	transactor.SetRetryConfig(writeRetry)
	return &UserRepository{
		db:          db,
		transactor:  transactor,
		translator:  specification.NewGormTranslator(),
		retryConfig: retryConfig,
		writeRetry:  writeRetry,
	}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

func conflictError(id user.ID, err error) error {
	return shared.NewConflictError("user", id.Erase(), err)
}

func (r *UserRepository) Create(ctx context.Context, id user.ID, data user.Data) (user.User, error) {
	if ctx.Err() != nil {
		return user.User{}, ctx.Err()
	}

	userPO := po.FromUserDomain(id, data)
	err := retry.ExecuteWithRetry(ctx, r.writeRetry, func(ctx context.Context) error {
		return r.getDB(ctx).Create(userPO).Error
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return user.User{}, conflictError(id, err)
		}
		return user.User{}, err
	}
	return user.User{ID: id, Data: data}, nil
}

// Read streams matching rows through a database cursor. The cursor is
// closed when the sequence ends or the consumer stops early.
func (r *UserRepository) Read(ctx context.Context, filters user.Filters) iter.Seq2[user.User, error] {
	return func(yield func(user.User, error) bool) {
		scopes := r.translator.Translate(filters)
		rows, err := retry.Do(ctx, r.retryConfig, func(ctx context.Context) (*sql.Rows, error) {
			return r.getDB(ctx).Model(&po.UserPO{}).Scopes(scopes...).Rows()
		})
		if err != nil {
			yield(user.User{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var userPO po.UserPO
			if err := r.db.ScanRows(rows, &userPO); err != nil {
				yield(user.User{}, err)
				return
			}
			u, err := userPO.ToDomain()
			if err != nil {
				yield(user.User{}, err)
				return
			}
			if !yield(u, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(user.User{}, err)
		}
	}
}

func (r *UserRepository) Update(ctx context.Context, id user.ID, data user.Data) (user.User, error) {
	if ctx.Err() != nil {
		return user.User{}, ctx.Err()
	}

	userPO := po.FromUserDomain(id, data)
	err := r.transactor.Execute(ctx, func(ctx context.Context) error {
		tx := r.getDB(ctx)
		result := tx.Model(&po.UserPO{}).Where("id = ?", id.String()).Updates(userPO.Columns())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		// MySQL reports zero affected rows when nothing changed as well.
		var count int64
		if err := tx.Model(&po.UserPO{}).Where("id = ?", id.String()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.NewNotFoundError("user", id.Erase())
		}
		return nil
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return user.User{}, conflictError(id, err)
		}
		return user.User{}, err
	}
	return user.User{ID: id, Data: data}, nil
}

func (r *UserRepository) Delete(ctx context.Context, id user.ID) (user.User, error) {
	if ctx.Err() != nil {
		return user.User{}, ctx.Err()
	}

	var deleted user.User
	err := r.transactor.Execute(ctx, func(ctx context.Context) error {
		tx := r.getDB(ctx)

		var userPO po.UserPO
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&userPO, "id = ?", id.String()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.NewNotFoundError("user", id.Erase())
			}
			return err
		}
		if err := tx.Delete(&po.UserPO{}, "id = ?", id.String()).Error; err != nil {
			return err
		}

		var err error
		deleted, err = userPO.ToDomain()
		return err
	})
	if err != nil {
		return user.User{}, err
	}
	return deleted, nil
}

var _ user.Repository = (*UserRepository)(nil)
