package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"leavemgmt/internal/employee"
	employeeerrors "leavemgmt/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn   func(tx *sql.Tx) employee.Repository
	createFn   func(ctx context.Context, e *employee.Employee) error
	findAllFn  func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
	updateFn   func(ctx context.Context, e *employee.Employee) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates options cache", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeEmployeeRepository{}
		svc := employee.NewService(db, repo, rdb)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()
		redisMock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "Ana Silva", e.FullName)
			assert.Equal(t, "ana@corp.test", e.Email)
			return nil
		}

		resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Ana Silva",
			Email:    "ana@corp.test",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Ana Silva", resp.FullName)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips repository", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeEmployeeRepository{}
		svc := employee.NewService(db, repo, rdb)

		cached := []employee.EmployeeResponse{
			{ID: uuid.New().String(), FullName: "Ana Silva", Email: "ana@corp.test"},
		}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)
		redisMock.ExpectGet(employee.EmployeeOptionsKey).SetVal(string(payload))

		called := false
		repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			called = true
			return nil, nil
		}

		resp, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
		assert.False(t, called)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeEmployeeRepository{}
		svc := employee.NewService(db, repo, rdb)

		cohort := []employee.Employee{
			{ID: uuid.New(), FullName: "Ana Silva", Email: "ana@corp.test"},
			{ID: uuid.New(), FullName: "Budi Santoso", Email: "budi@corp.test"},
		}
		repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return cohort, nil
		}

		expected := []employee.EmployeeResponse{
			{ID: cohort[0].ID.String(), FullName: "Ana Silva", Email: "ana@corp.test"},
			{ID: cohort[1].ID.String(), FullName: "Budi Santoso", Email: "budi@corp.test"},
		}
		expectedPayload, err := json.Marshal(expected)
		assert.NoError(t, err)

		redisMock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()
		redisMock.ExpectSet(employee.EmployeeOptionsKey, expectedPayload, 5*time.Minute).SetVal("OK")

		resp, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("negative not found", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, _ := redismock.NewClientMock()
		svc := employee.NewService(db, &fakeEmployeeRepository{}, rdb)

		_, err = svc.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
