package postimage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// registers the pure-go "sqlite" database/sql driver
	_ "modernc.org/sqlite"

	"peoplematching/internal/storage"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:postimage_test_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	// one connection keeps the shared in-memory database free of table locks
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&PostImage{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// setupTestService returns a service writing into a storage root that does not exist yet.
func setupTestService(t *testing.T, opts ...Option) (*Service, *gorm.DB, string) {
	t.Helper()
	db := setupTestDB(t)
	root := filepath.Join(t.TempDir(), "wwwroot", "uploads")
	svc := NewService(NewRepository(db), storage.NewLocal(root), zap.NewNop(), opts...)
	return svc, db, root
}

func payload(name string, data []byte) *Payload {
	return &Payload{Name: name, Size: int64(len(data)), Body: bytes.NewReader(data)}
}

func storedFiles(t *testing.T, root string) []string {
	t.Helper()
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read storage root: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func countRecords(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&PostImage{}).Count(&n).Error; err != nil {
		t.Fatalf("count post images: %v", err)
	}
	return n
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(ctx context.Context, name string, r io.Reader) error {
	args := m.Called(ctx, name, r)
	return args.Error(0)
}

func (m *MockStorage) Remove(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Begin() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*PostImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PostImage), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, limit, offset int) ([]*PostImage, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*PostImage), args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Add(img *PostImage) {
	m.Called(img)
}

func (m *MockUnitOfWork) Save(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
