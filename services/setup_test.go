package services

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/service-booking/models"
	"github.com/yeremiapane/service-booking/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// setupTestDB -> SQLite in-memory per test + migrate semua model
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedService(t *testing.T, db *gorm.DB, name, category string) models.Service {
	t.Helper()
	svc := models.Service{Name: name, Category: category, Price: 100, Description: name + " description"}
	require.NoError(t, db.Create(&svc).Error)
	return svc
}

// recordingNotifier menyimpan semua konfirmasi yang di-dispatch
type recordingNotifier struct {
	mu   sync.Mutex
	msgs []BookingConfirmation
}

func (r *recordingNotifier) Dispatch(msg BookingConfirmation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingNotifier) Messages() []BookingConfirmation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]BookingConfirmation, len(r.msgs))
	copy(out, r.msgs)
	return out
}
