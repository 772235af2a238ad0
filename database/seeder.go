package database

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/service-booking/models"
	"github.com/yeremiapane/service-booking/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrNoServices = errors.New("no services to attach bookings to")

// SeedAdmin creates the admin account unless the email is already taken.
func SeedAdmin(db *gorm.DB, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return errors.New("seed admin: email and password are required")
	}

	var count int64
	if err := db.Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: hash password: %w", err)
	}
	admin := models.Admin{Name: name, Email: email, Password: string(hashed)}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	utils.InfoLogger.Printf("Admin account created: %s", email)
	return nil
}

// SeedServices inserts one "<Category> Service" per catalog category,
// skipping categories that already have it.
func SeedServices(db *gorm.DB) (int, error) {
	created := 0
	for _, category := range models.ServiceCategories() {
		name := category + " Service"
		var count int64
		if err := db.Model(&models.Service{}).
			Where("name = ? AND category = ?", name, category).
			Count(&count).Error; err != nil {
			return created, fmt.Errorf("seed services: %w", err)
		}
		if count > 0 {
			continue
		}

		svc := models.Service{
			Name:        name,
			Category:    category,
			Price:       100,
			Description: category + " description goes here.",
		}
		if err := db.Create(&svc).Error; err != nil {
			return created, fmt.Errorf("seed services: %w", err)
		}
		created++
	}
	utils.InfoLogger.Printf("Seeded %d services", created)
	return created, nil
}

type BookingSeedOptions struct {
	Total   int
	Chunk   int
	Workers int
	// Now anchors the generated schedules; zero means time.Now.
	Now time.Time
}

// ServiceIDs is the lookup table of active service ids a seeding run draws
// from. It is loaded once per run and handed to every chunk.
func ServiceIDs(ctx context.Context, db *gorm.DB) ([]string, error) {
	var ids []string
	if err := db.WithContext(ctx).Model(&models.Service{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("load service ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrNoServices
	}
	return ids, nil
}

// SeedBookings inserts opts.Total pending bookings in chunks of opts.Chunk,
// spread over opts.Workers goroutines. It returns how many rows were written;
// the first failing chunk stops the remaining ones.
func SeedBookings(ctx context.Context, db *gorm.DB, opts BookingSeedOptions) (int, error) {
	if opts.Total <= 0 {
		return 0, nil
	}
	if opts.Chunk <= 0 {
		opts.Chunk = 5000
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	serviceIDs, err := ServiceIDs(ctx, db)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
		firstErr error
	)

	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(uint64(opts.Now.UnixNano()), uint64(worker)))
			for size := range jobs {
				rows := fakeBookings(rng, serviceIDs, size, opts.Now)
				err := db.WithContext(ctx).CreateInBatches(rows, 500).Error

				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = fmt.Errorf("seed bookings: %w", err)
						cancel()
					}
				} else {
					inserted += len(rows)
				}
				mu.Unlock()
			}
		}(w)
	}

	dispatched := 0
dispatch:
	for dispatched < opts.Total {
		size := min(opts.Chunk, opts.Total-dispatched)
		select {
		case jobs <- size:
			dispatched += size
			utils.InfoLogger.Printf("Dispatched %d bookings...", dispatched)
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr == nil && ctx.Err() != nil && dispatched < opts.Total {
		firstErr = ctx.Err()
	}
	utils.InfoLogger.Printf("Seeding finished. Total inserted: %d", inserted)
	return inserted, firstErr
}

var (
	firstNames = []string{"Amina", "Budi", "Carlos", "Dewi", "Ethan", "Farhan", "Grace", "Hana", "Imran", "Joko", "Kiran", "Lina", "Mahmud", "Nadia", "Omar", "Putri", "Rahim", "Sari", "Tariq", "Yusuf"}
	lastNames  = []string{"Ahmed", "Hossain", "Santoso", "Rahman", "Wijaya", "Chowdhury", "Lestari", "Islam", "Pratama", "Karim"}
)

func fakeBookings(rng *rand.Rand, serviceIDs []string, n int, now time.Time) []models.Booking {
	rows := make([]models.Booking, n)
	for i := range rows {
		// jadwal acak antara 1 sampai 30 hari ke depan
		offset := 24*time.Hour + time.Duration(rng.Int64N(int64(29*24*time.Hour)))
		rows[i] = models.Booking{
			ID:               uuid.NewString(),
			ServiceID:        serviceIDs[rng.IntN(len(serviceIDs))],
			Name:             firstNames[rng.IntN(len(firstNames))] + " " + lastNames[rng.IntN(len(lastNames))],
			PhoneNumber:      fakePhone(rng),
			Status:           models.StatusPending,
			ScheduleDateTime: now.Add(offset).UTC().Truncate(time.Second),
		}
	}
	return rows
}

// fakePhone -> format +8801#########
func fakePhone(rng *rand.Rand) string {
	var b strings.Builder
	b.WriteString("+8801")
	for i := 0; i < 9; i++ {
		b.WriteByte(byte('0' + rng.IntN(10)))
	}
	return b.String()
}
