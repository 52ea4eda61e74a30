package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/db"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
)

type Store struct {
	Users        UserRepository
	Tours        TourRepository
	Bookings     BookingRepository
	Destinations DestinationRepository

	close func(context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

type StoreConfig struct {
	Driver        string // postgres | sqlite | mongo
	DSN           string
	MongoURI      string
	MongoDatabase string
	Pool          db.Options
}

func Open(ctx context.Context, cfg StoreConfig) (*Store, error) {
	if cfg.Driver == "mongo" {
		client, err := db.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		name := cfg.MongoDatabase
		if name == "" {
			name = db.MongoDatabaseName(cfg.MongoURI)
		}
		mdb := client.Database(name)
		if err := EnsureIndexes(ctx, mdb); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		s := NewMongoStore(mdb)
		s.close = client.Disconnect
		return s, nil
	}

	gdb, err := db.Open(cfg.Driver, cfg.DSN, cfg.Pool)
	if err != nil {
		return nil, err
	}
	if err := Migrate(gdb); err != nil {
		_ = db.Close(gdb)
		return nil, err
	}
	s := NewGormStore(gdb)
	s.close = func(context.Context) error { return db.Close(gdb) }
	return s, nil
}

func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&domain.User{}, &domain.Tour{}, &domain.Booking{}, &domain.Destination{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func NewGormStore(gdb *gorm.DB) *Store {
	return &Store{
		Users:        NewGormUserRepository(gdb),
		Tours:        NewGormTourRepository(gdb),
		Bookings:     NewGormBookingRepository(gdb),
		Destinations: NewGormDestinationRepository(gdb),
	}
}

func NewMongoStore(mdb *mongo.Database) *Store {
	return &Store{
		Users:        NewMongoUserRepository(mdb),
		Tours:        NewMongoTourRepository(mdb),
		Bookings:     NewMongoBookingRepository(mdb),
		Destinations: NewMongoDestinationRepository(mdb),
	}
}
