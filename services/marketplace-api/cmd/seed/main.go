// Command seed fills an empty database with demo users, tours and destinations.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/auth"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/obs"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/repository"
)

type SeedCfg struct {
	Env           string `envconfig:"ENV" default:"dev"`
	DBDriver      string `envconfig:"DB_DRIVER" default:"postgres"`
	PGDSN         string `envconfig:"PG_DSN"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"find_best_guide.db"`
	MongoURI      string `envconfig:"MONGODB_URI"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE"`
	Password      string `envconfig:"SEED_PASSWORD" default:"password123"`
}

func main() {
	_ = godotenv.Load(".env")
	var cfg SeedCfg
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger := obs.InitLogger("seed", cfg.Env)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dsn := cfg.PGDSN
	if cfg.DBDriver == "sqlite" {
		dsn = cfg.SQLitePath
	}
	store, err := repository.Open(ctx, repository.StoreConfig{
		Driver:        cfg.DBDriver,
		DSN:           dsn,
		MongoURI:      cfg.MongoURI,
		MongoDatabase: cfg.MongoDatabase,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("open store")
	}
	defer store.Close(ctx)

	n, err := countUsers(ctx, store)
	if err != nil {
		logger.Fatal().Err(err).Msg("count users")
	}
	if n > 0 {
		logger.Info().Int64("users", n).Msg("database already has users; nothing to seed")
		return
	}
	if err := seed(ctx, store, cfg.Password); err != nil {
		logger.Fatal().Err(err).Msg("seed")
	}
	logger.Info().Msg("demo data created")
}

func countUsers(ctx context.Context, s *repository.Store) (int64, error) {
	var total int64
	for _, r := range []domain.Role{domain.RoleTraveler, domain.RoleGuide, domain.RoleAdmin} {
		n, err := s.Users.CountByRole(ctx, r)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func seed(ctx context.Context, s *repository.Store, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	avatar := func(name string) string {
		return "https://ui-avatars.com/api/?name=" + name + "&background=random"
	}

	admin := &domain.User{Name: "Admin", Email: "admin@findbestguide.com", PasswordHash: hash, Role: domain.RoleAdmin, AvatarURL: avatar("Admin")}
	traveler := &domain.User{Name: "Priya Sharma", Email: "priya@example.com", PasswordHash: hash, Role: domain.RoleTraveler, Location: "Mumbai", AvatarURL: avatar("Priya+Sharma")}
	rahul := &domain.User{
		Name: "Rahul Verma", Email: "rahul.guide@example.com", PasswordHash: hash, Role: domain.RoleGuide,
		Location: "Delhi", AvatarURL: avatar("Rahul+Verma"),
		About:       "Licensed heritage guide for Old Delhi and the Mughal monuments.",
		Languages:   datatypes.JSONSlice[string]{"Hindi", "English"},
		Specialties: datatypes.JSONSlice[string]{"Heritage", "Food"},
		Experience:  8, PricePerDay: 2500, Rating: 4.8,
	}
	anjali := &domain.User{
		Name: "Anjali Mehta", Email: "anjali.guide@example.com", PasswordHash: hash, Role: domain.RoleGuide,
		Location: "Jaipur", AvatarURL: avatar("Anjali+Mehta"),
		About:       "Forts, bazaars and block printing workshops across the Pink City.",
		Languages:   datatypes.JSONSlice[string]{"Hindi", "English", "French"},
		Specialties: datatypes.JSONSlice[string]{"Culture", "Shopping"},
		Experience:  5, PricePerDay: 2000, Rating: 4.6,
	}
	for _, u := range []*domain.User{admin, traveler, rahul, anjali} {
		if err := s.Users.Create(ctx, u); err != nil {
			return err
		}
	}

	start := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, 14)
	tours := []*domain.Tour{
		{Title: "Old Delhi Food Walk", Description: "Parathas, jalebis and the lanes of Chandni Chowk.", Price: 1500, Duration: 1, Location: "Delhi", GuideID: rahul.ID, MaxParticipants: 10, Date: start},
		{Title: "Mughal Monuments Day", Description: "Red Fort, Jama Masjid and Humayun's Tomb.", Price: 3000, Duration: 1, Location: "Delhi", GuideID: rahul.ID, MaxParticipants: 8, Date: start.AddDate(0, 0, 3)},
		{Title: "Amber Fort and Bazaars", Description: "Morning at Amber Fort, afternoon in Johari Bazaar.", Price: 2800, Duration: 2, Location: "Jaipur", GuideID: anjali.ID, MaxParticipants: 6, Date: start.AddDate(0, 0, 7)},
	}
	for _, t := range tours {
		t.AvailableSpots = t.MaxParticipants
		if err := s.Tours.Create(ctx, t); err != nil {
			return err
		}
	}

	dests := []*domain.Destination{
		{Name: "Delhi", Country: "India", Description: "Capital city of Mughal forts and street food."},
		{Name: "Jaipur", Country: "India", Description: "The Pink City of Rajasthan."},
		{Name: "Varanasi", Country: "India", Description: "Ghats and evening aarti on the Ganges."},
	}
	for _, d := range dests {
		d.Slug = domain.Slugify(d.Name)
		if err := s.Destinations.Create(ctx, d); err != nil {
			return err
		}
	}
	return nil
}
