package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"villa-backend/models"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "villa_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.AdminSession{},
		&models.Room{},
		&models.RoomRate{},
		&models.GalleryAsset{},
		&models.BookingInquiry{},
		&models.ContactMessage{},
		&models.NewsletterSubscriber{},
		&models.Testimonial{},
	); err != nil {
		return err
	}

	SeedDatabase(DB)
	return nil
}

func jsonArray(items ...string) datatypes.JSON {
	b, _ := json.Marshal(items)
	return datatypes.JSON(b)
}

// SeedDatabase inserts the default admin, room cards, rate entries and
// testimonials. Every step is idempotent so boot can run it repeatedly.
func SeedDatabase(db *gorm.DB) {
	// ---------------- Admin ----------------
	var adminCount int64
	db.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		password := envOrDefault("ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Warn().Err(err).Msg("failed to hash default admin password")
		} else {
			admin := models.Admin{
				FullName: "Villa Admin",
				Username: envOrDefault("ADMIN_USERNAME", "admin@villa.local"),
				Password: string(hash),
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Warn().Err(err).Msg("failed to create default admin")
			} else {
				log.Info().Msg("Default admin seeded")
			}
		}
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{
				Code: "KNP", Name: "Entire Villa Exclusive",
				Description: "The whole lakeside villa for your group: seven rooms, private pool and gardens.",
				Price:       388, Capacity: 18, Size: 560,
				ImageURL: "/uploads/gallery/entire-villa/villa-exterior.jpg",
				Features: jsonArray("Private infinity pool", "Lake views", "Full staff", "All rooms"),
			},
			{
				Code: "KNP1", Name: "Master Family Suite",
				Description: "Spacious suite with lake-facing balcony, ideal for families.",
				Price:       107, Capacity: 4, Size: 60,
				ImageURL: "/uploads/gallery/family-suite/suite.jpg",
				Features: jsonArray("King bed", "Lake view balcony", "En-suite bathroom"),
			},
			{
				Code: "KNP3", Name: "Triple/Twin Room",
				Description: "Flexible twin or triple configuration overlooking the gardens.",
				Price:       63, Capacity: 3, Size: 35,
				ImageURL: "/uploads/gallery/triple-room/triple.jpg",
				Features: jsonArray("Twin or triple beds", "Garden view", "Air conditioning"),
			},
			{
				Code: "KNP6", Name: "Group Room",
				Description: "Shared room for up to six guests, perfect for groups on a budget.",
				Price:       225, Capacity: 6, Size: 55,
				ImageURL: "/uploads/gallery/group-room/group.jpg",
				Features: jsonArray("Six beds", "Shared lounge", "Pool access"),
			},
		}
		if err := db.Create(&rooms).Error; err != nil {
			log.Warn().Err(err).Msg("failed to seed rooms")
		} else {
			log.Info().Msg("Rooms seeded")
		}
	}

	// ---------------- Room rates ----------------
	var rateCount int64
	db.Model(&models.RoomRate{}).Count(&rateCount)
	if rateCount == 0 {
		now := time.Now()
		rates := []models.RoomRate{
			{RoomCode: "KNP", Name: "Entire Villa Exclusive", AirbnbURL: envOrDefault("AIRBNB_RATE_URL_KNP", ""), ReferenceRate: 431, DirectRate: 388, DiscountPct: 0.10, LastUpdated: now},
			{RoomCode: "KNP1", Name: "Master Family Suite", AirbnbURL: envOrDefault("AIRBNB_RATE_URL_KNP1", ""), ReferenceRate: 119, DirectRate: 107, DiscountPct: 0.10, LastUpdated: now},
			{RoomCode: "KNP3", Name: "Triple/Twin Room", AirbnbURL: envOrDefault("AIRBNB_RATE_URL_KNP3", ""), ReferenceRate: 70, DirectRate: 63, DiscountPct: 0.10, LastUpdated: now},
			{RoomCode: "KNP6", Name: "Group Room", AirbnbURL: envOrDefault("AIRBNB_RATE_URL_KNP6", ""), ReferenceRate: 250, DirectRate: 225, DiscountPct: 0.10, LastUpdated: now},
		}
		if err := db.Create(&rates).Error; err != nil {
			log.Warn().Err(err).Msg("failed to seed room rates")
		} else {
			log.Info().Msg("Room rates seeded")
		}
	}

	// ---------------- Testimonials ----------------
	var tCount int64
	db.Model(&models.Testimonial{}).Count(&tCount)
	if tCount == 0 {
		testimonials := []models.Testimonial{
			{Rating: 5, Comment: "Waking up to the lake every morning was unforgettable. The staff made us feel like family.", GuestName: "Sarah M.", GuestCountry: "United Kingdom", AvatarInitials: "SM"},
			{Rating: 5, Comment: "The infinity pool and the roof garden are even better than the photos.", GuestName: "Daniel K.", GuestCountry: "Germany", AvatarInitials: "DK"},
			{Rating: 4, Comment: "Perfect base for exploring Galle and the south coast. Great value booking direct.", GuestName: "Priya R.", GuestCountry: "India", AvatarInitials: "PR"},
		}
		if err := db.Create(&testimonials).Error; err != nil {
			log.Warn().Err(err).Msg("failed to seed testimonials")
		} else {
			log.Info().Msg("Testimonials seeded")
		}
	}
}
