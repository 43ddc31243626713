package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sahilchouksey/university-catalog/config"
	"github.com/sahilchouksey/university-catalog/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM() (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_NAME,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	gormLogger := logger.Default.LogMode(logger.Info)
	if getEnv.GO_ENV == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		PrepareStmt:            true,
	})
	if err != nil {
		log.Println("Unable to connect to PostgreSQL with GORM:", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL Database with GORM.")

	return &GORMStore{db: db}, nil
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	err := s.db.AutoMigrate(
		&model.University{},
		&model.OrphanAsset{},
	)
	if err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	log.Println("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Println("Closing GORM PostgreSQL connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *GORMStore) CreateUniversity(u *model.University) error {
	return s.db.Create(u).Error
}

func (s *GORMStore) GetUniversity(id string) (*model.University, error) {
	var university model.University
	if err := s.db.First(&university, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &university, nil
}

func (s *GORMStore) ListUniversities(offset, limit int, search string) ([]model.University, int64, error) {
	query := s.db.Model(&model.University{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var universities []model.University
	if err := query.Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&universities).Error; err != nil {
		return nil, 0, err
	}

	return universities, total, nil
}

// SearchUniversities returns candidate documents whose name or serialized
// category tree contains the query. The jsonb::text match is a coarse
// prefilter; callers confirm nested name matches by walking the tree.
func (s *GORMStore) SearchUniversities(query string) ([]model.University, error) {
	pattern := "%" + query + "%"
	var universities []model.University
	err := s.db.
		Where("name ILIKE ? OR categories::text ILIKE ?", pattern, pattern).
		Order("created_at ASC").
		Find(&universities).Error
	if err != nil {
		return nil, err
	}
	return universities, nil
}

func (s *GORMStore) SaveUniversity(u *model.University) error {
	return s.db.Save(u).Error
}

func (s *GORMStore) DeleteUniversity(id string) error {
	result := s.db.Delete(&model.University{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GORMStore) AddOrphanAsset(o model.OrphanAsset) error {
	return s.db.Create(&o).Error
}

func (s *GORMStore) ListOrphanAssets(limit int) ([]model.OrphanAsset, error) {
	var orphans []model.OrphanAsset
	err := s.db.Order("created_at ASC").Limit(limit).Find(&orphans).Error
	return orphans, err
}

func (s *GORMStore) BumpOrphanAttempts(id uint) error {
	return s.db.Model(&model.OrphanAsset{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

func (s *GORMStore) RemoveOrphanAsset(id uint) error {
	return s.db.Delete(&model.OrphanAsset{}, id).Error
}
