package initial

import (
	"fmt"
	"log"
	"os"
	"time"

	"Gigbell/internal/config"
	alertEntity "Gigbell/internal/modules/alert/domain/entity"
	notificationEntity "Gigbell/internal/modules/notification/domain/entity"
	performanceEntity "Gigbell/internal/modules/performance/domain/entity"
	userEntity "Gigbell/internal/modules/user/domain/entity"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewGormDB 按 databaseConfig.driver 打开连接；autoMigrate 打开时顺带建表
func NewGormDB(conf *config.Config) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var dialector gorm.Dialector
	switch conf.DatabaseConfig.Driver {
	case "postgres":
		dialector = postgres.Open(conf.DatabaseConfig.DSN())
	default:
		dialector = mysql.Open(conf.DatabaseConfig.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
		// 唯一索引冲突统一成 gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conf.DatabaseConfig.Driver, err)
	}
	if conf.DatabaseConfig.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Models 全部需要迁移的表
func Models() []interface{} {
	models := []interface{}{
		&userEntity.User{},
		&performanceEntity.Performance{},
		&performanceEntity.PerformanceArtist{},
		&notificationEntity.Notification{},
	}
	return append(models, alertEntity.Models()...)
}

// Migrate 自动迁移，如果没有建表，会自动创建对应的表
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
