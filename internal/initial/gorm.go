package initial

import (
	"fmt"
	"log"
	"os"
	"time"

	"AeroComply/internal/config"
	complianceEntity "AeroComply/internal/modules/compliance/domain/entity"
	notificationEntity "AeroComply/internal/modules/notification/domain/entity"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MigratedModels 本服务拥有的表；截止期来源表、飞机与组织成员表由外部系统维护
var MigratedModels = []interface{}{
	&complianceEntity.RiskAlert{},
	&complianceEntity.DeferralRequest{},
	&notificationEntity.NotificationPreferences{},
}

func mysqlDSN(conf config.MysqlConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		conf.User, conf.Password, conf.Host, conf.Port, conf.DatabaseName)
}

// NewGormDB 连接 MySQL 并自动迁移本服务的表
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
	db, err := gorm.Open(mysql.Open(mysqlDSN(conf.MysqlConfig)), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	// 自动迁移，如果没有建表，会自动创建对应的表
	if err := db.AutoMigrate(MigratedModels...); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}
