package config

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"MenteSanaGo/models"
)

var DB *gorm.DB
var LocalDB *gorm.DB

// InitDB 初始化远程数据库连接（登录模式的记录集合）
func InitDB(config Config) error {
	dsn := config.GetDBConnString()

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// 设置连接池
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return DB.AutoMigrate(&models.EntryRecord{})
}

// InitLocalDB 初始化本地 SQLite 存储（演示模式的单文件槽位）
func InitLocalDB(config Config) error {
	var err error
	LocalDB, err = gorm.Open(sqlite.Open(config.LocalDBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	return LocalDB.AutoMigrate(&models.EntryRecord{})
}
