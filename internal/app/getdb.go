package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopmind/shopmind/config"
)

// getDatabase opens the relational store. Only postgres is supported.
func getDatabase(dbcfg config.DBConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
		dbcfg.Host, dbcfg.Port, dbcfg.User, dbcfg.Passwd, dbcfg.Name, time.Local.String())

	loglevel := logger.Silent
	if dbcfg.Debug {
		loglevel = logger.Info
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(loglevel),
	})
	if err != nil {
		zap.S().Panicf("failed to connect database: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		zap.S().Panicf("failed to get sql.DB: %v", err)
	}
	maxConn := dbcfg.MaxConn
	if maxConn <= 0 {
		maxConn = 100
	}
	idleConn := dbcfg.IdleConn
	if idleConn <= 0 {
		idleConn = 10
	}
	sqlDB.SetMaxOpenConns(maxConn)
	sqlDB.SetMaxIdleConns(idleConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return gormDB
}
