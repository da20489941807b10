package app

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopmind/shopmind/internal/domain"
)

type settingSchema struct {
	Category string
	Name     string
	Default  string
	Remark   string
}

var defaultSettings = []settingSchema{
	{"system", "SiteTitle", "ShopMind", "Site title"},
	{"semantic", "SyncIntervalSecs", "60", "Semantic sync job replay interval in seconds"},
	{"semantic", "JobRetentionDays", "7", "Days to keep completed semantic sync jobs"},
	{"chat", "ContextTopK", "5", "Number of documents retrieved for chat context"},
}

// checkSettings initializes missing sys_config entries with defaults.
func (a *Application) checkSettings() {
	for sortid, schema := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", schema.Category, schema.Name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   schema.Category,
				Name:   schema.Name,
				Value:  schema.Default,
				Remark: schema.Remark,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Category+"."+schema.Name),
				zap.String("default", schema.Default))
		}
	}
}

// checkProducts seeds a small demo catalog when the product table is empty.
func (a *Application) checkProducts() {
	var count int64
	a.gormDB.Model(&domain.Product{}).Count(&count)
	if count > 0 {
		return
	}

	now := time.Now()
	demo := []domain.Product{
		{
			Name:        "Aurora Wireless Headphones",
			Description: "Over-ear wireless headphones with active noise cancellation and 30-hour battery life.",
			Brand:       "Aurora",
			Category:    "Electronics",
			Price:       decimal.NewFromFloat(129.99),
			ReleaseDate: now.AddDate(0, -6, 0),
			Available:   true,
			StockQty:    50,
		},
		{
			Name:        "Trailblazer Running Shoes",
			Description: "Lightweight trail running shoes with a breathable mesh upper and grippy outsole.",
			Brand:       "Trailblazer",
			Category:    "Sportswear",
			Price:       decimal.NewFromFloat(89.50),
			ReleaseDate: now.AddDate(0, -3, 0),
			Available:   true,
			StockQty:    120,
		},
		{
			Name:        "Artisan Pour-Over Coffee Kit",
			Description: "Ceramic pour-over brewer with a stainless steel filter and a 600ml glass carafe.",
			Brand:       "BrewCraft",
			Category:    "Kitchen",
			Price:       decimal.NewFromFloat(42.00),
			ReleaseDate: now.AddDate(-1, 0, 0),
			Available:   true,
			StockQty:    35,
		},
	}

	for i := range demo {
		if err := a.gormDB.Create(&demo[i]).Error; err != nil {
			zap.L().Error("failed to seed demo product",
				zap.String("name", demo[i].Name), zap.Error(err))
			continue
		}
		zap.L().Info("seeded demo product", zap.String("name", demo[i].Name))
	}
}
