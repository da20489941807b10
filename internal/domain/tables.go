package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// Catalog
	&Product{},
	// Orders
	&Order{},
	&OrderItem{},
	// Semantic index bookkeeping
	&SemanticSyncJob{},
}
