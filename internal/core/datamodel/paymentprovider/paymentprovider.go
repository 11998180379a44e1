package paymentprovider

import "time"

type Country struct {
	ID        int64     `gorm:"primaryKey"`
	Code      string    `gorm:"column:code;uniqueIndex;not null"`
	Name      string    `gorm:"column:name;not null"`
	Position  int       `gorm:"column:position;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Country) TableName() string {
	return "countries"
}

type Provider struct {
	ID         int64     `gorm:"primaryKey"`
	ProviderID string    `gorm:"column:provider_id;uniqueIndex;not null"`
	Name       string    `gorm:"column:name;not null"`
	Logo       string    `gorm:"column:logo"`
	Position   int       `gorm:"column:position;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Provider) TableName() string {
	return "payment_providers"
}

type ProviderCountry struct {
	ID          int64  `gorm:"primaryKey"`
	ProviderID  string `gorm:"column:provider_id;not null;index;uniqueIndex:idx_provider_country"`
	CountryCode string `gorm:"column:country_code;not null;uniqueIndex:idx_provider_country"`
	Position    int    `gorm:"column:position;not null"`
}

func (ProviderCountry) TableName() string {
	return "payment_provider_countries"
}

type Method struct {
	ID         int64  `gorm:"primaryKey"`
	ProviderID string `gorm:"column:provider_id;not null;index;uniqueIndex:idx_provider_method"`
	MethodID   string `gorm:"column:method_id;not null;uniqueIndex:idx_provider_method"`
	Name       string `gorm:"column:name;not null"`
	Icon       string `gorm:"column:icon"`
	Position   int    `gorm:"column:position;not null"`
}

func (Method) TableName() string {
	return "payment_methods"
}

// Models lists every table, in dependency order, for AutoMigrate in tests and tools.
func Models() []interface{} {
	return []interface{}{&Country{}, &Provider{}, &ProviderCountry{}, &Method{}}
}
