package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"dormnet"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"dormnet"`
	}

	Finance struct {
		// Fallback destination for fee postings when neither the
		// building at period end nor at period begin carries one.
		DefaultFeeAccountID int64 `envconfig:"DEFAULT_FEE_ACCOUNT_ID" required:"true"`

		// Grace before the periodic sweep confirms open transactions.
		ConfirmGrace time.Duration `envconfig:"CONFIRM_GRACE" default:"1h"`
	}

	Groups struct {
		MemberID           int64 `envconfig:"MEMBER_GROUP_ID" required:"true"`
		PaymentInDefaultID int64 `envconfig:"PAYMENT_IN_DEFAULT_GROUP_ID" required:"true"`
	}

	Processor struct {
		// System user posting fees and recomputing memberships.
		ID              int64 `envconfig:"PROCESSOR_USER_ID" required:"true"`
		PermissionLevel int   `envconfig:"PROCESSOR_PERMISSION_LEVEL" default:"100"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
