package settings

type Config struct {
	Logger Logger `mapstructure:"logger" yaml:"logger"`
	Bench  Bench  `mapstructure:"bench" yaml:"bench" validate:"required"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	FileLogName string `mapstructure:"file_log_name" yaml:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age" validate:"gte=0"`   // Days
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size" validate:"gte=0"` // Megabytes
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// Bench is the configuration for the integrity benchmark
type Bench struct {
	Workers       int   `mapstructure:"workers" yaml:"workers" validate:"gte=1,lte=1024"`
	QueueCapacity int   `mapstructure:"queue_capacity" yaml:"queue_capacity" validate:"gte=1"`
	HeapCapacity  int   `mapstructure:"heap_capacity" yaml:"heap_capacity" validate:"gte=1"`
	Operations    int   `mapstructure:"operations" yaml:"operations" validate:"gte=1"` // Per worker, per structure
	Rounds        int   `mapstructure:"rounds" yaml:"rounds" validate:"gte=1"`
	Seed          int64 `mapstructure:"seed" yaml:"seed"`
}
